package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	// Timezone is the IANA zone used to render record dates in prompts and exports.
	Timezone string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	AI        AIConfig
	Webhook   WebhookConfig
	Storage   StorageConfig
	Dashboard DashboardConfig
}

// DatabaseConfig points at the hosted Postgres. URL wins over the discrete fields when set.
type DatabaseConfig struct {
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds the secret the auth provider signs access tokens with.
type JWTConfig struct {
	Secret   string
	Audience string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AIConfig configures the generative model. An empty APIKey is only reported at first use.
type AIConfig struct {
	APIKey            string
	Model             string
	AudioMIMEType     string
	MaxAudioBytes     int64
	AudioFetchTimeout time.Duration
	// AudioAllowedHosts are extra hosts audio_url may point at besides the storage host.
	AudioAllowedHosts []string
}

// WebhookConfig configures the automation pass-through. An empty URL fails at request time.
type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

// StorageConfig targets the hosted object storage used for observation media.
type StorageConfig struct {
	BaseURL        string
	ServiceKey     string
	Bucket         string
	ImageMaxSide   int
	MaxUploadBytes int64
}

// DashboardConfig governs dashboard exposure and cache tuning.
type DashboardConfig struct {
	Enabled         bool
	CacheTTL        time.Duration
	AtRiskDays      int
	AtRiskMinRecord int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.Timezone = v.GetString("TIMEZONE")

	cfg.Database = DatabaseConfig{
		URL:          v.GetString("DATABASE_URL"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:   v.GetString("SUPABASE_JWT_SECRET"),
		Audience: v.GetString("SUPABASE_JWT_AUDIENCE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxAudio := v.GetInt64("AI_MAX_AUDIO_BYTES")
	if maxAudio <= 0 {
		maxAudio = 25 * 1024 * 1024
	}
	cfg.AI = AIConfig{
		APIKey:            v.GetString("GEMINI_API_KEY"),
		Model:             v.GetString("GEMINI_MODEL"),
		AudioMIMEType:     v.GetString("AI_AUDIO_MIME_TYPE"),
		MaxAudioBytes:     maxAudio,
		AudioFetchTimeout: parseDuration(v.GetString("AI_AUDIO_FETCH_TIMEOUT"), time.Minute),
		AudioAllowedHosts: splitAndTrim(v.GetString("AI_AUDIO_ALLOWED_HOSTS")),
	}

	cfg.Webhook = WebhookConfig{
		URL:     v.GetString("WEBHOOK_URL"),
		Timeout: parseDuration(v.GetString("WEBHOOK_TIMEOUT"), 30*time.Second),
	}

	maxUpload := v.GetInt64("STORAGE_MAX_UPLOAD_BYTES")
	if maxUpload <= 0 {
		maxUpload = 50 * 1024 * 1024
	}
	cfg.Storage = StorageConfig{
		BaseURL:        strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
		ServiceKey:     v.GetString("SUPABASE_SERVICE_ROLE_KEY"),
		Bucket:         v.GetString("STORAGE_BUCKET"),
		ImageMaxSide:   v.GetInt("STORAGE_IMAGE_MAX_SIDE"),
		MaxUploadBytes: maxUpload,
	}

	cfg.Dashboard = DashboardConfig{
		Enabled:         v.GetBool("ENABLE_DASHBOARD"),
		CacheTTL:        parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
		AtRiskDays:      v.GetInt("DASHBOARD_AT_RISK_DAYS"),
		AtRiskMinRecord: v.GetInt("DASHBOARD_AT_RISK_MIN_RECORDS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SUPABASE_JWT_SECRET", "dev_secret")
	v.SetDefault("SUPABASE_JWT_AUDIENCE", "authenticated")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("AI_AUDIO_MIME_TYPE", "audio/webm")
	v.SetDefault("AI_MAX_AUDIO_BYTES", 25*1024*1024)
	v.SetDefault("AI_AUDIO_FETCH_TIMEOUT", "")

	v.SetDefault("WEBHOOK_URL", "")
	v.SetDefault("WEBHOOK_TIMEOUT", "30s")

	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_SERVICE_ROLE_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "registros")
	v.SetDefault("STORAGE_IMAGE_MAX_SIDE", 1600)
	v.SetDefault("STORAGE_MAX_UPLOAD_BYTES", 50*1024*1024)

	v.SetDefault("ENABLE_DASHBOARD", true)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")
	v.SetDefault("DASHBOARD_AT_RISK_DAYS", 14)
	v.SetDefault("DASHBOARD_AT_RISK_MIN_RECORDS", 1)
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

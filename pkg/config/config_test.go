package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "audio/webm", cfg.AI.AudioMIMEType)
	assert.Empty(t, cfg.AI.APIKey)
	assert.Empty(t, cfg.Webhook.URL)
	assert.Equal(t, 5*time.Minute, cfg.Dashboard.CacheTTL)
	assert.Equal(t, 14, cfg.Dashboard.AtRiskDays)
	assert.Equal(t, "registros", cfg.Storage.Bucket)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.Equal(t, 30*time.Second, cfg.Webhook.Timeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("WEBHOOK_URL", "https://automation.example.com/hook")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co/")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")
	t.Setenv("DASHBOARD_CACHE_TTL", "not-a-duration")
	t.Setenv("AI_AUDIO_ALLOWED_HOSTS", "cdn.example.com, ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://automation.example.com/hook", cfg.Webhook.URL)
	assert.Equal(t, "key", cfg.AI.APIKey)
	assert.Equal(t, "https://project.supabase.co", cfg.Storage.BaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Dashboard.CacheTTL)
	assert.Equal(t, []string{"cdn.example.com"}, cfg.AI.AudioAllowedHosts)
}

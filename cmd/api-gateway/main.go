package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/parecer-api/api/swagger"
	"github.com/noah-isme/parecer-api/internal/handler"
	"github.com/noah-isme/parecer-api/internal/middleware"
	"github.com/noah-isme/parecer-api/internal/repository"
	"github.com/noah-isme/parecer-api/internal/service"
	"github.com/noah-isme/parecer-api/pkg/cache"
	"github.com/noah-isme/parecer-api/pkg/config"
	"github.com/noah-isme/parecer-api/pkg/database"
	"github.com/noah-isme/parecer-api/pkg/llm"
	"github.com/noah-isme/parecer-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/parecer-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/parecer-api/pkg/middleware/requestid"
	"github.com/noah-isme/parecer-api/pkg/storage"
)

// @title Parecer API
// @version 1.0.0
// @description Observation log and AI-drafted descriptive reports for early-childhood teachers.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logr.Warn("unknown timezone, using UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Dashboard.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	studentRepo := repository.NewStudentRepository(db)
	classRepo := repository.NewClassRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	bnccRepo := repository.NewBNCCTagRepository(db)
	observationRepo := repository.NewObservationRepository(db).WithTimezone(loc.String())
	milestoneRepo := repository.NewMilestoneRepository(db)
	profileRepo := repository.NewTeacherProfileRepository(db)
	parecerRepo := repository.NewParecerRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, "parecer", logr)
	defer cacheRepo.Close() //nolint:errcheck

	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Audience)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, redisClient != nil)

	var dashboardSvc *service.DashboardService
	if cfg.Dashboard.Enabled {
		dashboardSvc = service.NewDashboardService(dashboardRepo, classRepo, cacheSvc, logr, service.DashboardServiceConfig{
			CacheTTL:      cfg.Dashboard.CacheTTL,
			AtRiskDays:    cfg.Dashboard.AtRiskDays,
			AtRiskMinimum: cfg.Dashboard.AtRiskMinRecord,
		})
	}

	objectStore := storage.NewSupabaseStorage(cfg.Storage, &http.Client{Timeout: 60 * time.Second})
	mediaSvc := service.NewMediaService(objectStore, service.MediaConfig{
		ImageMaxSide:   cfg.Storage.ImageMaxSide,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
	}, logr)

	studentSvc := service.NewStudentService(studentRepo, classRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, validate, logr)
	activitySvc := service.NewActivityService(activityRepo, validate, logr)
	bnccSvc := service.NewBNCCTagService(bnccRepo, validate, logr)
	milestoneSvc := service.NewMilestoneService(milestoneRepo, studentRepo, validate, logr)
	profileSvc := service.NewTeacherProfileService(profileRepo, validate, logr)

	observationParams := service.ObservationServiceParams{
		Repo:       observationRepo,
		Students:   studentRepo,
		Activities: activityRepo,
		Media:      mediaSvc,
		Validator:  validate,
		Logger:     logr,
	}
	if dashboardSvc != nil {
		observationParams.Dashboard = dashboardSvc
	}
	observationSvc := service.NewObservationService(observationParams)

	gemini := llm.NewGemini(llm.GeminiConfig{APIKey: cfg.AI.APIKey, Model: cfg.AI.Model})
	audioHosts := append([]string{}, cfg.AI.AudioAllowedHosts...)
	if u, err := url.Parse(cfg.Storage.BaseURL); err == nil && u.Host != "" {
		audioHosts = append(audioHosts, u.Host)
	}
	if len(audioHosts) == 0 {
		logr.Warn("audio_url accepts any host: set SUPABASE_URL or AI_AUDIO_ALLOWED_HOSTS")
	}
	audioFetcher := service.NewAudioFetcher(&http.Client{Timeout: cfg.AI.AudioFetchTimeout}, cfg.AI.AudioMIMEType, cfg.AI.MaxAudioBytes).
		WithAllowedHosts(audioHosts...)
	parecerSvc := service.NewParecerService(service.ParecerDeps{
		Pareceres:    parecerRepo,
		Students:     studentRepo,
		Observations: observationRepo,
		Milestones:   milestoneRepo,
		Classes:      classRepo,
		Profiles:     profileRepo,
		AI:           gemini,
		Audio:        audioFetcher,
		Metrics:      metricsSvc,
		Location:     loc,
	}, validate, logr)
	exportSvc := service.NewExportService(parecerSvc, studentSvc, observationSvc, nil, nil, loc, logr)
	webhookSvc := service.NewWebhookService(cfg.Webhook.URL, &http.Client{Timeout: cfg.Webhook.Timeout}, logr)

	handlers := handler.Handlers{
		Pareceres:  handler.NewParecerHandler(parecerSvc, exportSvc),
		Webhook:    handler.NewWebhookHandler(webhookSvc),
		Students:   handler.NewStudentHandler(studentSvc),
		Classes:    handler.NewClassHandler(classSvc),
		Activities: handler.NewActivityHandler(activitySvc),
		BNCCTags:   handler.NewBNCCTagHandler(bnccSvc),
		Records:    handler.NewObservationHandler(observationSvc, exportSvc, mediaSvc, cfg.Storage.MaxUploadBytes),
		Milestones: handler.NewMilestoneHandler(milestoneSvc),
		Profiles:   handler.NewTeacherProfileHandler(profileSvc),
		Metrics: handler.NewMetricsHandler(metricsSvc, map[string]handler.ReadinessCheck{
			"database": db.PingContext,
			"cache":    cacheRepo.Ping,
		}),
	}
	if dashboardSvc != nil {
		handlers.Dashboard = handler.NewDashboardHandler(dashboardSvc)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.RegisterRoutes(r, handlers, tokenSvc, logr)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}

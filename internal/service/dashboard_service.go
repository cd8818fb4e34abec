package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/parecer-api/internal/dto"
	"github.com/noah-isme/parecer-api/internal/models"
)

const dashboardCachePrefix = "dashboard:"

type dashboardRepository interface {
	AtRiskStudents(ctx context.Context, classID string, since time.Time, minRecords int) ([]models.AtRiskStudent, error)
	BNCCCoverage(ctx context.Context, classID string) ([]models.BNCCCoverage, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL      time.Duration
	AtRiskDays    int
	AtRiskMinimum int
}

// DashboardService composes per-class dashboard payloads, cached per class.
type DashboardService struct {
	repo    dashboardRepository
	classes classReader
	cache   *CacheService
	logger  *zap.Logger
	now     func() time.Time
	cfg     DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo dashboardRepository, classes classReader, cache *CacheService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AtRiskDays <= 0 {
		cfg.AtRiskDays = 14
	}
	if cfg.AtRiskMinimum <= 0 {
		cfg.AtRiskMinimum = 1
	}
	return &DashboardService{repo: repo, classes: classes, cache: cache, logger: logger, now: time.Now, cfg: cfg}
}

// AtRisk lists students of the caller's class with fewer than the configured number of
// observations over the configured window.
// The boolean reports whether the payload came from cache.
func (s *DashboardService) AtRisk(ctx context.Context, callerID, classID string) (*dto.AtRiskResponse, bool, error) {
	if err := s.checkClass(ctx, callerID, classID); err != nil {
		return nil, false, err
	}
	key := fmt.Sprintf("%s%s:at-risk", dashboardCachePrefix, classID)
	var cached dto.AtRiskResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	now := s.now().UTC()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -s.cfg.AtRiskDays)
	students, err := s.repo.AtRiskStudents(ctx, classID, since, s.cfg.AtRiskMinimum)
	if err != nil {
		return nil, false, persistenceError(err, "failed to compute at-risk students")
	}
	if students == nil {
		students = []models.AtRiskStudent{}
	}
	resp := &dto.AtRiskResponse{ClassID: classID, Since: since, MinRecords: s.cfg.AtRiskMinimum, Students: students, GeneratedAt: now}
	s.cache.Set(ctx, key, resp, s.cfg.CacheTTL)
	return resp, false, nil
}

// Coverage counts the caller's class records per BNCC experience field.
func (s *DashboardService) Coverage(ctx context.Context, callerID, classID string) (*dto.CoverageResponse, bool, error) {
	if err := s.checkClass(ctx, callerID, classID); err != nil {
		return nil, false, err
	}
	key := fmt.Sprintf("%s%s:bncc", dashboardCachePrefix, classID)
	var cached dto.CoverageResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	fields, err := s.repo.BNCCCoverage(ctx, classID)
	if err != nil {
		return nil, false, persistenceError(err, "failed to compute bncc coverage")
	}
	if fields == nil {
		fields = []models.BNCCCoverage{}
	}
	resp := &dto.CoverageResponse{ClassID: classID, Fields: fields, GeneratedAt: s.now().UTC()}
	s.cache.Set(ctx, key, resp, s.cfg.CacheTTL)
	return resp, false, nil
}

// InvalidateAll drops every cached dashboard payload. Records span classes through their
// students, so invalidation is not narrowed to one class.
func (s *DashboardService) InvalidateAll(ctx context.Context) {
	s.cache.Invalidate(ctx, dashboardCachePrefix+"*")
}

func (s *DashboardService) checkClass(ctx context.Context, callerID, classID string) error {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return lookupError(err, "Turma não encontrada", "failed to load class")
	}
	return ensureClassOwner(class, callerID)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
)

type fakeDashboardRepo struct {
	atRiskCalls   int
	coverageCalls int
	since         time.Time
	minRecords    int
}

func (f *fakeDashboardRepo) AtRiskStudents(ctx context.Context, classID string, since time.Time, minRecords int) ([]models.AtRiskStudent, error) {
	f.atRiskCalls++
	f.since = since
	f.minRecords = minRecords
	return []models.AtRiskStudent{{StudentID: "stu-2", Nome: "Bia", RecordCount: 0}}, nil
}

func (f *fakeDashboardRepo) BNCCCoverage(ctx context.Context, classID string) ([]models.BNCCCoverage, error) {
	f.coverageCalls++
	return []models.BNCCCoverage{{CampoExperiencia: "Escuta, fala, pensamento e imaginação", RecordCount: 3}}, nil
}

func newDashboardFixture() (*DashboardService, *fakeDashboardRepo, *fakeCacheRepo) {
	repo := &fakeDashboardRepo{}
	cacheRepo := newFakeCacheRepo()
	classes := &fakeClassRepo{classes: map[string]models.Class{"T1": {ID: "T1", OwnerID: "prof-1"}}}
	cache := NewCacheService(cacheRepo, NewMetricsService(), time.Minute, nil, true)
	svc := NewDashboardService(repo, classes, cache, nil, DashboardServiceConfig{AtRiskDays: 7, AtRiskMinimum: 2})
	svc.now = func() time.Time { return time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC) }
	return svc, repo, cacheRepo
}

func TestDashboardAtRiskCachesPerClass(t *testing.T) {
	svc, repo, cacheRepo := newDashboardFixture()

	first, hit, err := svc.AtRisk(context.Background(), "prof-1", "T1")
	require.NoError(t, err)
	assert.False(t, hit)
	second, hit, err := svc.AtRisk(context.Background(), "prof-1", "T1")
	require.NoError(t, err)
	assert.True(t, hit)

	assert.Equal(t, 1, repo.atRiskCalls)
	assert.Equal(t, 1, cacheRepo.sets)
	assert.Equal(t, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), repo.since)
	assert.Equal(t, 2, repo.minRecords)
	assert.Equal(t, first.Students, second.Students)
}

func TestDashboardInvalidateForcesRecompute(t *testing.T) {
	svc, repo, cacheRepo := newDashboardFixture()

	_, _, err := svc.Coverage(context.Background(), "prof-1", "T1")
	require.NoError(t, err)
	svc.InvalidateAll(context.Background())
	resp, hit, err := svc.Coverage(context.Background(), "prof-1", "T1")
	assert.False(t, hit)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.coverageCalls)
	assert.Equal(t, []string{"dashboard:*"}, cacheRepo.invalidated)
	assert.Equal(t, 3, resp.Fields[0].RecordCount)
}

func TestDashboardRejectsForeignClass(t *testing.T) {
	svc, repo, _ := newDashboardFixture()

	_, _, err := svc.AtRisk(context.Background(), "prof-9", "T1")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	_, _, err = svc.Coverage(context.Background(), "prof-1", "ghost")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.atRiskCalls+repo.coverageCalls)
}

func TestDashboardWorksWithoutCache(t *testing.T) {
	repo := &fakeDashboardRepo{}
	classes := &fakeClassRepo{classes: map[string]models.Class{"T1": {ID: "T1", OwnerID: "prof-1"}}}
	svc := NewDashboardService(repo, classes, NewCacheService(nil, nil, 0, nil, false), nil, DashboardServiceConfig{})

	_, _, err := svc.AtRisk(context.Background(), "prof-1", "T1")
	require.NoError(t, err)
	_, hit, err := svc.AtRisk(context.Background(), "prof-1", "T1")
	assert.False(t, hit)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.atRiskCalls)
	assert.Equal(t, 1, repo.minRecords)
}

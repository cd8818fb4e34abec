package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/parecer-api/internal/dto"
	"github.com/noah-isme/parecer-api/internal/middleware"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
	"github.com/noah-isme/parecer-api/pkg/response"
)

type dashboardService interface {
	AtRisk(ctx context.Context, callerID, classID string) (*dto.AtRiskResponse, bool, error)
	Coverage(ctx context.Context, callerID, classID string) (*dto.CoverageResponse, bool, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// AtRisk godoc
// @Summary Students with few recent observations
// @Tags Dashboard
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /dashboard/turmas/{id}/alunos-em-risco [get]
func (h *DashboardHandler) AtRisk(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.AtRisk(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondWithMeta(c, summary, cacheHit, start)
}

// Coverage godoc
// @Summary Observation count per BNCC experience field
// @Tags Dashboard
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /dashboard/turmas/{id}/cobertura-bncc [get]
func (h *DashboardHandler) Coverage(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.service.Coverage(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondWithMeta(c, summary, cacheHit, start)
}

func respondWithMeta(c *gin.Context, data interface{}, cacheHit bool, start time.Time) {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, data, nil, meta)
}

package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/parecer-api/internal/dto"
	"github.com/noah-isme/parecer-api/internal/models"
	"github.com/noah-isme/parecer-api/internal/service"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
	"github.com/noah-isme/parecer-api/pkg/response"
)

type parecerService interface {
	Generate(ctx context.Context, callerID string, req dto.GenerateParecerRequest) (*models.Parecer, error)
	ListByStudent(ctx context.Context, callerID, studentID string) ([]models.Parecer, error)
	Get(ctx context.Context, callerID, id string) (*models.Parecer, error)
	Update(ctx context.Context, callerID, id string, req dto.UpdateParecerRequest) (*models.Parecer, error)
}

type parecerExporter interface {
	ParecerPDF(ctx context.Context, callerID, id string) (*service.ExportFile, error)
}

// ParecerHandler exposes report draft generation and editing.
type ParecerHandler struct {
	service  parecerService
	exporter parecerExporter
}

// NewParecerHandler constructs the handler.
func NewParecerHandler(service parecerService, exporter parecerExporter) *ParecerHandler {
	return &ParecerHandler{service: service, exporter: exporter}
}

// Generate godoc
// @Summary Generate a report draft
// @Description Builds a prompt from the student's records and milestones in the period, calls the model and stores the draft.
// @Tags Pareceres
// @Accept json
// @Produce json
// @Param payload body dto.GenerateParecerRequest true "Generation request"
// @Success 200 {object} dto.GenerateParecerResponse
// @Failure 404 {object} response.LegacyError
// @Failure 500 {object} response.LegacyError
// @Router /gerar-parecer [post]
func (h *ParecerHandler) Generate(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.LegacyFail(c, err)
		return
	}
	var req dto.GenerateParecerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.LegacyFail(c, invalidPayload(err))
		return
	}
	parecer, err := h.service.Generate(c.Request.Context(), caller, req)
	if err != nil {
		response.LegacyFail(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.GenerateParecerResponse{Success: true, Parecer: parecer})
}

// ListByStudent godoc
// @Summary List a student's report drafts
// @Tags Pareceres
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /alunos/{id}/pareceres [get]
func (h *ParecerHandler) ListByStudent(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.ListByStudent(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get a report draft
// @Tags Pareceres
// @Produce json
// @Param id path string true "Parecer ID"
// @Success 200 {object} response.Envelope
// @Router /pareceres/{id} [get]
func (h *ParecerHandler) Get(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Update godoc
// @Summary Edit a report draft
// @Tags Pareceres
// @Accept json
// @Produce json
// @Param id path string true "Parecer ID"
// @Param payload body dto.UpdateParecerRequest true "Edited content or status"
// @Success 200 {object} response.Envelope
// @Router /pareceres/{id} [put]
func (h *ParecerHandler) Update(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateParecerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	item, err := h.service.Update(c.Request.Context(), caller, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// PDF godoc
// @Summary Download a report draft as PDF
// @Tags Pareceres
// @Produce application/pdf
// @Param id path string true "Parecer ID"
// @Success 200 {file} binary
// @Router /pareceres/{id}/pdf [get]
func (h *ParecerHandler) PDF(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export service not configured"))
		return
	}
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.ParecerPDF(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}

func sendFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

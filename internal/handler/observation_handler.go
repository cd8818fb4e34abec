package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/parecer-api/internal/dto"
	"github.com/noah-isme/parecer-api/internal/models"
	"github.com/noah-isme/parecer-api/internal/service"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
	"github.com/noah-isme/parecer-api/pkg/response"
)

type recordsExporter interface {
	RecordsCSV(ctx context.Context, callerID string, filter models.ObservationFilter) (*service.ExportFile, error)
}

type mediaUploader interface {
	Upload(ctx context.Context, callerID, filename string, data []byte) (*dto.MediaUploadResponse, error)
}

// ObservationHandler exposes the observation log, its CSV export and media uploads.
type ObservationHandler struct {
	records  *service.ObservationService
	exporter recordsExporter
	media    mediaUploader
	maxBytes int64
}

// NewObservationHandler constructs ObservationHandler. maxUploadBytes caps the multipart file read.
func NewObservationHandler(records *service.ObservationService, exporter recordsExporter, media mediaUploader, maxUploadBytes int64) *ObservationHandler {
	return &ObservationHandler{records: records, exporter: exporter, media: media, maxBytes: maxUploadBytes}
}

// List godoc
// @Summary List observation records
// @Tags Registros
// @Produce json
// @Param aluno_id query string false "Student ID"
// @Param de query string false "From date (YYYY-MM-DD, inclusive)"
// @Param ate query string false "To date (YYYY-MM-DD, inclusive)"
// @Param tipo query string false "texto, foto, audio or video"
// @Param evidencia query bool false "Only evidence records"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /registros [get]
func (h *ObservationHandler) List(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter, err := parseObservationFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	records, pagination, err := h.records.List(c.Request.Context(), caller, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}

// Get godoc
// @Summary Get observation record
// @Tags Registros
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Router /registros/{id} [get]
func (h *ObservationHandler) Get(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.records.Get(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Create godoc
// @Summary Create observation record
// @Tags Registros
// @Accept json
// @Produce json
// @Param payload body service.ObservationRequest true "Record payload"
// @Success 201 {object} response.Envelope
// @Router /registros [post]
func (h *ObservationHandler) Create(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	record, err := h.records.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Update observation record
// @Tags Registros
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param payload body service.ObservationRequest true "Record payload"
// @Success 200 {object} response.Envelope
// @Router /registros/{id} [put]
func (h *ObservationHandler) Update(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	record, err := h.records.Update(c.Request.Context(), caller, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Deactivate observation record
// @Tags Registros
// @Param id path string true "Record ID"
// @Success 204
// @Router /registros/{id} [delete]
func (h *ObservationHandler) Delete(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.records.Delete(c.Request.Context(), caller, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportCSV godoc
// @Summary Export observation records as CSV
// @Tags Registros
// @Produce text/csv
// @Param aluno_id query string false "Student ID"
// @Param de query string false "From date (YYYY-MM-DD, inclusive)"
// @Param ate query string false "To date (YYYY-MM-DD, inclusive)"
// @Param tipo query string false "texto, foto, audio or video"
// @Param evidencia query bool false "Only evidence records"
// @Success 200 {file} binary
// @Router /registros/exportar [get]
func (h *ObservationHandler) ExportCSV(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "export service not configured"))
		return
	}
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter, err := parseObservationFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exporter.RecordsCSV(c.Request.Context(), caller, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}

// UploadMedia godoc
// @Summary Upload a photo, audio or video for a record
// @Tags Registros
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Media file"
// @Success 201 {object} response.Envelope
// @Router /registros/midia [post]
func (h *ObservationHandler) UploadMedia(c *gin.Context) {
	if h.media == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "media service not configured"))
		return
	}
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	// One byte over the cap lets the service report the size error.
	data, err := io.ReadAll(io.LimitReader(src, h.maxBytes+1))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to buffer file"))
		return
	}
	uploaded, err := h.media.Upload(c.Request.Context(), caller, fileHeader.Filename, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, uploaded)
}

func parseObservationFilter(c *gin.Context) (models.ObservationFilter, error) {
	from, err := parseDateParam(c.Query("de"))
	if err != nil {
		return models.ObservationFilter{}, err
	}
	to, err := parseDateParam(c.Query("ate"))
	if err != nil {
		return models.ObservationFilter{}, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return models.ObservationFilter{}, appErrors.Clone(appErrors.ErrValidation, "ate must not be before de")
	}
	return models.ObservationFilter{
		StudentID: c.Query("aluno_id"),
		From:      from,
		To:        to,
		Kind:      models.ObservationKind(c.Query("tipo")),
		Evidence:  parseBoolParam(c.Query("evidencia")),
		Page:      parseQueryInt(c, "page", 1),
		PageSize:  parseQueryInt(c, "limit", 20),
	}, nil
}

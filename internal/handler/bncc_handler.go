package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/parecer-api/internal/models"
	"github.com/noah-isme/parecer-api/internal/service"
	"github.com/noah-isme/parecer-api/pkg/response"
)

// BNCCTagHandler exposes the shared curriculum objective catalogue.
type BNCCTagHandler struct {
	tags *service.BNCCTagService
}

// NewBNCCTagHandler constructs BNCCTagHandler.
func NewBNCCTagHandler(tags *service.BNCCTagService) *BNCCTagHandler {
	return &BNCCTagHandler{tags: tags}
}

// List godoc
// @Summary List BNCC objectives
// @Tags BNCC
// @Produce json
// @Param campo query string false "Campo de experiência"
// @Param faixa query string false "Faixa etária"
// @Param search query string false "Search code or description"
// @Success 200 {object} response.Envelope
// @Router /tags-bncc [get]
func (h *BNCCTagHandler) List(c *gin.Context) {
	filter := models.BNCCTagFilter{
		CampoExperiencia: c.Query("campo"),
		FaixaEtaria:      c.Query("faixa"),
		Search:           strings.TrimSpace(c.Query("search")),
	}
	tags, err := h.tags.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tags, nil)
}

// Create godoc
// @Summary Register a BNCC objective
// @Tags BNCC
// @Accept json
// @Produce json
// @Param payload body service.BNCCTagRequest true "Tag payload"
// @Success 201 {object} response.Envelope
// @Router /tags-bncc [post]
func (h *BNCCTagHandler) Create(c *gin.Context) {
	var req service.BNCCTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	tag, err := h.tags.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tag)
}

// Delete godoc
// @Summary Deactivate a BNCC objective
// @Tags BNCC
// @Param id path string true "Tag ID"
// @Success 204
// @Router /tags-bncc/{id} [delete]
func (h *BNCCTagHandler) Delete(c *gin.Context) {
	if err := h.tags.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

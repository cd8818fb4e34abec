package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/parecer-api/internal/service"
	"github.com/noah-isme/parecer-api/pkg/response"
)

// MilestoneHandler exposes developmental milestones of a student.
type MilestoneHandler struct {
	milestones *service.MilestoneService
}

// NewMilestoneHandler constructs MilestoneHandler.
func NewMilestoneHandler(milestones *service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones}
}

// List godoc
// @Summary List milestones of a student
// @Tags Marcos
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /alunos/{id}/marcos [get]
func (h *MilestoneHandler) List(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.milestones.List(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Record a milestone
// @Tags Marcos
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.MilestoneRequest true "Milestone payload"
// @Success 201 {object} response.Envelope
// @Router /alunos/{id}/marcos [post]
func (h *MilestoneHandler) Create(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	item, err := h.milestones.Create(c.Request.Context(), caller, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Delete godoc
// @Summary Delete a milestone
// @Tags Marcos
// @Param id path string true "Student ID"
// @Param marcoId path string true "Milestone ID"
// @Success 204
// @Router /alunos/{id}/marcos/{marcoId} [delete]
func (h *MilestoneHandler) Delete(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.milestones.Delete(c.Request.Context(), caller, c.Param("id"), c.Param("marcoId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

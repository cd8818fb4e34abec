package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/parecer-api/internal/service"
	"github.com/noah-isme/parecer-api/pkg/response"
)

// TeacherProfileHandler exposes the caller's writing preferences.
type TeacherProfileHandler struct {
	profiles *service.TeacherProfileService
}

// NewTeacherProfileHandler constructs TeacherProfileHandler.
func NewTeacherProfileHandler(profiles *service.TeacherProfileService) *TeacherProfileHandler {
	return &TeacherProfileHandler{profiles: profiles}
}

// Get godoc
// @Summary Get the caller's profile
// @Tags Professor
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /professor/perfil [get]
func (h *TeacherProfileHandler) Get(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	profile, err := h.profiles.Get(c.Request.Context(), caller)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Save godoc
// @Summary Create or replace the caller's profile
// @Tags Professor
// @Accept json
// @Produce json
// @Param payload body service.TeacherProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Router /professor/perfil [put]
func (h *TeacherProfileHandler) Save(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.TeacherProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	profile, err := h.profiles.Save(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

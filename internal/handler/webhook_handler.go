package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/parecer-api/internal/service"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
	"github.com/noah-isme/parecer-api/pkg/response"
)

const maxWebhookRequest = 1 << 20

type webhookForwarder interface {
	Forward(ctx context.Context, body []byte) (*service.WebhookResult, error)
}

// WebhookHandler relays browser calls to the automation endpoint.
type WebhookHandler struct {
	forwarder webhookForwarder
}

// NewWebhookHandler constructs the handler.
func NewWebhookHandler(forwarder webhookForwarder) *WebhookHandler {
	return &WebhookHandler{forwarder: forwarder}
}

// Forward godoc
// @Summary Relay a JSON body to the automation webhook
// @Tags Webhook
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.LegacyError
// @Failure 413 {object} response.LegacyError
// @Failure 500 {object} response.LegacyError
// @Router /webhook [post]
func (h *WebhookHandler) Forward(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookRequest+1))
	if err != nil {
		writeLegacy(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(body) > maxWebhookRequest {
		writeLegacy(c, http.StatusRequestEntityTooLarge, "payload excede o limite de 1 MiB")
		return
	}

	result, err := h.forwarder.Forward(c.Request.Context(), body)
	if err != nil {
		var rejection *service.WebhookRejection
		if errors.As(err, &rejection) {
			writeLegacy(c, rejection.Status, rejection.Body)
			return
		}
		appErr := appErrors.FromError(err)
		writeLegacy(c, appErr.Status, appErr.Message)
		return
	}

	if len(result.Body) == 0 {
		c.Status(result.Status)
		return
	}
	c.Data(result.Status, "application/json; charset=utf-8", result.Body)
}

func writeLegacy(c *gin.Context, status int, message string) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, response.LegacyError{Error: message})
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
)

// WebhookForwardFailed is the message returned when the automation endpoint cannot be reached
// or answers with something that is not JSON.
const WebhookForwardFailed = "Falha ao encaminhar requisição ao webhook"

const maxWebhookResponse = 4 << 20

// WebhookRejection reports a non-2xx answer from the automation endpoint.
type WebhookRejection struct {
	Status int
	Body   string
}

func (e *WebhookRejection) Error() string {
	return fmt.Sprintf("webhook responded %d: %s", e.Status, e.Body)
}

// WebhookResult is a successful upstream answer. Body is empty or valid JSON.
type WebhookResult struct {
	Status int
	Body   json.RawMessage
}

// WebhookService relays request bodies to the configured automation endpoint.
type WebhookService struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewWebhookService constructs a WebhookService. An empty url is reported per request.
func NewWebhookService(url string, client *http.Client, logger *zap.Logger) *WebhookService {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookService{url: url, client: client, logger: logger}
}

// Forward POSTs body as JSON. It returns a configuration error when no URL is set, a
// *WebhookRejection for non-2xx answers and an upstream error for transport or decoding failures.
func (s *WebhookService) Forward(ctx context.Context, body []byte) (*WebhookResult, error) {
	if s.url == "" {
		return nil, appErrors.Clone(appErrors.ErrConfiguration, "WEBHOOK_URL não configurada")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, appErrors.As(appErrors.ErrUpstream, err, WebhookForwardFailed)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("webhook transport failed", zap.Error(err))
		return nil, appErrors.As(appErrors.ErrUpstream, err, WebhookForwardFailed)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxWebhookResponse))
	if err != nil {
		return nil, appErrors.As(appErrors.ErrUpstream, err, WebhookForwardFailed)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Warn("webhook rejected request", zap.Int("status", resp.StatusCode))
		return nil, &WebhookRejection{Status: resp.StatusCode, Body: string(payload)}
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return &WebhookResult{Status: resp.StatusCode}, nil
	}
	if !json.Valid(payload) {
		snippet := strings.TrimSpace(string(payload))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, appErrors.As(appErrors.ErrUpstream, fmt.Errorf("invalid json from webhook: %q", snippet), WebhookForwardFailed)
	}
	return &WebhookResult{Status: resp.StatusCode, Body: json.RawMessage(payload)}, nil
}

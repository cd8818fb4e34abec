package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/parecer-api/internal/service"
)

func newWebhookRouter(t *testing.T, upstream http.HandlerFunc, url string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if upstream != nil {
		srv := httptest.NewServer(upstream)
		t.Cleanup(srv.Close)
		url = srv.URL
	}
	h := NewWebhookHandler(service.NewWebhookService(url, nil, nil))
	r := gin.New()
	r.POST("/api/webhook", h.Forward)
	return r
}

func postWebhook(r *gin.Engine, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewBufferString(body)))
	return rec
}

func TestWebhookRelaysUpstreamJSON(t *testing.T) {
	var received map[string]interface{}
	r := newWebhookRouter(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		_ = json.NewDecoder(req.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}, "")

	rec := postWebhook(r, `{"evento":"teste"}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "teste", received["evento"])
}

func TestWebhookPassesThroughUpstreamFailure(t *testing.T) {
	r := newWebhookRouter(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("Service Unavailable"))
	}, "")

	rec := postWebhook(r, `{}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"Service Unavailable"}`, rec.Body.String())
}

func TestWebhookWithoutURL(t *testing.T) {
	r := newWebhookRouter(t, nil, "")

	rec := postWebhook(r, `{}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"WEBHOOK_URL não configurada"}`, rec.Body.String())
}

func TestWebhookTransportFailure(t *testing.T) {
	r := newWebhookRouter(t, nil, "http://127.0.0.1:1")

	rec := postWebhook(r, `{}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Falha ao encaminhar requisição ao webhook"}`, rec.Body.String())
}

type stubForwarder struct{ result *service.WebhookResult }

func (s stubForwarder) Forward(context.Context, []byte) (*service.WebhookResult, error) {
	return s.result, nil
}

func TestWebhookEmptyUpstreamBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler(stubForwarder{result: &service.WebhookResult{Status: http.StatusNoContent}})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/webhook", bytes.NewBufferString(`{}`))

	h.Forward(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWebhookRejectsOversizedBodyWithoutCallingUpstream(t *testing.T) {
	calls := 0
	r := newWebhookRouter(t, func(w http.ResponseWriter, req *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}, "")

	payload := `{"blob":"` + strings.Repeat("a", maxWebhookRequest) + `"}`
	rec := postWebhook(r, payload)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "limite")
	assert.Zero(t, calls)
}

func TestWebhookForwardsBodyAtLimitVerbatim(t *testing.T) {
	var received int
	r := newWebhookRouter(t, func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		received = len(body)
		w.WriteHeader(http.StatusNoContent)
	}, "")

	payload := `{"blob":"` + strings.Repeat("a", maxWebhookRequest-11) + `"}`
	require.Len(t, payload, maxWebhookRequest)
	rec := postWebhook(r, payload)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, maxWebhookRequest, received)
}

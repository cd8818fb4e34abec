package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
)

func TestWebhookForwardRelaysJSON(t *testing.T) {
	var gotBody string
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"queued":true}`))
	}))
	defer srv.Close()

	res, err := NewWebhookService(srv.URL, srv.Client(), nil).Forward(context.Background(), []byte(`{"evento":"parecer"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, res.Status)
	assert.JSONEq(t, `{"queued":true}`, string(res.Body))
	assert.Equal(t, `{"evento":"parecer"}`, gotBody)
	assert.Equal(t, "application/json", gotType)
}

func TestWebhookForwardUpstream503(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("Service Unavailable"))
	}))
	defer srv.Close()

	_, err := NewWebhookService(srv.URL, srv.Client(), nil).Forward(context.Background(), []byte(`{}`))
	var rejection *WebhookRejection
	require.True(t, errors.As(err, &rejection))
	assert.Equal(t, http.StatusServiceUnavailable, rejection.Status)
	assert.Equal(t, "Service Unavailable", rejection.Body)
}

func TestWebhookForwardWithoutURL(t *testing.T) {
	_, err := NewWebhookService("", nil, nil).Forward(context.Background(), []byte(`{}`))
	assert.Equal(t, appErrors.ErrConfiguration.Code, appErrors.FromError(err).Code)
}

func TestWebhookForwardTransportAndDecodeFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	url := srv.URL
	client := srv.Client()

	_, err := NewWebhookService(url, client, nil).Forward(context.Background(), []byte(`{}`))
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, WebhookForwardFailed, appErr.Message)

	srv.Close()
	_, err = NewWebhookService(url, client, nil).Forward(context.Background(), []byte(`{}`))
	appErr = appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, WebhookForwardFailed, appErr.Message)
}

func TestWebhookForwardEmptySuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	res, err := NewWebhookService(srv.URL, srv.Client(), nil).Forward(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, res.Status)
	assert.Empty(t, res.Body)
}

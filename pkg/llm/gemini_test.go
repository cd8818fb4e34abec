package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedPart struct {
	Text       string `json:"text"`
	InlineData *struct {
		MIMEType string `json:"mimeType"`
		Data     string `json:"data"`
	} `json:"inlineData"`
}

type capturedRequest struct {
	Contents []struct {
		Role  string         `json:"role"`
		Parts []capturedPart `json:"parts"`
	} `json:"contents"`
}

func newGeminiServer(t *testing.T, reply string, captured *capturedRequest, path *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*path = r.URL.Path
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, reply)
	}))
}

func TestGeminiGenerateTextOnly(t *testing.T) {
	var captured capturedRequest
	var path string
	srv := newGeminiServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"## Parecer\nTexto"}]}}]}`, &captured, &path)
	defer srv.Close()

	g := NewGemini(GeminiConfig{APIKey: "k", Model: "gemini-test", BaseURL: srv.URL, HTTPClient: srv.Client()})
	out, err := g.Generate(context.Background(), Request{Prompt: "escreva"})
	require.NoError(t, err)

	assert.Equal(t, "## Parecer\nTexto", out)
	assert.True(t, strings.HasSuffix(path, "models/gemini-test:generateContent"))
	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "user", captured.Contents[0].Role)
	require.Len(t, captured.Contents[0].Parts, 1)
	assert.Equal(t, "escreva", captured.Contents[0].Parts[0].Text)
}

func TestGeminiGenerateWithInlineAudio(t *testing.T) {
	var captured capturedRequest
	var path string
	srv := newGeminiServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"ok"}]}}]}`, &captured, &path)
	defer srv.Close()

	audio := []byte{0x1a, 0x45, 0xdf, 0xa3, 0x00, 0xff}
	g := NewGemini(GeminiConfig{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := g.Generate(context.Background(), Request{Prompt: "p", Media: []InlineData{{MIMEType: "audio/webm", Data: audio}}})
	require.NoError(t, err)

	parts := captured.Contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "audio/webm", parts[1].InlineData.MIMEType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(audio), parts[1].InlineData.Data)
}

func TestGeminiMissingKey(t *testing.T) {
	g := NewGemini(GeminiConfig{})
	_, err := g.Generate(context.Background(), Request{Prompt: "p"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGeminiEmptyCompletion(t *testing.T) {
	var captured capturedRequest
	var path string
	srv := newGeminiServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"   "}]}}]}`, &captured, &path)
	defer srv.Close()

	g := NewGemini(GeminiConfig{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := g.Generate(context.Background(), Request{Prompt: "p"})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

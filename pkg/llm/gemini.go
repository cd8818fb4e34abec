package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// ErrMissingAPIKey is returned on first use when no API key was configured.
var ErrMissingAPIKey = errors.New("generative AI API key not configured")

// ErrEmptyCompletion is returned when the model answers without any text part.
var ErrEmptyCompletion = errors.New("model returned an empty completion")

// InlineData is a binary attachment sent inside the request body. The SDK base64-encodes Data
// on the wire.
type InlineData struct {
	MIMEType string
	Data     []byte
}

// Request is a single-turn generation request.
type Request struct {
	Prompt string
	Media  []InlineData
}

// GeminiConfig configures the Gemini client.
type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Gemini generates text with the Gemini API. The underlying client is built on first use.
type Gemini struct {
	cfg GeminiConfig

	mu     sync.Mutex
	client *genai.Client
}

// NewGemini returns an unconnected Gemini generator.
func NewGemini(cfg GeminiConfig) *Gemini {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	return &Gemini{cfg: cfg}
}

// Model reports the configured model name.
func (g *Gemini) Model() string {
	return g.cfg.Model
}

// Generate submits the prompt (plus any inline media as extra parts of the same user turn)
// and returns the concatenated text of the first candidate.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	client, err := g.connect(ctx)
	if err != nil {
		return "", err
	}

	parts := make([]*genai.Part, 0, 1+len(req.Media))
	parts = append(parts, genai.NewPartFromText(req.Prompt))
	for _, m := range req.Media {
		parts = append(parts, genai.NewPartFromBytes(m.Data, m.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func (g *Gemini) connect(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	if g.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	cc := &genai.ClientConfig{
		APIKey:     g.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.cfg.HTTPClient,
	}
	if g.cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	return client, nil
}

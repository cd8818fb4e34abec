package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/noah-isme/parecer-api/pkg/llm"
)

// ErrAudioHostNotAllowed is returned for audio URLs outside the allowed hosts or not over HTTP(S).
var ErrAudioHostNotAllowed = errors.New("audio host not allowed")

// AudioFetcher downloads voice instructions referenced by URL so they can be sent inline to the
// model.
type AudioFetcher struct {
	client       *http.Client
	defaultMIME  string
	maxBytes     int64
	allowedHosts map[string]struct{}
}

// NewAudioFetcher constructs an AudioFetcher. defaultMIME is used when the response does not
// declare an audio content type.
func NewAudioFetcher(client *http.Client, defaultMIME string, maxBytes int64) *AudioFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if defaultMIME == "" {
		defaultMIME = "audio/webm"
	}
	if maxBytes <= 0 {
		maxBytes = 25 << 20
	}
	return &AudioFetcher{client: client, defaultMIME: defaultMIME, maxBytes: maxBytes}
}

// WithAllowedHosts restricts fetches, redirects included, to the given hosts (host or host:port,
// compared case-insensitively). Empty entries are ignored; with no hosts any host is accepted.
func (f *AudioFetcher) WithAllowedHosts(hosts ...string) *AudioFetcher {
	allowed := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allowed[h] = struct{}{}
		}
	}
	if len(allowed) == 0 {
		return f
	}
	f.allowedHosts = allowed
	client := *f.client
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 5 {
			return errors.New("too many redirects")
		}
		return f.checkURL(req.URL)
	}
	f.client = &client
	return f
}

func (f *AudioFetcher) checkURL(u *url.URL) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrAudioHostNotAllowed, u.Scheme)
	}
	if f.allowedHosts == nil {
		return nil
	}
	host := strings.ToLower(u.Host)
	if _, ok := f.allowedHosts[host]; ok {
		return nil
	}
	if _, ok := f.allowedHosts[strings.ToLower(u.Hostname())]; ok {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrAudioHostNotAllowed, u.Host)
}

// Fetch GETs rawURL and returns its bytes tagged with a MIME type.
func (f *AudioFetcher) Fetch(ctx context.Context, rawURL string) (llm.InlineData, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return llm.InlineData{}, fmt.Errorf("%w: %v", ErrAudioHostNotAllowed, err)
	}
	if err := f.checkURL(u); err != nil {
		return llm.InlineData{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return llm.InlineData{}, fmt.Errorf("build audio request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return llm.InlineData{}, fmt.Errorf("fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return llm.InlineData{}, fmt.Errorf("fetch audio: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return llm.InlineData{}, fmt.Errorf("read audio: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return llm.InlineData{}, fmt.Errorf("audio exceeds %d bytes", f.maxBytes)
	}
	return llm.InlineData{MIMEType: f.mimeType(resp.Header.Get("Content-Type")), Data: data}, nil
}

func (f *AudioFetcher) mimeType(header string) string {
	mediaType, _, err := mime.ParseMediaType(header)
	if err == nil && strings.HasPrefix(mediaType, "audio/") {
		return mediaType
	}
	return f.defaultMIME
}

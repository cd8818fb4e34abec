package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/noah-isme/parecer-api/pkg/config"
)

// ErrNotConfigured is returned when the storage URL or service key is missing.
var ErrNotConfigured = errors.New("object storage not configured")

// SupabaseStorage talks to the hosted storage REST API with the service-role key.
type SupabaseStorage struct {
	baseURL string
	key     string
	bucket  string
	client  *http.Client
}

// NewSupabaseStorage constructs a storage client. Missing settings are only reported on use.
func NewSupabaseStorage(cfg config.StorageConfig, client *http.Client) *SupabaseStorage {
	if client == nil {
		client = http.DefaultClient
	}
	return &SupabaseStorage{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		key:     cfg.ServiceKey,
		bucket:  cfg.Bucket,
		client:  client,
	}
}

// Upload stores data under objectPath, overwriting any previous object, and returns its public URL.
func (s *SupabaseStorage) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	if s.baseURL == "" || s.key == "" {
		return "", ErrNotConfigured
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, escapePath(objectPath))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("apikey", s.key)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	if err := s.do(req); err != nil {
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	return s.PublicURL(objectPath), nil
}

// Delete removes the object at objectPath.
func (s *SupabaseStorage) Delete(ctx context.Context, objectPath string) error {
	if s.baseURL == "" || s.key == "" {
		return ErrNotConfigured
	}
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, escapePath(objectPath))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("apikey", s.key)

	if err := s.do(req); err != nil {
		return fmt.Errorf("delete %s: %w", objectPath, err)
	}
	return nil
}

// PublicURL returns the public download URL of objectPath.
func (s *SupabaseStorage) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, escapePath(objectPath))
}

// ObjectPath extracts the object path from a public URL of this bucket.
func (s *SupabaseStorage) ObjectPath(publicURL string) (string, bool) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", false
	}
	prefix := "/storage/v1/object/public/" + s.bucket + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return "", false
	}
	return strings.TrimPrefix(u.Path, prefix), true
}

func (s *SupabaseStorage) do(req *http.Request) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("storage status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func escapePath(p string) string {
	parts := strings.Split(strings.TrimLeft(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/parecer-api/internal/dto"
	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
	"github.com/noah-isme/parecer-api/pkg/storage"
)

type objectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, objectPath string) error
	ObjectPath(publicURL string) (string, bool)
}

// MediaConfig tunes uploads.
type MediaConfig struct {
	ImageMaxSide   int
	MaxUploadBytes int64
}

// MediaService stores observation attachments in object storage. Photos are re-encoded to a
// bounded JPEG before upload.
type MediaService struct {
	store  objectStore
	logger *zap.Logger
	cfg    MediaConfig
	now    func() time.Time
}

// NewMediaService constructs a MediaService.
func NewMediaService(store objectStore, cfg MediaConfig, logger *zap.Logger) *MediaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 50 << 20
	}
	return &MediaService{store: store, logger: logger, cfg: cfg, now: time.Now}
}

// Upload stores data for callerID and returns the public URL to attach to a record.
func (s *MediaService) Upload(ctx context.Context, callerID, filename string, data []byte) (*dto.MediaUploadResponse, error) {
	if len(data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "arquivo vazio")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("arquivo excede %d bytes", s.cfg.MaxUploadBytes))
	}

	contentType := http.DetectContentType(data)
	if byExt := mime.TypeByExtension(strings.ToLower(path.Ext(filename))); contentType == "application/octet-stream" && byExt != "" {
		contentType = byExt
	}
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}

	kind, ext, err := classifyMedia(contentType, filename)
	if err != nil {
		return nil, err
	}
	if kind == models.ObservationPhoto {
		data, err = storage.DownscaleJPEG(data, s.cfg.ImageMaxSide)
		if err != nil {
			return nil, appErrors.As(appErrors.ErrValidation, err, "imagem inválida")
		}
		contentType = "image/jpeg"
		ext = ".jpg"
	}

	now := s.now().UTC()
	objectPath := fmt.Sprintf("%s/%04d/%02d/%s%s", callerID, now.Year(), int(now.Month()), uuid.NewString(), ext)
	url, err := s.store.Upload(ctx, objectPath, contentType, data)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			return nil, appErrors.As(appErrors.ErrConfiguration, err, "armazenamento não configurado")
		}
		return nil, appErrors.As(appErrors.ErrUpstream, err, "falha ao enviar arquivo")
	}
	return &dto.MediaUploadResponse{URL: url, Kind: string(kind), ContentType: contentType, Size: len(data)}, nil
}

// Remove deletes the object behind publicURL. Failures are logged only; URLs outside the bucket
// are ignored.
func (s *MediaService) Remove(ctx context.Context, publicURL string) {
	objectPath, ok := s.store.ObjectPath(publicURL)
	if !ok {
		return
	}
	if err := s.store.Delete(ctx, objectPath); err != nil {
		s.logger.Warn("media delete failed", zap.String("path", objectPath), zap.Error(err))
	}
}

func classifyMedia(contentType, filename string) (models.ObservationKind, string, error) {
	ext := strings.ToLower(path.Ext(filename))
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.ObservationPhoto, ".jpg", nil
	case strings.HasPrefix(contentType, "audio/"):
		return models.ObservationAudio, extOr(ext, contentType), nil
	case strings.HasPrefix(contentType, "video/"):
		return models.ObservationVideo, extOr(ext, contentType), nil
	}
	return "", "", appErrors.Clone(appErrors.ErrValidation, "tipo de arquivo não suportado: "+contentType)
}

func extOr(ext, contentType string) string {
	if ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

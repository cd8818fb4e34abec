package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
)

type observationRepository interface {
	List(ctx context.Context, filter models.ObservationFilter) ([]models.ObservationRecord, int, error)
	FindByID(ctx context.Context, id string) (*models.ObservationRecord, error)
	Create(ctx context.Context, record *models.ObservationRecord) error
	Update(ctx context.Context, record *models.ObservationRecord) error
	Deactivate(ctx context.Context, id string) error
}

type activityReader interface {
	FindByID(ctx context.Context, id string) (*models.Activity, error)
}

type dashboardInvalidator interface {
	InvalidateAll(ctx context.Context)
}

type mediaRemover interface {
	Remove(ctx context.Context, publicURL string)
}

// ObservationRequest is the payload for creating or updating a record.
type ObservationRequest struct {
	Kind          string     `json:"tipo" validate:"required,oneof=texto foto audio video"`
	Descricao     string     `json:"descricao" validate:"required,max=5000"`
	Transcription *string    `json:"transcricao_voz" validate:"omitempty,max=20000"`
	RecordedAt    *time.Time `json:"data_registro"`
	IsEvidence    bool       `json:"is_evidencia"`
	BNCCTags      []string   `json:"tags_bncc" validate:"omitempty,dive,required"`
	ActivityID    *string    `json:"atividade_id"`
	MediaURL      *string    `json:"midia_url" validate:"omitempty,url"`
	StudentIDs    []string   `json:"aluno_ids" validate:"required,min=1,dive,required"`
}

// ObservationService manages the observation log.
type ObservationService struct {
	repo       observationRepository
	students   studentReader
	activities activityReader
	dashboard  dashboardInvalidator
	media      mediaRemover
	validator  *validator.Validate
	logger     *zap.Logger
}

// ObservationServiceParams groups constructor dependencies.
type ObservationServiceParams struct {
	Repo       observationRepository
	Students   studentReader
	Activities activityReader
	Dashboard  dashboardInvalidator
	Media      mediaRemover
	Validator  *validator.Validate
	Logger     *zap.Logger
}

// NewObservationService constructs an ObservationService. Dashboard and Media are optional.
func NewObservationService(params ObservationServiceParams) *ObservationService {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &ObservationService{
		repo:       params.Repo,
		students:   params.Students,
		activities: params.Activities,
		dashboard:  params.Dashboard,
		media:      params.Media,
		validator:  params.Validator,
		logger:     params.Logger,
	}
}

// List returns the caller's records.
func (s *ObservationService) List(ctx context.Context, callerID string, filter models.ObservationFilter) ([]models.ObservationRecord, *models.Pagination, error) {
	filter.OwnerID = callerID
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "tipo inválido")
	}
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, persistenceError(err, "failed to list records")
	}
	return records, pagination(filter.Page, filter.PageSize, total), nil
}

// Get returns one of the caller's records.
func (s *ObservationService) Get(ctx context.Context, callerID, id string) (*models.ObservationRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Registro não encontrado", "failed to load record")
	}
	if record.OwnerID != callerID || !record.Active {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Registro não encontrado")
	}
	return record, nil
}

// Create logs a record about one or more of the caller's students.
func (s *ObservationService) Create(ctx context.Context, callerID string, req ObservationRequest) (*models.ObservationRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid record payload")
	}
	if err := s.checkLinks(ctx, callerID, req); err != nil {
		return nil, err
	}
	record := &models.ObservationRecord{OwnerID: callerID, Active: true}
	applyObservation(record, req)
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, persistenceError(err, "failed to create record")
	}
	s.invalidate(ctx)
	return record, nil
}

// Update rewrites a record and its student links.
func (s *ObservationService) Update(ctx context.Context, callerID, id string, req ObservationRequest) (*models.ObservationRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid record payload")
	}
	record, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkLinks(ctx, callerID, req); err != nil {
		return nil, err
	}
	previousMedia := record.MediaURL
	applyObservation(record, req)
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, persistenceError(err, "failed to update record")
	}
	if previousMedia != nil && (record.MediaURL == nil || *record.MediaURL != *previousMedia) {
		s.removeMedia(ctx, *previousMedia)
	}
	s.invalidate(ctx)
	return record, nil
}

// Delete soft-deletes a record and drops its stored media.
func (s *ObservationService) Delete(ctx context.Context, callerID, id string) error {
	record, err := s.Get(ctx, callerID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return persistenceError(err, "failed to delete record")
	}
	if record.MediaURL != nil {
		s.removeMedia(ctx, *record.MediaURL)
	}
	s.invalidate(ctx)
	return nil
}

func (s *ObservationService) checkLinks(ctx context.Context, callerID string, req ObservationRequest) error {
	for _, studentID := range req.StudentIDs {
		student, err := s.students.FindByID(ctx, studentID)
		if err != nil {
			return lookupError(err, studentNotFoundMessage, "failed to load student")
		}
		if err := ensureStudentOwner(student, callerID); err != nil {
			return err
		}
	}
	if req.ActivityID != nil && *req.ActivityID != "" {
		activity, err := s.activities.FindByID(ctx, *req.ActivityID)
		if err != nil {
			return lookupError(err, "Atividade não encontrada", "failed to load activity")
		}
		if activity.OwnerID != callerID {
			return appErrors.Clone(appErrors.ErrForbidden, "atividade pertence a outro professor")
		}
	}
	return nil
}

func applyObservation(record *models.ObservationRecord, req ObservationRequest) {
	record.Kind = models.ObservationKind(req.Kind)
	record.Descricao = req.Descricao
	record.Transcription = req.Transcription
	record.IsEvidence = req.IsEvidence
	record.BNCCTags = pq.StringArray(req.BNCCTags)
	if record.BNCCTags == nil {
		record.BNCCTags = pq.StringArray{}
	}
	record.ActivityID = req.ActivityID
	if record.ActivityID != nil && *record.ActivityID == "" {
		record.ActivityID = nil
	}
	record.MediaURL = req.MediaURL
	if req.RecordedAt != nil {
		record.RecordedAt = req.RecordedAt.UTC()
	}
	record.StudentIDs = uniqueStrings(req.StudentIDs)
}

func (s *ObservationService) invalidate(ctx context.Context) {
	if s.dashboard != nil {
		s.dashboard.InvalidateAll(ctx)
	}
}

func (s *ObservationService) removeMedia(ctx context.Context, url string) {
	if s.media != nil {
		s.media.Remove(ctx, url)
	}
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
)

type activityRepository interface {
	List(ctx context.Context, ownerID string) ([]models.Activity, error)
	FindByID(ctx context.Context, id string) (*models.Activity, error)
	Create(ctx context.Context, item *models.Activity) error
	Update(ctx context.Context, item *models.Activity) error
	Deactivate(ctx context.Context, id string) error
}

// ActivityRequest is the payload for activity templates.
type ActivityRequest struct {
	Titulo           string  `json:"titulo" validate:"required,max=120"`
	Descricao        string  `json:"descricao" validate:"max=2000"`
	CampoExperiencia *string `json:"campo_experiencia" validate:"omitempty,max=120"`
}

// ActivityService manages activity templates. Renaming a template relabels every record
// linked to it.
type ActivityService struct {
	repo      activityRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewActivityService constructs an ActivityService.
func NewActivityService(repo activityRepository, validate *validator.Validate, logger *zap.Logger) *ActivityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{repo: repo, validator: validate, logger: logger}
}

// List returns the caller's templates.
func (s *ActivityService) List(ctx context.Context, callerID string) ([]models.Activity, error) {
	items, err := s.repo.List(ctx, callerID)
	if err != nil {
		return nil, persistenceError(err, "failed to list activities")
	}
	return items, nil
}

// Get returns one of the caller's templates.
func (s *ActivityService) Get(ctx context.Context, callerID, id string) (*models.Activity, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Atividade não encontrada", "failed to load activity")
	}
	if item.OwnerID != callerID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "atividade pertence a outro professor")
	}
	return item, nil
}

// Create stores a new template.
func (s *ActivityService) Create(ctx context.Context, callerID string, req ActivityRequest) (*models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid activity payload")
	}
	item := &models.Activity{Titulo: req.Titulo, Descricao: req.Descricao, CampoExperiencia: req.CampoExperiencia, OwnerID: callerID, Active: true}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, persistenceError(err, "failed to create activity")
	}
	return item, nil
}

// Update modifies a template.
func (s *ActivityService) Update(ctx context.Context, callerID, id string, req ActivityRequest) (*models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid activity payload")
	}
	item, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	item.Titulo = req.Titulo
	item.Descricao = req.Descricao
	item.CampoExperiencia = req.CampoExperiencia
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, persistenceError(err, "failed to update activity")
	}
	return item, nil
}

// Delete soft-deletes a template. Linked records keep their category label.
func (s *ActivityService) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.Get(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return persistenceError(err, "failed to delete activity")
	}
	return nil
}

package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/parecer-api/internal/models"
)

type classRepository interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Deactivate(ctx context.Context, id string) error
}

// ClassRequest is the payload for creating or updating a class.
type ClassRequest struct {
	Nome       string `json:"nome" validate:"required,max=120"`
	AgeGroup   string `json:"faixa_etaria" validate:"required,max=60"`
	SchoolYear int    `json:"ano_letivo" validate:"required,gte=2000,lte=2100"`
	Active     *bool  `json:"ativo"`
}

// ClassService manages the caller's classes.
type ClassService struct {
	repo      classRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService.
func NewClassService(repo classRepository, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, validator: validate, logger: logger}
}

// List returns classes owned by callerID.
func (s *ClassService) List(ctx context.Context, callerID string, active *bool) ([]models.Class, error) {
	classes, err := s.repo.List(ctx, models.ClassFilter{OwnerID: callerID, Active: active})
	if err != nil {
		return nil, persistenceError(err, "failed to list classes")
	}
	return classes, nil
}

// Get returns a class the caller owns.
func (s *ClassService) Get(ctx context.Context, callerID, id string) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Turma não encontrada", "failed to load class")
	}
	if err := ensureClassOwner(class, callerID); err != nil {
		return nil, err
	}
	return class, nil
}

// Create registers a class owned by callerID.
func (s *ClassService) Create(ctx context.Context, callerID string, req ClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	class := &models.Class{Nome: req.Nome, AgeGroup: req.AgeGroup, SchoolYear: req.SchoolYear, OwnerID: callerID, Active: true}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, persistenceError(err, "failed to create class")
	}
	return class, nil
}

// Update modifies a class the caller owns.
func (s *ClassService) Update(ctx context.Context, callerID, id string, req ClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	class, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	class.Nome = req.Nome
	class.AgeGroup = req.AgeGroup
	class.SchoolYear = req.SchoolYear
	if req.Active != nil {
		class.Active = *req.Active
	}
	if err := s.repo.Update(ctx, class); err != nil {
		return nil, persistenceError(err, "failed to update class")
	}
	return class, nil
}

// Delete soft-deletes a class the caller owns.
func (s *ClassService) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.Get(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return persistenceError(err, "failed to delete class")
	}
	s.logger.Info("class deactivated", zap.String("class_id", id), zap.String("user_id", callerID))
	return nil
}

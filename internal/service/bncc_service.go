package service

import (
	"context"
	"regexp"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
)

// bnccCodePattern matches early-childhood objective codes such as EI03EO01.
var bnccCodePattern = regexp.MustCompile(`^EI0[1-3][A-Z]{2}\d{2}$`)

type bnccTagRepository interface {
	List(ctx context.Context, filter models.BNCCTagFilter) ([]models.BNCCTag, error)
	FindByID(ctx context.Context, id string) (*models.BNCCTag, error)
	Create(ctx context.Context, tag *models.BNCCTag) error
	Deactivate(ctx context.Context, id string) error
}

// BNCCTagRequest is the payload for catalogue entries.
type BNCCTagRequest struct {
	Codigo           string `json:"codigo" validate:"required"`
	Descricao        string `json:"descricao" validate:"required"`
	CampoExperiencia string `json:"campo_experiencia" validate:"required"`
	FaixaEtaria      string `json:"faixa_etaria" validate:"required"`
}

// BNCCTagService exposes the BNCC catalogue.
type BNCCTagService struct {
	repo      bnccTagRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBNCCTagService constructs a BNCCTagService.
func NewBNCCTagService(repo bnccTagRepository, validate *validator.Validate, logger *zap.Logger) *BNCCTagService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BNCCTagService{repo: repo, validator: validate, logger: logger}
}

// List returns active catalogue entries.
func (s *BNCCTagService) List(ctx context.Context, filter models.BNCCTagFilter) ([]models.BNCCTag, error) {
	tags, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, persistenceError(err, "failed to list bncc tags")
	}
	return tags, nil
}

// Create adds a catalogue entry.
func (s *BNCCTagService) Create(ctx context.Context, req BNCCTagRequest) (*models.BNCCTag, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid bncc tag payload")
	}
	if !bnccCodePattern.MatchString(req.Codigo) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "código BNCC inválido")
	}
	tag := &models.BNCCTag{Codigo: req.Codigo, Descricao: req.Descricao, CampoExperiencia: req.CampoExperiencia, FaixaEtaria: req.FaixaEtaria, Active: true}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, persistenceError(err, "failed to create bncc tag")
	}
	return tag, nil
}

// Delete hides a catalogue entry.
func (s *BNCCTagService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return lookupError(err, "Tag BNCC não encontrada", "failed to load bncc tag")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return persistenceError(err, "failed to delete bncc tag")
	}
	return nil
}

package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/parecer-api/internal/models"
)

type teacherProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.TeacherProfile, error)
	Upsert(ctx context.Context, profile *models.TeacherProfile) error
}

// TeacherProfileRequest is the onboarding payload.
type TeacherProfileRequest struct {
	Nome          string  `json:"nome" validate:"required,max=160"`
	WritingStyle  *string `json:"estilo_escrita" validate:"omitempty,max=20000"`
	ExpectedPages *int    `json:"paginas_esperadas" validate:"omitempty,gte=1,lte=20"`
}

// TeacherProfileService reads and writes the caller's writing preferences.
type TeacherProfileService struct {
	repo      teacherProfileRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherProfileService constructs a TeacherProfileService.
func NewTeacherProfileService(repo teacherProfileRepository, validate *validator.Validate, logger *zap.Logger) *TeacherProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherProfileService{repo: repo, validator: validate, logger: logger}
}

// Get returns the caller's profile or NotFound before onboarding.
func (s *TeacherProfileService) Get(ctx context.Context, callerID string) (*models.TeacherProfile, error) {
	profile, err := s.repo.FindByUserID(ctx, callerID)
	if err != nil {
		return nil, lookupError(err, "Perfil não encontrado", "failed to load teacher profile")
	}
	return profile, nil
}

// Save creates or replaces the caller's profile.
func (s *TeacherProfileService) Save(ctx context.Context, callerID string, req TeacherProfileRequest) (*models.TeacherProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher profile payload")
	}
	profile := &models.TeacherProfile{UserID: callerID, Nome: req.Nome, WritingStyle: req.WritingStyle, ExpectedPages: req.ExpectedPages}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, persistenceError(err, "failed to save teacher profile")
	}
	return profile, nil
}

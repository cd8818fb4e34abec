package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
)

type milestoneRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.Milestone, error)
	Create(ctx context.Context, item *models.Milestone) error
	Delete(ctx context.Context, studentID, id string) (bool, error)
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
}

// MilestoneRequest is the payload for recording a milestone. AchievedAt defaults to today.
type MilestoneRequest struct {
	Titulo     string     `json:"titulo" validate:"required,max=160"`
	Area       string     `json:"area_desenvolvimento" validate:"required,max=120"`
	Descricao  *string    `json:"descricao" validate:"omitempty,max=2000"`
	AchievedAt *time.Time `json:"data_marco"`
}

// MilestoneService records developmental milestones per student.
type MilestoneService struct {
	repo      milestoneRepository
	students  studentReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMilestoneService constructs a MilestoneService.
func NewMilestoneService(repo milestoneRepository, students studentReader, validate *validator.Validate, logger *zap.Logger) *MilestoneService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MilestoneService{repo: repo, students: students, validator: validate, logger: logger}
}

// List returns every milestone of a student the caller teaches.
func (s *MilestoneService) List(ctx context.Context, callerID, studentID string) ([]models.Milestone, error) {
	if err := s.checkStudent(ctx, callerID, studentID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, persistenceError(err, "failed to list milestones")
	}
	return items, nil
}

// Create records a milestone.
func (s *MilestoneService) Create(ctx context.Context, callerID, studentID string, req MilestoneRequest) (*models.Milestone, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid milestone payload")
	}
	if err := s.checkStudent(ctx, callerID, studentID); err != nil {
		return nil, err
	}
	item := &models.Milestone{StudentID: studentID, Titulo: req.Titulo, Area: req.Area, Descricao: req.Descricao}
	if req.AchievedAt != nil {
		item.AchievedAt = req.AchievedAt.UTC()
	} else {
		item.AchievedAt = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, persistenceError(err, "failed to create milestone")
	}
	return item, nil
}

// Delete removes a milestone.
func (s *MilestoneService) Delete(ctx context.Context, callerID, studentID, id string) error {
	if err := s.checkStudent(ctx, callerID, studentID); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, studentID, id)
	if err != nil {
		return persistenceError(err, "failed to delete milestone")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "Marco não encontrado")
	}
	return nil
}

func (s *MilestoneService) checkStudent(ctx context.Context, callerID, studentID string) error {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return lookupError(err, studentNotFoundMessage, "failed to load student")
	}
	return ensureStudentOwner(student, callerID)
}

package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/parecer-api/internal/models"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Deactivate(ctx context.Context, id string) error
}

type classReader interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

// StudentRequest holds the payload for creating or updating students. BirthDate is a
// YYYY-MM-DD calendar date.
type StudentRequest struct {
	Nome      string `json:"nome" validate:"required,max=160"`
	BirthDate string `json:"data_nascimento" validate:"required,datetime=2006-01-02"`
	ClassID   string `json:"turma_id" validate:"required"`
	Active    *bool  `json:"ativo"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	classes   classReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, classes classReader, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, classes: classes, validator: validate, logger: logger}
}

// List returns the caller's students and pagination metadata.
func (s *StudentService) List(ctx context.Context, callerID string, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	filter.OwnerID = callerID
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, persistenceError(err, "failed to list students")
	}
	return students, pagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a student of one of the caller's classes.
func (s *StudentService) Get(ctx context.Context, callerID, id string) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, studentNotFoundMessage, "failed to load student")
	}
	if err := ensureStudentOwner(student, callerID); err != nil {
		return nil, err
	}
	return student, nil
}

// Create registers a student in a class the caller owns.
func (s *StudentService) Create(ctx context.Context, callerID string, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	if err := s.checkClass(ctx, callerID, req.ClassID); err != nil {
		return nil, err
	}
	classID := req.ClassID
	student := &models.Student{Nome: req.Nome, BirthDate: req.BirthDate, ClassID: &classID, Active: true}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, persistenceError(err, "failed to create student")
	}
	return student, nil
}

// Update modifies a student, optionally moving it to another class the caller owns.
func (s *StudentService) Update(ctx context.Context, callerID, id string, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	detail, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if detail.ClassID == nil || *detail.ClassID != req.ClassID {
		if err := s.checkClass(ctx, callerID, req.ClassID); err != nil {
			return nil, err
		}
	}
	student := detail.Student
	student.Nome = req.Nome
	student.BirthDate = req.BirthDate
	classID := req.ClassID
	student.ClassID = &classID
	if req.Active != nil {
		student.Active = *req.Active
	}
	if err := s.repo.Update(ctx, &student); err != nil {
		return nil, persistenceError(err, "failed to update student")
	}
	return &student, nil
}

// Delete soft-deletes a student.
func (s *StudentService) Delete(ctx context.Context, callerID, id string) error {
	if _, err := s.Get(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return persistenceError(err, "failed to delete student")
	}
	return nil
}

func (s *StudentService) checkClass(ctx context.Context, callerID, classID string) error {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return lookupError(err, "Turma não encontrada", "failed to load class")
	}
	return ensureClassOwner(class, callerID)
}

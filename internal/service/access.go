package service

import (
	"database/sql"
	"errors"

	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
)

// lookupError maps repository read failures: sql.ErrNoRows becomes NotFound with notFound as
// message, anything else a persistence failure.
func lookupError(err error, notFound, failure string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.As(appErrors.ErrPersistence, err, failure)
}

func persistenceError(err error, message string) error {
	return appErrors.As(appErrors.ErrPersistence, err, message)
}

func validationError(err error, message string) error {
	return appErrors.As(appErrors.ErrValidation, err, message)
}

func ensureClassOwner(class *models.Class, callerID string) error {
	if class.OwnerID != callerID {
		return appErrors.Clone(appErrors.ErrForbidden, "turma pertence a outro professor")
	}
	return nil
}

func ensureStudentOwner(student *models.StudentDetail, callerID string) error {
	if student.OwnerID == nil || *student.OwnerID != callerID {
		return appErrors.Clone(appErrors.ErrForbidden, "aluno pertence a outro professor")
	}
	return nil
}

func pagination(page, size, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}

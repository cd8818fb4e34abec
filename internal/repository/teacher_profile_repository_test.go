package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/parecer-api/internal/models"
)

func TestTeacherProfileRepositoryFindByUserID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTeacherProfileRepository(db)

	now := time.Now()
	mock.ExpectQuery(`FROM professores WHERE user_id = \$1`).WithArgs("prof-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "nome", "estilo_escrita", "paginas_esperadas", "created_at", "updated_at"}).
			AddRow("prof-1", "Marta", "Descritivo e poético", 2, now, now))

	profile, err := repo.FindByUserID(context.Background(), "prof-1")
	require.NoError(t, err)
	require.NotNil(t, profile.WritingStyle)
	assert.Equal(t, "Descritivo e poético", *profile.WritingStyle)
	require.NotNil(t, profile.ExpectedPages)
	assert.Equal(t, 2, *profile.ExpectedPages)
}

func TestTeacherProfileRepositoryFindMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTeacherProfileRepository(db)

	mock.ExpectQuery(`FROM professores`).WithArgs("nobody").WillReturnError(sql.ErrNoRows)
	_, err := repo.FindByUserID(context.Background(), "nobody")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTeacherProfileRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTeacherProfileRepository(db)

	mock.ExpectExec(`INSERT INTO professores .* ON CONFLICT \(user_id\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	style := "Objetivo"
	require.NoError(t, repo.Upsert(context.Background(), &models.TeacherProfile{UserID: "prof-1", Nome: "Marta", WritingStyle: &style}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

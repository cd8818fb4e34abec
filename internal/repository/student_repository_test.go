package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/parecer-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var studentRowColumns = []string{"id", "nome", "data_nascimento", "turma_id", "ativo", "created_at", "updated_at", "turma_nome", "owner_id"}

func TestStudentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(studentRowColumns).
		AddRow("stu-1", "Ana", "2020-03-15", "turma-1", true, now, now, "Maternal II", "prof-1")
	mock.ExpectQuery(`FROM alunos a\s+LEFT JOIN turmas t ON t.id = a.turma_id\s+WHERE a.id = \$1`).
		WithArgs("stu-1").
		WillReturnRows(rows)

	student, err := repo.FindByID(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", student.Nome)
	assert.Equal(t, "2020-03-15", student.BirthDate)
	require.NotNil(t, student.OwnerID)
	assert.Equal(t, "prof-1", *student.OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(`FROM alunos a`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	active := true
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM alunos a JOIN turmas t ON t.id = a.turma_id WHERE t.user_id = $1 AND a.turma_id = $2 AND a.ativo = $3 AND LOWER(a.nome) LIKE $4 ORDER BY a.nome ASC LIMIT 20 OFFSET 0")).
		WithArgs("prof-1", "turma-1", true, "%ana%").
		WillReturnRows(sqlmock.NewRows(studentRowColumns).AddRow("stu-1", "Ana", "2020-03-15", "turma-1", true, now, now, "Maternal II", "prof-1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM alunos a JOIN turmas t")).
		WithArgs("prof-1", "turma-1", true, "%ana%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	students, total, err := repo.List(context.Background(), models.StudentFilter{OwnerID: "prof-1", ClassID: "turma-1", Active: &active, Search: "Ana"})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateAndDeactivate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO alunos").
		WithArgs(sqlmock.AnyArg(), "Ana", "2020-03-15", sqlmock.AnyArg(), true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE alunos SET ativo = false")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	classID := "turma-1"
	student := &models.Student{Nome: "Ana", BirthDate: "2020-03-15", ClassID: &classID, Active: true}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.NotEmpty(t, student.ID)
	require.NoError(t, repo.Deactivate(context.Background(), student.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestoneRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMilestoneRepository(db)

	at := time.Date(2023, 10, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM marcos WHERE aluno_id = \$1 ORDER BY data_marco ASC`).WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "aluno_id", "titulo", "area_desenvolvimento", "descricao", "data_marco", "created_at"}).
			AddRow("m-1", "stu-1", "Primeiros passos", "Motor", nil, at, at))

	items, err := repo.ListByStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Descricao)
}

func TestMilestoneRepositoryDeleteReportsMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMilestoneRepository(db)

	mock.ExpectExec(`DELETE FROM marcos`).WithArgs("m-9", "stu-1").WillReturnResult(sqlmock.NewResult(0, 0))
	deleted, err := repo.Delete(context.Background(), "stu-1", "m-9")
	require.NoError(t, err)
	assert.False(t, deleted)
}

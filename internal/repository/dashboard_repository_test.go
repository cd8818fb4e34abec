package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepositoryAtRiskStudents(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	last := since.AddDate(0, 0, -3)
	mock.ExpectQuery(`HAVING COUNT\(r.id\) < \$3`).
		WithArgs("turma-1", since, 2).
		WillReturnRows(sqlmock.NewRows([]string{"aluno_id", "nome", "total_registros", "ultimo_registro"}).
			AddRow("stu-2", "Bia", 0, nil).
			AddRow("stu-1", "Ana", 1, last))

	items, err := repo.AtRiskStudents(context.Background(), "turma-1", since, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].LastRecordAt)
	assert.Equal(t, 1, items[1].RecordCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepositoryBNCCCoverage(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(`unnest\(r.tags_bncc\)`).WithArgs("turma-1").
		WillReturnRows(sqlmock.NewRows([]string{"campo_experiencia", "total_registros"}).
			AddRow("Corpo, gestos e movimentos", 4).
			AddRow("O eu, o outro e o nós", 7))

	items, err := repo.BNCCCoverage(context.Background(), "turma-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 7, items[1].RecordCount)
}

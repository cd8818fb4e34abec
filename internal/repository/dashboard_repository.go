package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/parecer-api/internal/models"
)

// DashboardRepository exposes read-only aggregate queries over a class.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// AtRiskStudents lists active students of classID with fewer than minRecords active records
// dated on or after since, fewest first.
func (r *DashboardRepository) AtRiskStudents(ctx context.Context, classID string, since time.Time, minRecords int) ([]models.AtRiskStudent, error) {
	const query = `SELECT a.id AS aluno_id, a.nome, COUNT(r.id) AS total_registros, MAX(r.data_registro) AS ultimo_registro
        FROM alunos a
        LEFT JOIN registro_alunos ra ON ra.aluno_id = a.id
        LEFT JOIN registros r ON r.id = ra.registro_id AND r.ativo = true AND r.data_registro >= $2
        WHERE a.turma_id = $1 AND a.ativo = true
        GROUP BY a.id, a.nome
        HAVING COUNT(r.id) < $3
        ORDER BY total_registros ASC, a.nome ASC`
	var items []models.AtRiskStudent
	if err := r.db.SelectContext(ctx, &items, query, classID, since, minRecords); err != nil {
		return nil, fmt.Errorf("query at-risk students: %w", err)
	}
	return items, nil
}

// BNCCCoverage counts distinct active records per campo de experiência for students of classID.
func (r *DashboardRepository) BNCCCoverage(ctx context.Context, classID string) ([]models.BNCCCoverage, error) {
	const query = `SELECT tb.campo_experiencia, COUNT(DISTINCT r.id) AS total_registros
        FROM registros r
        JOIN registro_alunos ra ON ra.registro_id = r.id
        JOIN alunos a ON a.id = ra.aluno_id
        CROSS JOIN LATERAL unnest(r.tags_bncc) AS tag(codigo)
        JOIN tags_bncc tb ON tb.codigo = tag.codigo
        WHERE a.turma_id = $1 AND r.ativo = true
        GROUP BY tb.campo_experiencia
        ORDER BY tb.campo_experiencia ASC`
	var items []models.BNCCCoverage
	if err := r.db.SelectContext(ctx, &items, query, classID); err != nil {
		return nil, fmt.Errorf("query bncc coverage: %w", err)
	}
	return items, nil
}

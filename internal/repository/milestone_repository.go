package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/parecer-api/internal/models"
)

// MilestoneRepository persists developmental milestones (marcos).
type MilestoneRepository struct {
	db *sqlx.DB
}

// NewMilestoneRepository constructs a MilestoneRepository.
func NewMilestoneRepository(db *sqlx.DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

// ListByStudent returns every milestone of the student, oldest first.
func (r *MilestoneRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Milestone, error) {
	const query = `SELECT id, aluno_id, titulo, area_desenvolvimento, descricao, data_marco, created_at
        FROM marcos WHERE aluno_id = $1 ORDER BY data_marco ASC`
	var items []models.Milestone
	if err := r.db.SelectContext(ctx, &items, query, studentID); err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return items, nil
}

// Create inserts a milestone.
func (r *MilestoneRepository) Create(ctx context.Context, item *models.Milestone) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO marcos (id, aluno_id, titulo, area_desenvolvimento, descricao, data_marco, created_at)
        VALUES (:id, :aluno_id, :titulo, :area_desenvolvimento, :descricao, :data_marco, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create milestone: %w", err)
	}
	return nil
}

// Delete removes a milestone of the given student.
func (r *MilestoneRepository) Delete(ctx context.Context, studentID, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM marcos WHERE id = $1 AND aluno_id = $2`, id, studentID)
	if err != nil {
		return false, fmt.Errorf("delete milestone: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete milestone: %w", err)
	}
	return affected > 0, nil
}

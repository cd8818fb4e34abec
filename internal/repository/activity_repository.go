package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/parecer-api/internal/models"
)

const activityColumns = `id, titulo, descricao, campo_experiencia, user_id, ativo, created_at, updated_at`

// ActivityRepository persists activity templates (atividades).
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository constructs an ActivityRepository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// List returns the owner's active activity templates.
func (r *ActivityRepository) List(ctx context.Context, ownerID string) ([]models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM atividades WHERE user_id = $1 AND ativo = true ORDER BY titulo ASC`
	var items []models.Activity
	if err := r.db.SelectContext(ctx, &items, query, ownerID); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return items, nil
}

// FindByID returns an activity. sql.ErrNoRows is returned untouched.
func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*models.Activity, error) {
	var item models.Activity
	if err := r.db.GetContext(ctx, &item, `SELECT `+activityColumns+` FROM atividades WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts an activity template.
func (r *ActivityRepository) Create(ctx context.Context, item *models.Activity) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	const query = `INSERT INTO atividades (id, titulo, descricao, campo_experiencia, user_id, ativo, created_at, updated_at)
        VALUES (:id, :titulo, :descricao, :campo_experiencia, :user_id, :ativo, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

// Update modifies an activity template.
func (r *ActivityRepository) Update(ctx context.Context, item *models.Activity) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE atividades SET titulo = :titulo, descricao = :descricao, campo_experiencia = :campo_experiencia, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	return nil
}

// Deactivate soft-deletes an activity template.
func (r *ActivityRepository) Deactivate(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE atividades SET ativo = false, updated_at = $2 WHERE id = $1`, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate activity: %w", err)
	}
	return nil
}

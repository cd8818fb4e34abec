package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/parecer-api/internal/models"
)

const classColumns = `id, nome, faixa_etaria, ano_letivo, COALESCE(user_id::text, '') AS user_id, ativo, created_at, updated_at`

// ClassRepository persists classes (turmas).
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns classes owned by filter.OwnerID ordered by name.
func (r *ClassRepository) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM turmas WHERE user_id = $1`
	args := []interface{}{filter.OwnerID}
	if filter.Active != nil {
		query += " AND ativo = $2"
		args = append(args, *filter.Active)
	}
	query += " ORDER BY ano_letivo DESC, nome ASC"
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID returns a class. sql.ErrNoRows is returned untouched.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	var class models.Class
	if err := r.db.GetContext(ctx, &class, `SELECT `+classColumns+` FROM turmas WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// Create inserts a class.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now
	const query = `INSERT INTO turmas (id, nome, faixa_etaria, ano_letivo, user_id, ativo, created_at, updated_at)
        VALUES (:id, :nome, :faixa_etaria, :ano_letivo, :user_id, :ativo, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update modifies a class.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	class.UpdatedAt = time.Now().UTC()
	const query = `UPDATE turmas SET nome = :nome, faixa_etaria = :faixa_etaria, ano_letivo = :ano_letivo, ativo = :ativo, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a class.
func (r *ClassRepository) Deactivate(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE turmas SET ativo = false, updated_at = $2 WHERE id = $1`, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate class: %w", err)
	}
	return nil
}

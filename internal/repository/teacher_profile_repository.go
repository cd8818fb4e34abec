package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/parecer-api/internal/models"
)

// TeacherProfileRepository stores writing preferences keyed by auth user id.
type TeacherProfileRepository struct {
	db *sqlx.DB
}

// NewTeacherProfileRepository constructs a TeacherProfileRepository.
func NewTeacherProfileRepository(db *sqlx.DB) *TeacherProfileRepository {
	return &TeacherProfileRepository{db: db}
}

// FindByUserID returns the profile of userID. sql.ErrNoRows is returned untouched.
func (r *TeacherProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.TeacherProfile, error) {
	const query = `SELECT user_id, nome, estilo_escrita, paginas_esperadas, created_at, updated_at FROM professores WHERE user_id = $1`
	var profile models.TeacherProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates or replaces the profile of profile.UserID.
func (r *TeacherProfileRepository) Upsert(ctx context.Context, profile *models.TeacherProfile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	const query = `INSERT INTO professores (user_id, nome, estilo_escrita, paginas_esperadas, created_at, updated_at)
        VALUES (:user_id, :nome, :estilo_escrita, :paginas_esperadas, :created_at, :updated_at)
        ON CONFLICT (user_id) DO UPDATE SET nome = EXCLUDED.nome, estilo_escrita = EXCLUDED.estilo_escrita,
        paginas_esperadas = EXCLUDED.paginas_esperadas, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("upsert teacher profile: %w", err)
	}
	return nil
}

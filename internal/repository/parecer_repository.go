package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/parecer-api/internal/models"
)

const parecerColumns = `id, aluno_id, turma_id, conteudo_gerado, conteudo_editado, status, referencia_periodo, created_at, updated_at`

// ParecerRepository persists report drafts.
type ParecerRepository struct {
	db *sqlx.DB
}

// NewParecerRepository constructs a ParecerRepository.
func NewParecerRepository(db *sqlx.DB) *ParecerRepository {
	return &ParecerRepository{db: db}
}

// Create inserts a draft and fills the stored row back into p.
func (r *ParecerRepository) Create(ctx context.Context, p *models.Parecer) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	query := `INSERT INTO pareceres (` + parecerColumns + `)
        VALUES (:id, :aluno_id, :turma_id, :conteudo_gerado, :conteudo_editado, :status, :referencia_periodo, :created_at, :updated_at)
        RETURNING ` + parecerColumns
	rows, err := r.db.NamedQueryContext(ctx, query, p)
	if err != nil {
		return fmt.Errorf("create parecer: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.StructScan(p); err != nil {
			return fmt.Errorf("scan parecer: %w", err)
		}
	}
	return rows.Err()
}

// FindByID returns a draft. sql.ErrNoRows is returned untouched.
func (r *ParecerRepository) FindByID(ctx context.Context, id string) (*models.Parecer, error) {
	var p models.Parecer
	if err := r.db.GetContext(ctx, &p, `SELECT `+parecerColumns+` FROM pareceres WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByStudent returns the drafts of a student, newest first.
func (r *ParecerRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Parecer, error) {
	var items []models.Parecer
	if err := r.db.SelectContext(ctx, &items, `SELECT `+parecerColumns+` FROM pareceres WHERE aluno_id = $1 ORDER BY created_at DESC`, studentID); err != nil {
		return nil, fmt.Errorf("list pareceres: %w", err)
	}
	return items, nil
}

// UpdateContent stores the teacher's edits. conteudo_gerado is never touched.
func (r *ParecerRepository) UpdateContent(ctx context.Context, p *models.Parecer) error {
	p.UpdatedAt = time.Now().UTC()
	const query = `UPDATE pareceres SET conteudo_editado = :conteudo_editado, status = :status, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("update parecer: %w", err)
	}
	return nil
}

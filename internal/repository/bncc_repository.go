package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/parecer-api/internal/models"
)

const bnccColumns = `id, codigo, descricao, campo_experiencia, faixa_etaria, ativo, created_at`

// BNCCTagRepository reads and maintains the BNCC learning-objective catalogue.
type BNCCTagRepository struct {
	db *sqlx.DB
}

// NewBNCCTagRepository constructs a BNCCTagRepository.
func NewBNCCTagRepository(db *sqlx.DB) *BNCCTagRepository {
	return &BNCCTagRepository{db: db}
}

// List returns active tags filtered by experience field and age group.
func (r *BNCCTagRepository) List(ctx context.Context, filter models.BNCCTagFilter) ([]models.BNCCTag, error) {
	conditions := []string{"ativo = true"}
	args := []interface{}{}
	if filter.CampoExperiencia != "" {
		args = append(args, filter.CampoExperiencia)
		conditions = append(conditions, fmt.Sprintf("campo_experiencia = $%d", len(args)))
	}
	if filter.FaixaEtaria != "" {
		args = append(args, filter.FaixaEtaria)
		conditions = append(conditions, fmt.Sprintf("faixa_etaria = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(LOWER(codigo) LIKE $%d OR LOWER(descricao) LIKE $%d)", len(args), len(args)))
	}
	query := fmt.Sprintf("SELECT %s FROM tags_bncc WHERE %s ORDER BY codigo ASC", bnccColumns, strings.Join(conditions, " AND "))
	var tags []models.BNCCTag
	if err := r.db.SelectContext(ctx, &tags, query, args...); err != nil {
		return nil, fmt.Errorf("list bncc tags: %w", err)
	}
	return tags, nil
}

// FindByID returns a tag. sql.ErrNoRows is returned untouched.
func (r *BNCCTagRepository) FindByID(ctx context.Context, id string) (*models.BNCCTag, error) {
	var tag models.BNCCTag
	if err := r.db.GetContext(ctx, &tag, `SELECT `+bnccColumns+` FROM tags_bncc WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Create inserts a tag.
func (r *BNCCTagRepository) Create(ctx context.Context, tag *models.BNCCTag) error {
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	tag.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO tags_bncc (id, codigo, descricao, campo_experiencia, faixa_etaria, ativo, created_at)
        VALUES (:id, :codigo, :descricao, :campo_experiencia, :faixa_etaria, :ativo, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, tag); err != nil {
		return fmt.Errorf("create bncc tag: %w", err)
	}
	return nil
}

// Deactivate hides a tag from the catalogue.
func (r *BNCCTagRepository) Deactivate(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE tags_bncc SET ativo = false WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deactivate bncc tag: %w", err)
	}
	return nil
}

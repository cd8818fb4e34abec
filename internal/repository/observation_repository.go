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

const observationColumns = `r.id, r.tipo, r.descricao, r.transcricao_voz, r.data_registro, r.is_evidencia, r.tags_bncc,
        r.atividade_id, r.midia_url, r.user_id, r.ativo, r.created_at, r.updated_at, at.titulo AS categoria`

// ObservationRepository persists observation records (registros) and their student links.
type ObservationRepository struct {
	db       *sqlx.DB
	timezone string
}

// NewObservationRepository constructs an ObservationRepository. Calendar-day bounds are
// interpreted in UTC until WithTimezone is called.
func NewObservationRepository(db *sqlx.DB) *ObservationRepository {
	return &ObservationRepository{db: db, timezone: "UTC"}
}

// WithTimezone sets the IANA zone whose local midnight bounds day filters. It must match the
// zone dates are rendered in.
func (r *ObservationRepository) WithTimezone(name string) *ObservationRepository {
	if name != "" {
		r.timezone = name
	}
	return r
}

// ListForStudentInPeriod returns the active records linked to studentID whose data_registro falls
// on or between the start and end calendar days of the configured zone.
func (r *ObservationRepository) ListForStudentInPeriod(ctx context.Context, studentID, start, end string) ([]models.ObservationRecord, error) {
	query := `SELECT ` + observationColumns + `
        FROM registros r
        JOIN registro_alunos ra ON ra.registro_id = r.id
        LEFT JOIN atividades at ON at.id = r.atividade_id
        WHERE ra.aluno_id = $1 AND r.ativo = true
          AND r.data_registro >= (` + localMidnight("$2::date", "$4") + `)
          AND r.data_registro < (` + localMidnight("$3::date + 1", "$4") + `)
        ORDER BY r.data_registro ASC`
	var records []models.ObservationRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID, start, end, r.timezone); err != nil {
		return nil, fmt.Errorf("list records for student: %w", err)
	}
	return records, nil
}

const dateLayout = "2006-01-02"

// localMidnight renders the instant a calendar day starts in the given zone.
func localMidnight(dateExpr, zoneExpr string) string {
	return fmt.Sprintf("(%s)::timestamp AT TIME ZONE %s", dateExpr, zoneExpr)
}

// List returns the owner's records matching the filter, newest first.
func (r *ObservationRepository) List(ctx context.Context, filter models.ObservationFilter) ([]models.ObservationRecord, int, error) {
	base := "FROM registros r LEFT JOIN atividades at ON at.id = r.atividade_id"
	args := []interface{}{filter.OwnerID}
	conditions := []string{"r.user_id = $1", "r.ativo = true"}

	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		conditions = append(conditions, fmt.Sprintf("EXISTS (SELECT 1 FROM registro_alunos ra WHERE ra.registro_id = r.id AND ra.aluno_id = $%d)", len(args)))
	}
	if filter.From != nil || filter.To != nil {
		args = append(args, r.timezone)
	}
	zoneArg := fmt.Sprintf("$%d", len(args))
	if filter.From != nil {
		args = append(args, filter.From.Format(dateLayout))
		conditions = append(conditions, fmt.Sprintf("r.data_registro >= (%s)", localMidnight(fmt.Sprintf("$%d::date", len(args)), zoneArg)))
	}
	if filter.To != nil {
		args = append(args, filter.To.Format(dateLayout))
		conditions = append(conditions, fmt.Sprintf("r.data_registro < (%s)", localMidnight(fmt.Sprintf("$%d::date + 1", len(args)), zoneArg)))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		conditions = append(conditions, fmt.Sprintf("r.tipo = $%d", len(args)))
	}
	if filter.Evidence != nil {
		args = append(args, *filter.Evidence)
		conditions = append(conditions, fmt.Sprintf("r.is_evidencia = $%d", len(args)))
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))
	size, offset := pageWindow(filter.Page, filter.PageSize)

	query := fmt.Sprintf(`SELECT %s
        %s ORDER BY r.data_registro DESC LIMIT %d OFFSET %d`, observationColumns, base, size, offset)
	var records []models.ObservationRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}
	return records, total, nil
}

// FindByID returns a record with its linked student ids. sql.ErrNoRows is returned untouched.
func (r *ObservationRepository) FindByID(ctx context.Context, id string) (*models.ObservationRecord, error) {
	query := `SELECT ` + observationColumns + `
        FROM registros r
        LEFT JOIN atividades at ON at.id = r.atividade_id
        WHERE r.id = $1`
	var record models.ObservationRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	ids, err := r.LinkedStudents(ctx, id)
	if err != nil {
		return nil, err
	}
	record.StudentIDs = ids
	return &record, nil
}

// LinkedStudents lists the ids of students a record is attached to.
func (r *ObservationRepository) LinkedStudents(ctx context.Context, recordID string) ([]string, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `SELECT aluno_id FROM registro_alunos WHERE registro_id = $1 ORDER BY aluno_id`, recordID); err != nil {
		return nil, fmt.Errorf("list record students: %w", err)
	}
	return ids, nil
}

// Create inserts the record and its student links in one transaction.
func (r *ObservationRepository) Create(ctx context.Context, record *models.ObservationRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	if record.RecordedAt.IsZero() {
		record.RecordedAt = now
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insert = `INSERT INTO registros (id, tipo, descricao, transcricao_voz, data_registro, is_evidencia, tags_bncc, atividade_id, midia_url, user_id, ativo, created_at, updated_at)
        VALUES (:id, :tipo, :descricao, :transcricao_voz, :data_registro, :is_evidencia, :tags_bncc, :atividade_id, :midia_url, :user_id, :ativo, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insert, record); err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	if err := insertLinks(ctx, tx, record.ID, record.StudentIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// Update rewrites the record body and replaces its student links.
func (r *ObservationRepository) Update(ctx context.Context, record *models.ObservationRecord) error {
	record.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const update = `UPDATE registros SET tipo = :tipo, descricao = :descricao, transcricao_voz = :transcricao_voz, data_registro = :data_registro,
        is_evidencia = :is_evidencia, tags_bncc = :tags_bncc, atividade_id = :atividade_id, midia_url = :midia_url, updated_at = :updated_at
        WHERE id = :id`
	if _, err := tx.NamedExecContext(ctx, update, record); err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM registro_alunos WHERE registro_id = $1`, record.ID); err != nil {
		return fmt.Errorf("clear record students: %w", err)
	}
	if err := insertLinks(ctx, tx, record.ID, record.StudentIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// Deactivate soft-deletes a record; links stay for history.
func (r *ObservationRepository) Deactivate(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE registros SET ativo = false, updated_at = $2 WHERE id = $1`, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate record: %w", err)
	}
	return nil
}

func insertLinks(ctx context.Context, tx *sqlx.Tx, recordID string, studentIDs []string) error {
	for _, studentID := range studentIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO registro_alunos (registro_id, aluno_id) VALUES ($1, $2)`, recordID, studentID); err != nil {
			return fmt.Errorf("link record student %s: %w", studentID, err)
		}
	}
	return nil
}

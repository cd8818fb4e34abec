package models

import "time"

// ParecerStatus captures the review lifecycle of a report draft.
type ParecerStatus string

const (
	ParecerDraft     ParecerStatus = "rascunho"
	ParecerReview    ParecerStatus = "revisao"
	ParecerFinalized ParecerStatus = "finalizado"
)

// Valid reports whether s is a known status.
func (s ParecerStatus) Valid() bool {
	return s == ParecerDraft || s == ParecerReview || s == ParecerFinalized
}

// Parecer is an AI-drafted descriptive report. GeneratedContent is never edited after insert;
// EditedContent starts as a copy and diverges as the teacher revises it.
type Parecer struct {
	ID               string        `db:"id" json:"id"`
	StudentID        string        `db:"aluno_id" json:"aluno_id"`
	ClassID          string        `db:"turma_id" json:"turma_id"`
	GeneratedContent string        `db:"conteudo_gerado" json:"conteudo_gerado"`
	EditedContent    string        `db:"conteudo_editado" json:"conteudo_editado"`
	Status           ParecerStatus `db:"status" json:"status"`
	Period           string        `db:"referencia_periodo" json:"referencia_periodo"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updated_at"`
}

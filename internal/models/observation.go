package models

import (
	"time"

	"github.com/lib/pq"
)

// ObservationKind enumerates the media kind of an observation record.
type ObservationKind string

const (
	ObservationText  ObservationKind = "texto"
	ObservationPhoto ObservationKind = "foto"
	ObservationAudio ObservationKind = "audio"
	ObservationVideo ObservationKind = "video"
)

// Valid reports whether k is a known kind.
func (k ObservationKind) Valid() bool {
	switch k {
	case ObservationText, ObservationPhoto, ObservationAudio, ObservationVideo:
		return true
	}
	return false
}

// ObservationRecord is a logged event about one or more students (table registros).
type ObservationRecord struct {
	ID            string          `db:"id" json:"id"`
	Kind          ObservationKind `db:"tipo" json:"tipo"`
	Descricao     string          `db:"descricao" json:"descricao"`
	Transcription *string         `db:"transcricao_voz" json:"transcricao_voz,omitempty"`
	RecordedAt    time.Time       `db:"data_registro" json:"data_registro"`
	IsEvidence    bool            `db:"is_evidencia" json:"is_evidencia"`
	BNCCTags      pq.StringArray  `db:"tags_bncc" json:"tags_bncc"`
	ActivityID    *string         `db:"atividade_id" json:"atividade_id,omitempty"`
	MediaURL      *string         `db:"midia_url" json:"midia_url,omitempty"`
	OwnerID       string          `db:"user_id" json:"user_id"`
	Active        bool            `db:"ativo" json:"ativo"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
	CategoryLabel *string         `db:"categoria" json:"categoria,omitempty"`
	StudentIDs    []string        `db:"-" json:"aluno_ids,omitempty"`
}

// ObservationFilter narrows record listings. Dates are inclusive calendar days.
type ObservationFilter struct {
	OwnerID   string
	StudentID string
	From      *time.Time
	To        *time.Time
	Kind      ObservationKind
	Evidence  *bool
	Page      int
	PageSize  int
}

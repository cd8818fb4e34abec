package models

import "time"

// TeacherProfile stores a teacher's report-writing preferences (table professores).
type TeacherProfile struct {
	UserID        string    `db:"user_id" json:"user_id"`
	Nome          string    `db:"nome" json:"nome"`
	WritingStyle  *string   `db:"estilo_escrita" json:"estilo_escrita,omitempty"`
	ExpectedPages *int      `db:"paginas_esperadas" json:"paginas_esperadas,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

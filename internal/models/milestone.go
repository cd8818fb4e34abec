package models

import "time"

// Milestone is a dated developmental achievement of one student (table marcos).
type Milestone struct {
	ID         string    `db:"id" json:"id"`
	StudentID  string    `db:"aluno_id" json:"aluno_id"`
	Titulo     string    `db:"titulo" json:"titulo"`
	Area       string    `db:"area_desenvolvimento" json:"area_desenvolvimento"`
	Descricao  *string   `db:"descricao" json:"descricao,omitempty"`
	AchievedAt time.Time `db:"data_marco" json:"data_marco"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

package models

import "time"

// Class groups students under the teacher who owns it (table turmas). OwnerID is empty for
// classes created before ownership was tracked.
type Class struct {
	ID         string    `db:"id" json:"id"`
	Nome       string    `db:"nome" json:"nome"`
	AgeGroup   string    `db:"faixa_etaria" json:"faixa_etaria"`
	SchoolYear int       `db:"ano_letivo" json:"ano_letivo"`
	OwnerID    string    `db:"user_id" json:"user_id"`
	Active     bool      `db:"ativo" json:"ativo"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// ClassFilter narrows class listings.
type ClassFilter struct {
	OwnerID string
	Active  *bool
}

package models

import "time"

// Activity is a reusable activity template. Its title doubles as the category label of the
// observation records linked to it.
type Activity struct {
	ID               string    `db:"id" json:"id"`
	Titulo           string    `db:"titulo" json:"titulo"`
	Descricao        string    `db:"descricao" json:"descricao"`
	CampoExperiencia *string   `db:"campo_experiencia" json:"campo_experiencia,omitempty"`
	OwnerID          string    `db:"user_id" json:"user_id"`
	Active           bool      `db:"ativo" json:"ativo"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

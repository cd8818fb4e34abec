package models

import "time"

// BNCCTag is a curriculum learning objective (e.g. EI03EO01) under a campo de experiência.
type BNCCTag struct {
	ID               string    `db:"id" json:"id"`
	Codigo           string    `db:"codigo" json:"codigo"`
	Descricao        string    `db:"descricao" json:"descricao"`
	CampoExperiencia string    `db:"campo_experiencia" json:"campo_experiencia"`
	FaixaEtaria      string    `db:"faixa_etaria" json:"faixa_etaria"`
	Active           bool      `db:"ativo" json:"ativo"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// BNCCTagFilter narrows tag listings.
type BNCCTagFilter struct {
	CampoExperiencia string
	FaixaEtaria      string
	Search           string
}

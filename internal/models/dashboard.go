package models

import "time"

// AtRiskStudent is a student with too few recent observations.
type AtRiskStudent struct {
	StudentID    string     `db:"aluno_id" json:"aluno_id"`
	Nome         string     `db:"nome" json:"nome"`
	RecordCount  int        `db:"total_registros" json:"total_registros"`
	LastRecordAt *time.Time `db:"ultimo_registro" json:"ultimo_registro,omitempty"`
}

// BNCCCoverage counts records tagged under one campo de experiência.
type BNCCCoverage struct {
	CampoExperiencia string `db:"campo_experiencia" json:"campo_experiencia"`
	RecordCount      int    `db:"total_registros" json:"total_registros"`
}

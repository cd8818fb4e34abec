package models

import "time"

// Student is a child enrolled in one of a teacher's classes (table alunos).
type Student struct {
	ID        string    `db:"id" json:"id"`
	Nome      string    `db:"nome" json:"nome"`
	BirthDate string    `db:"data_nascimento" json:"data_nascimento"`
	ClassID   *string   `db:"turma_id" json:"turma_id,omitempty"`
	Active    bool      `db:"ativo" json:"ativo"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	OwnerID   string
	Search    string
	ClassID   string
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// StudentDetail contains student information with class context.
type StudentDetail struct {
	Student
	ClassName *string `db:"turma_nome" json:"turma_nome,omitempty"`
	OwnerID   *string `db:"owner_id" json:"-"`
}

package dto

import "github.com/noah-isme/parecer-api/internal/models"

// GenerateParecerRequest is the body of POST /gerar-parecer. Period bounds are calendar dates
// (YYYY-MM-DD) handed to the database as given; start <= end is not checked.
type GenerateParecerRequest struct {
	StudentID    string  `json:"aluno_id"`
	ClassID      string  `json:"turma_id"`
	PeriodStart  string  `json:"periodo_inicio"`
	PeriodEnd    string  `json:"periodo_fim"`
	Instructions *string `json:"professor_instrucoes,omitempty"`
	AudioURL     *string `json:"audio_url,omitempty"`
}

// GenerateParecerResponse wraps the stored draft.
type GenerateParecerResponse struct {
	Success bool            `json:"success"`
	Parecer *models.Parecer `json:"parecer"`
}

// UpdateParecerRequest carries teacher edits. Nil fields are left untouched.
type UpdateParecerRequest struct {
	EditedContent *string `json:"conteudo_editado" validate:"omitempty,min=1"`
	Status        *string `json:"status" validate:"omitempty,oneof=rascunho revisao finalizado"`
}

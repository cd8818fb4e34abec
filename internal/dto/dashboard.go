package dto

import (
	"time"

	"github.com/noah-isme/parecer-api/internal/models"
)

// AtRiskResponse lists students with too few recent observations in a class.
type AtRiskResponse struct {
	ClassID     string                 `json:"turma_id"`
	Since       time.Time              `json:"desde"`
	MinRecords  int                    `json:"minimo_registros"`
	Students    []models.AtRiskStudent `json:"alunos"`
	GeneratedAt time.Time              `json:"gerado_em"`
}

// CoverageResponse carries radar-chart data of BNCC experience fields for a class.
type CoverageResponse struct {
	ClassID     string                `json:"turma_id"`
	Fields      []models.BNCCCoverage `json:"campos"`
	GeneratedAt time.Time             `json:"gerado_em"`
}

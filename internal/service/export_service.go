package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/parecer-api/internal/models"
	appErrors "github.com/noah-isme/parecer-api/pkg/errors"
	"github.com/noah-isme/parecer-api/pkg/export"
)

const exportPageSize = 100

var accentFolder = strings.NewReplacer("á", "a", "à", "a", "â", "a", "ã", "a", "é", "e", "ê", "e", "í", "i", "ó", "o", "ô", "o", "õ", "o", "ú", "u", "ü", "u", "ç", "c")

type parecerGetter interface {
	Get(ctx context.Context, callerID, id string) (*models.Parecer, error)
}

type studentGetter interface {
	Get(ctx context.Context, callerID, id string) (*models.StudentDetail, error)
}

type observationLister interface {
	List(ctx context.Context, callerID string, filter models.ObservationFilter) ([]models.ObservationRecord, *models.Pagination, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type documentRenderer interface {
	RenderDocument(doc export.Document) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders drafts to PDF and the observation log to CSV.
type ExportService struct {
	pareceres    parecerGetter
	students     studentGetter
	observations observationLister
	csv          csvRenderer
	pdf          documentRenderer
	location     *time.Location
	logger       *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers use the package defaults.
func NewExportService(pareceres parecerGetter, students studentGetter, observations observationLister, csv csvRenderer, pdf documentRenderer, location *time.Location, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewSpreadsheetCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{pareceres: pareceres, students: students, observations: observations, csv: csv, pdf: pdf, location: location, logger: logger}
}

// ParecerPDF renders the edited text of a draft.
func (s *ExportService) ParecerPDF(ctx context.Context, callerID, id string) (*ExportFile, error) {
	parecer, err := s.pareceres.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	student, err := s.students.Get(ctx, callerID, parecer.StudentID)
	if err != nil {
		return nil, err
	}
	header := [][2]string{
		{"Criança", student.Nome},
		{"Data de nascimento", formatBirthDate(student.BirthDate)},
		{"Período", parecer.Period},
	}
	if student.ClassName != nil {
		header = append(header, [2]string{"Turma", *student.ClassName})
	}
	data, err := s.pdf.RenderDocument(export.Document{Title: "Parecer Descritivo", Header: header, Body: parecer.EditedContent})
	if err != nil {
		return nil, appErrors.As(appErrors.ErrInternal, err, "falha ao gerar PDF")
	}
	return &ExportFile{Filename: fmt.Sprintf("parecer-%s-%s.pdf", slug(student.Nome), parecer.ID[:min(8, len(parecer.ID))]), ContentType: "application/pdf", Data: data}, nil
}

// RecordsCSV renders every record matching filter, newest first.
func (s *ExportService) RecordsCSV(ctx context.Context, callerID string, filter models.ObservationFilter) (*ExportFile, error) {
	dataset := export.Dataset{Headers: []string{"data", "tipo", "categoria", "descricao", "evidencia", "tags_bncc", "midia_url"}}
	filter.PageSize = exportPageSize
	for page := 1; ; page++ {
		filter.Page = page
		records, pg, err := s.observations.List(ctx, callerID, filter)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			dataset.Rows = append(dataset.Rows, recordRow(r, s.location))
		}
		if len(records) < exportPageSize || pg == nil || page*exportPageSize >= pg.TotalCount {
			break
		}
	}
	data, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.As(appErrors.ErrInternal, err, "falha ao gerar CSV")
	}
	return &ExportFile{Filename: "registros.csv", ContentType: "text/csv; charset=utf-8", Data: data}, nil
}

func recordRow(r models.ObservationRecord, loc *time.Location) map[string]string {
	category := DefaultCategoryLabel
	if r.CategoryLabel != nil && *r.CategoryLabel != "" {
		category = *r.CategoryLabel
	}
	evidence := "não"
	if r.IsEvidence {
		evidence = "sim"
	}
	media := ""
	if r.MediaURL != nil {
		media = *r.MediaURL
	}
	return map[string]string{
		"data":      r.RecordedAt.In(loc).Format("02/01/2006 15:04"),
		"tipo":      string(r.Kind),
		"categoria": category,
		"descricao": r.Descricao,
		"evidencia": evidence,
		"tags_bncc": strings.Join(r.BNCCTags, ", "),
		"midia_url": media,
	}
}

func formatBirthDate(raw string) string {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Format("02/01/2006")
	}
	return raw
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range accentFolder.Replace(strings.ToLower(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

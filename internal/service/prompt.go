package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/parecer-api/internal/models"
)

const (
	// DefaultWritingStyle is used when the class owner has no profile or no style exemplar.
	DefaultWritingStyle = "Formal e acolhedor"
	// DefaultExpectedPages is used when the class owner has no profile or no page target.
	DefaultExpectedPages = 1
	// DefaultCategoryLabel labels records that are not linked to an activity template.
	DefaultCategoryLabel = "Geral"
	// DefaultMilestoneDescription stands in for milestones recorded without a description.
	DefaultMilestoneDescription = "Atingido"

	noInstructionsText = "Nenhuma instrução adicional fornecida."
	noRecordsText      = "Nenhum registro no período."
	noMilestonesText   = "Nenhum marco registrado."
	evidenceMarker     = " ⭐ EVIDÊNCIA"
	recordDateLayout   = "02/01/2006"
)

// RenderObservations renders one bullet per record in the given order:
// "- dd/mm/yyyy [categoria] (tipo): descricao", with the evidence marker appended only for
// records flagged as evidence. Dates are shown in loc.
func RenderObservations(records []models.ObservationRecord, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	lines := make([]string, 0, len(records))
	for _, r := range records {
		category := DefaultCategoryLabel
		if r.CategoryLabel != nil && *r.CategoryLabel != "" {
			category = *r.CategoryLabel
		}
		line := fmt.Sprintf("- %s [%s] (%s): %s", r.RecordedAt.In(loc).Format(recordDateLayout), category, r.Kind, r.Descricao)
		if r.IsEvidence {
			line += evidenceMarker
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderMilestones renders one bullet per milestone: "- titulo (area): descricao".
func RenderMilestones(milestones []models.Milestone) string {
	lines := make([]string, 0, len(milestones))
	for _, m := range milestones {
		description := DefaultMilestoneDescription
		if m.Descricao != nil && *m.Descricao != "" {
			description = *m.Descricao
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): %s", m.Titulo, m.Area, description))
	}
	return strings.Join(lines, "\n")
}

// PromptInput carries everything the drafting prompt embeds.
type PromptInput struct {
	StudentName   string
	BirthDate     string
	Preferences   GenerationPreferences
	Observations  string
	Milestones    string
	Instructions  string
	HasAudioInput bool
}

// BuildPrompt assembles the drafting instructions sent to the model.
func BuildPrompt(in PromptInput) string {
	observations := in.Observations
	if observations == "" {
		observations = noRecordsText
	}
	milestones := in.Milestones
	if milestones == "" {
		milestones = noMilestonesText
	}
	instructions := strings.TrimSpace(in.Instructions)
	if instructions == "" {
		instructions = noInstructionsText
	}

	var b strings.Builder
	b.WriteString("Você é um(a) professor(a) de Educação Infantil e vai redigir o parecer descritivo de uma criança.\n\n")

	b.WriteString("## Criança\n")
	fmt.Fprintf(&b, "Nome: %s\n", in.StudentName)
	fmt.Fprintf(&b, "Data de nascimento: %s\n\n", in.BirthDate)

	b.WriteString("## Estilo de escrita\n")
	b.WriteString("Siga rigorosamente o estilo do exemplo abaixo (tom, vocabulário e estrutura):\n")
	fmt.Fprintf(&b, "%s\n\n", in.Preferences.WritingStyle)

	b.WriteString("## Extensão\n")
	fmt.Fprintf(&b, "O parecer deve ocupar aproximadamente %d página(s).\n\n", in.Preferences.ExpectedPages)

	b.WriteString("## Registros do período\n")
	fmt.Fprintf(&b, "%s\n\n", observations)

	b.WriteString("## Marcos do desenvolvimento\n")
	fmt.Fprintf(&b, "%s\n\n", milestones)

	b.WriteString("## Instruções do(a) professor(a)\n")
	fmt.Fprintf(&b, "%s\n", instructions)
	if in.HasAudioInput {
		b.WriteString("Há também um áudio anexado com orientações do(a) professor(a). Considere o que for dito nele.\n")
	}
	b.WriteString("\n")

	b.WriteString("## Diretrizes\n")
	b.WriteString("- Preserve literalmente as falas da criança que aparecem entre aspas nos registros.\n")
	b.WriteString("- Dê ênfase às conquistas e aos avanços observados.\n")
	b.WriteString("- Cite os registros marcados com ⭐ EVIDÊNCIA como exemplos concretos.\n")
	b.WriteString("- Não use rótulos negativos, comparações entre crianças ou hipóteses diagnósticas.\n")
	b.WriteString("- Responda apenas com o texto do parecer em Markdown leve (títulos curtos e negrito, sem tabelas).\n")
	return b.String()
}

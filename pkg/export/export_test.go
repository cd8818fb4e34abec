package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"data", "descricao"},
		Rows: []map[string]string{
			{"data": "05/01/2024", "descricao": "Montou torre, com 6 blocos"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "data,descricao\n05/01/2024,\"Montou torre, com 6 blocos\"\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRenderDocument(t *testing.T) {
	out, err := NewPDFExporter().RenderDocument(Document{
		Title:  "Parecer Descritivo",
		Header: [][2]string{{"Aluno", "João"}, {"Período", "2024-01-01 a 2024-01-31"}},
		Body:   "## Desenvolvimento\n\nJoão **demonstrou** autonomia.\n- Empilhou blocos",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterRejectsEmptyBody(t *testing.T) {
	_, err := NewPDFExporter().RenderDocument(Document{Title: "x", Body: "  "})
	assert.Error(t, err)
}

func TestSpreadsheetCSVExporter(t *testing.T) {
	out, err := NewSpreadsheetCSVExporter().Render(Dataset{
		Headers: []string{"tipo", "descricao"},
		Rows:    []map[string]string{{"tipo": "foto", "descricao": "Pintura; guache"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "\ufefftipo;descricao\nfoto;\"Pintura; guache\"\n", string(out))
}

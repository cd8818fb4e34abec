package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Document is a titled text document with key/value header lines and a lightly
// formatted Markdown body.
type Document struct {
	Title  string
	Header [][2]string
	Body   string
}

// PDFExporter renders documents and datasets into PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// RenderDocument lays out a Document on A4 pages. Headings (#) and bullet lines (-, *) are
// recognised; inline emphasis markers are stripped.
func (e *PDFExporter) RenderDocument(doc Document) ([]byte, error) {
	if strings.TrimSpace(doc.Body) == "" {
		return nil, fmt.Errorf("pdf requires a non-empty body")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 15)
		pdf.MultiCell(0, 8, tr(doc.Title), "", "C", false)
		pdf.Ln(4)
	}

	if len(doc.Header) > 0 {
		for _, kv := range doc.Header {
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(40, 6, tr(kv[0]), "", 0, "", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 6, tr(kv[1]), "", "", false)
		}
		pdf.Ln(4)
	}

	for _, raw := range strings.Split(doc.Body, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		switch {
		case line == "":
			pdf.Ln(3)
		case strings.HasPrefix(line, "#"):
			level := len(line) - len(strings.TrimLeft(line, "#"))
			size := 14.0 - float64(level)
			if size < 11 {
				size = 11
			}
			pdf.SetFont("Arial", "B", size)
			pdf.MultiCell(0, 7, tr(stripInline(strings.TrimSpace(line[level:]))), "", "", false)
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 6, tr("  • "+stripInline(line[2:])), "", "", false)
		default:
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 6, tr(stripInline(line)), "", "J", false)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func stripInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}

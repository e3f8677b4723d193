package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// SectionBlock is one lesson section rendered on the printout.
type SectionBlock struct {
	Label     string
	Text      string
	MediaNote string
}

// BoardSheet is the printable projection of a lesson board.
type BoardSheet struct {
	Title    string
	Subtitle string
	Sections []SectionBlock
}

// PDFExporter renders lesson boards into a printable PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

var markupTags = regexp.MustCompile(`<[^>]+>`)

// Render creates a one-page PDF for the given board sheet.
func (e *PDFExporter) Render(sheet BoardSheet) ([]byte, error) {
	if len(sheet.Sections) == 0 {
		return nil, fmt.Errorf("pdf requires at least one section")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, sheet.Title, "", 1, "C", false, 0, "")
	if sheet.Subtitle != "" {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, sheet.Subtitle, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	for _, section := range sheet.Sections {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(0, 8, strings.ToUpper(section.Label), "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		body := strings.TrimSpace(markupTags.ReplaceAllString(section.Text, ""))
		if body == "" {
			body = "-"
		}
		pdf.MultiCell(0, 6, body, "LR", "L", false)
		if section.MediaNote != "" {
			pdf.SetFont("Arial", "I", 8)
			pdf.MultiCell(0, 5, section.MediaNote, "LR", "L", false)
		}
		pdf.CellFormat(0, 0, "", "T", 1, "", false, 0, "")
		pdf.Ln(3)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/rgehrsitz/pphgo/internal/domain"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 15.0
	pdfLineHeight   = 6.0
)

// PDFFormatter renders the report as an A4 document
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.SetTitle("Indonesian Tax Calculation", false)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - pdfMarginLeft - pdfMarginRight
	labelWidth := contentWidth * 0.6
	valueWidth := contentWidth - labelWidth

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 10, "Indonesian Tax Calculation", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	subtitle := fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006"))
	if results.Metadata.Period != "" {
		subtitle = fmt.Sprintf("Rate tables %s. %s", results.Metadata.Period, subtitle)
	}
	pdf.CellFormat(contentWidth, pdfLineHeight, subtitle, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(245, 247, 250)
	for _, s := range DescribeAll(results) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 51, 102)
		pdf.CellFormat(contentWidth, 8, fmt.Sprintf("%s - %s", s.Name, s.Title), "B", 1, "L", false, 0, "")

		pdf.SetTextColor(50, 50, 50)
		if s.Error != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.SetTextColor(176, 0, 32)
			pdf.MultiCell(contentWidth, pdfLineHeight, "Rejected: "+s.Error, "", "L", false)
			pdf.Ln(4)
			continue
		}
		for _, l := range s.Lines {
			style := ""
			if l.Emphasis {
				style = "B"
			}
			pdf.SetFont("Arial", style, 10)
			pdf.CellFormat(labelWidth, pdfLineHeight, l.Label, "", 0, "L", l.Emphasis, 0, "")
			pdf.CellFormat(valueWidth, pdfLineHeight, l.Display(), "", 1, "R", l.Emphasis, 0, "")
		}
		pdf.SetFont("Arial", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		for _, note := range s.Notes {
			pdf.MultiCell(contentWidth, 5, note, "", "L", false)
		}
		pdf.Ln(4)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

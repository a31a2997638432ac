package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/pphgo/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func buildTestResult() *domain.BatchResult {
	return &domain.BatchResult{
		Metadata: domain.RegulatoryMetadata{Period: "2024", Description: "TER and progressive layers"},
		Outcomes: []domain.Outcome{
			{
				Name:   "staff-k2",
				Scheme: domain.SchemeMonthly,
				Monthly: &domain.MonthlyResult{
					EmploymentStatus: domain.PermanentEmployee,
					Classification:   "K/2",
					Category:         domain.CategoryB,
					Method:           domain.MethodGrossUp,
					BaseIncome:       d("10000000"),
					TaxAllowance:     d("230179"),
					Gross:            d("10230179"),
					Rate:             d("0.0225"),
					BandMatched:      true,
					Tax:              d("230179"),
					GrossUp:          &domain.GrossUpInfo{Iterations: 5, Converged: true},
				},
			},
			{
				Name:   "annual-tk0",
				Scheme: domain.SchemeAnnual,
				Annual: &domain.AnnualResult{
					EmploymentStatus: domain.PermanentEmployee,
					Classification:   "TK/0",
					Method:           domain.MethodGross,
					Gross:            d("120000000"),
					TaxableIncome:    d("60000000"),
					AnnualTax:        d("3000000"),
					Layers: []domain.LayerAmount{
						{Rate: d("0.05"), Amount: d("60000000"), Tax: d("3000000")},
					},
					TaxWithheldPrior: d("2500000"),
					FinalPeriodTax:   d("500000"),
					Settlement:       domain.SettlementUnderpaid,
				},
			},
			{
				Name:   "royalty",
				Scheme: domain.SchemeWithholding,
				Withholding: &domain.WithholdingResult{
					IncomeType: "royalty",
					Amount:     d("1003"),
					Rate:       d("15"),
					BaseTax:    d("150"),
					Tax:        d("300"),
				},
			},
			{
				Name:   "broken",
				Scheme: domain.SchemeVAT,
				Error:  "invalid transaction_value \"-1\": must not be negative",
			},
		},
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000000", "1.000.000"},
		{"1234567.5", "1.234.568"},
		{"10230179.49", "10.230.179"},
		{"-5500000", "-5.500.000"},
		{"9223372036854775807", "9.223.372.036.854.775.807"},
		{"20000000000000000000", "20.000.000.000.000.000.000"},
		{"123456789012345678901.5", "123.456.789.012.345.678.902"},
		{"-20000000000000000000", "-20.000.000.000.000.000.000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(d(tt.in)))
		})
	}
	assert.Equal(t, "Rp 1.000.000", FormatRupiah(d("1000000")))
	assert.Equal(t, "Rp 20.000.000.000.000.000.000", FormatRupiah(d("20000000000000000000")))
}

func TestFormatRateAndPercent(t *testing.T) {
	assert.Equal(t, "2.25%", FormatRate(d("0.0225")))
	assert.Equal(t, "5%", FormatRate(d("0.05")))
	assert.Equal(t, "0.5%", FormatPercent(d("0.5")))
	assert.Equal(t, "11%", FormatPercent(d("11")))
	assert.Equal(t, "0.1%", FormatPercent(d("0.10")))
}

func TestDescribe(t *testing.T) {
	sections := DescribeAll(buildTestResult())
	require.Len(t, sections, 4)

	monthly := sections[0]
	assert.Equal(t, "PPh 21 Monthly (TER)", monthly.Title)
	assert.Empty(t, monthly.Notes)
	var totals []string
	for _, l := range monthly.Lines {
		if l.Emphasis {
			totals = append(totals, l.Label+"="+l.Display())
		}
	}
	assert.Equal(t, []string{"PPh 21 this month=Rp 230.179"}, totals)

	annual := sections[1]
	var layerLine *Line
	for i := range annual.Lines {
		if strings.HasPrefix(annual.Lines[i].Label, "  5%") {
			layerLine = &annual.Lines[i]
		}
	}
	require.NotNil(t, layerLine)
	assert.Equal(t, "  5% x Rp 60.000.000", layerLine.Label)
	assert.Contains(t, annual.Notes[0], "Underpaid")

	assert.Contains(t, sections[2].Notes[0], "no tax ID")
	assert.NotEmpty(t, sections[3].Error)
	assert.Empty(t, sections[3].Lines)
}

func TestDescribe_NonConvergedGrossUp(t *testing.T) {
	o := domain.Outcome{
		Name:   "cap",
		Scheme: domain.SchemeMonthly,
		Monthly: &domain.MonthlyResult{
			Category: domain.CategoryA,
			Method:   domain.MethodGrossUp,
			GrossUp:  &domain.GrossUpInfo{Iterations: 10},
		},
	}
	s := Describe(o)
	require.Len(t, s.Notes, 2)
	assert.Contains(t, s.Notes[0], "10 iterations")
	assert.Contains(t, s.Notes[1], "rate 0")
}

func TestFormatterFunc(t *testing.T) {
	called := false
	f := FormatterFunc{
		ID: "test-formatter",
		F: func(results *domain.BatchResult) ([]byte, error) {
			called = true
			return []byte("test output"), nil
		},
	}
	out, err := f.Format(buildTestResult())
	assert.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "test-formatter", f.Name())
	assert.Equal(t, []byte("test output"), out)
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}
	assert.Equal(t, "console", GetFormatterByName("table").Name())
	assert.Equal(t, "csv", GetFormatterByName("excel").Name())
	assert.Nil(t, GetFormatterByName("docx"))
	assert.Equal(t, []string{"console", "csv", "html", "json", "pdf"}, AvailableFormatterNames())
	assert.Equal(t, "pdf", ExtensionFor(PDFFormatter{}))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestResult())
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "1. staff-k2 - PPh 21 Monthly (TER)")
	assert.Contains(t, s, "Rp 10.230.179")
	assert.Contains(t, s, "2.25%")
	assert.Contains(t, s, "REJECTED: invalid transaction_value")
	assert.Contains(t, s, "1 of 4 computations were rejected")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestResult())
	require.NoError(t, err)

	var decoded domain.BatchResult
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Outcomes, 4)
	assert.True(t, d("230179").Equal(decoded.Outcomes[0].Monthly.Tax))
	assert.Equal(t, "2024", decoded.Metadata.Period)
	assert.True(t, decoded.Outcomes[3].Failed())
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestResult())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, csvHeader, rows[0])

	var found bool
	for _, r := range rows[1:] {
		if r[0] == "royalty" && r[2] == "PPh 23" {
			found = true
			assert.Equal(t, "300", r[3])
			assert.Equal(t, "total", r[4])
		}
	}
	assert.True(t, found)
	last := rows[len(rows)-1]
	assert.Equal(t, []string{"broken", "vat", "error"}, last[:3])
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestResult())
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "<h2>staff-k2 <small>PPh 21 Monthly (TER)</small></h2>")
	assert.Contains(t, s, `<tr class="total"><td>PPh 23</td><td class="value">Rp 300</td></tr>`)
	assert.Contains(t, s, "Rejected: invalid transaction_value &#34;-1&#34;")
}

func TestPDFFormatter(t *testing.T) {
	out, err := PDFFormatter{}.Format(buildTestResult())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestWriteFormatted(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(originalDir)

	f := FormatterFunc{
		ID: "test-formatter",
		F: func(results *domain.BatchResult) ([]byte, error) {
			return []byte("test output content"), nil
		},
	}
	name, err := WriteFormatted(f, buildTestResult(), "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "pph_report_"))
	assert.True(t, strings.HasSuffix(name, ".txt"))

	content, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "test output content", string(content))
}

func TestCSVCell(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"empty", "", ""},
		{"plain text", "PPh 23", "PPh 23"},
		{"negative number", "-5500000", "-5500000"},
		{"signed decimal", "+0.0225", "+0.0225"},
		{"formula", `=HYPERLINK("http://x","y")`, `'=HYPERLINK("http://x","y")`},
		{"plus formula", "+1+cmd", "'+1+cmd"},
		{"minus formula", "-2+3;A1", "'-2+3;A1"},
		{"at formula", "@SUM(A1:A2)", "'@SUM(A1:A2)"},
		{"leading tab", "\t=1", "'\t=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CSVCell(tt.cell))
		})
	}
}

func TestCSVFormatter_QuotesFormulaCells(t *testing.T) {
	results := buildTestResult()
	results.Outcomes[0].Name = `=HYPERLINK("http://x","y")`
	results.Outcomes[len(results.Outcomes)-1].Name = "@evil"

	out, err := CSVFormatter{}.Format(results)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)

	for _, r := range rows[1:] {
		for _, cell := range r {
			if cell == "" {
				continue
			}
			switch cell[0] {
			case '=', '@':
				t.Errorf("unquoted formula cell %q in row %v", cell, r)
			}
		}
	}
	assert.Equal(t, `'=HYPERLINK("http://x","y")`, rows[1][0])
	assert.Equal(t, "'@evil", rows[len(rows)-1][0])
}

package output

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/pphgo/internal/domain"
)

var csvHeader = []string{"Computation", "Scheme", "Label", "Value", "Emphasis"}

// CSVCell quotes text a spreadsheet would evaluate as a formula by prefixing it with
// an apostrophe. Plain numbers such as -5500000 are written unchanged.
func CSVCell(cell string) string {
	if cell == "" || !strings.ContainsRune("=+-@\t\r", rune(cell[0])) {
		return cell
	}
	if _, err := decimal.NewFromString(cell); err == nil {
		return cell
	}
	return "'" + cell
}

// CSVFormatter writes one row per described line, long format
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(results *domain.BatchResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, s := range DescribeAll(results) {
		if s.Error != "" {
			if err := w.Write([]string{CSVCell(s.Name), string(s.Scheme), "error", CSVCell(s.Error), ""}); err != nil {
				return nil, err
			}
			continue
		}
		for _, l := range s.Lines {
			emphasis := ""
			if l.Emphasis {
				emphasis = "total"
			}
			if err := w.Write([]string{CSVCell(s.Name), string(s.Scheme), CSVCell(l.Label), CSVCell(l.Raw()), emphasis}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

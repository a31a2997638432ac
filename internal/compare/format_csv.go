package compare

import (
	"encoding/csv"
	"strings"

	"github.com/rgehrsitz/pphgo/internal/output"
)

// CSVFormatter formats comparison results as CSV, one row per computation and method
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Computation",
		"Scheme",
		"Classification",
		"Method",
		"Allowance",
		"Employer Cost",
		"Tax",
		"Take Home",
		"Effective Rate",
		"Converged",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, r := range compSet.Results {
		for _, m := range []MethodResult{r.Gross, r.GrossUp} {
			if err := writer.Write(cf.formatRow(&r, m)); err != nil {
				return "", err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(r *ComparisonResult, m MethodResult) []string {
	converged := "true"
	if !m.Converged {
		converged = "false"
	}
	return []string{
		output.CSVCell(r.Name),
		string(r.Scheme),
		output.CSVCell(r.Classification),
		string(m.Method),
		m.Allowance.String(),
		m.EmployerCost.String(),
		m.Tax.String(),
		m.TakeHome.String(),
		m.EffectiveRate.StringFixed(4),
		converged,
	}
}

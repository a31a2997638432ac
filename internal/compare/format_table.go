package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/pphgo/internal/output"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing both methods per computation
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("GROSS VS GROSS-UP COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Input: %s\n", compSet.ConfigPath))
	}

	labelWidth := 20
	numWidth := 18

	for _, r := range compSet.Results {
		sb.WriteString(fmt.Sprintf("\n%s (%s, %s)\n", r.Name, r.Scheme, r.Classification))
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
			labelWidth, "",
			numWidth, "Gross",
			numWidth, "Gross-up",
			numWidth, "Difference"))
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(tf.formatRow("Tax allowance", r.Gross.Allowance, r.GrossUp.Allowance, r.GrossUp.Allowance.Sub(r.Gross.Allowance), labelWidth, numWidth))
		sb.WriteString(tf.formatRow("Employer cost", r.Gross.EmployerCost, r.GrossUp.EmployerCost, r.EmployerCostDiff, labelWidth, numWidth))
		sb.WriteString(tf.formatRow("Tax", r.Gross.Tax, r.GrossUp.Tax, r.TaxDiff, labelWidth, numWidth))
		sb.WriteString(tf.formatRow("Take-home", r.Gross.TakeHome, r.GrossUp.TakeHome, r.TakeHomeDiff, labelWidth, numWidth))
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n",
			labelWidth, "Effective rate",
			numWidth, output.FormatRate(r.Gross.EffectiveRate.Round(4)),
			numWidth, output.FormatRate(r.GrossUp.EffectiveRate.Round(4))))
	}

	if len(compSet.Skipped) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkipped (no gross-up method): %s\n", strings.Join(compSet.Skipped, ", ")))
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString("• " + rec + "\n")
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	return sb.String()
}

func (tf *TableFormatter) formatRow(label string, gross, grossUp, diff decimal.Decimal, labelWidth, numWidth int) string {
	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		labelWidth, label,
		numWidth, output.FormatNumber(gross),
		numWidth, output.FormatNumber(grossUp),
		numWidth, tf.deltaSymbol(diff)+output.FormatNumber(diff))
}

func (tf *TableFormatter) deltaSymbol(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+"
	}
	return ""
}

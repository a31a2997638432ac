package compare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/rgehrsitz/pphgo/internal/output"
)

// MethodResult holds the cost figures of one withholding method
type MethodResult struct {
	Method        domain.Method   `json:"method"`
	Allowance     decimal.Decimal `json:"allowance"`
	EmployerCost  decimal.Decimal `json:"employer_cost"` // gross paid by the employer
	Tax           decimal.Decimal `json:"tax"`
	TakeHome      decimal.Decimal `json:"take_home"`
	EffectiveRate decimal.Decimal `json:"effective_rate"` // tax / employer cost
	Converged     bool            `json:"converged"`
}

// ComparisonResult compares the gross method against gross-up for one computation
type ComparisonResult struct {
	Name           string        `json:"name"`
	Scheme         domain.Scheme `json:"scheme"`
	Classification string        `json:"classification"`
	Gross          MethodResult  `json:"gross"`
	GrossUp        MethodResult  `json:"gross_up"`

	// gross-up minus gross
	EmployerCostDiff decimal.Decimal `json:"employer_cost_diff"`
	TaxDiff          decimal.Decimal `json:"tax_diff"`
	TakeHomeDiff     decimal.Decimal `json:"take_home_diff"`
}

// ComparisonSet collects the comparisons of a batch
type ComparisonSet struct {
	Results         []ComparisonResult `json:"results"`
	Skipped         []string           `json:"skipped,omitempty"`
	Recommendations []string           `json:"recommendations"`
	ConfigPath      string             `json:"config_path"`
}

// MetricsCalculator derives method figures from calculator results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// FromMonthly extracts the figures of a monthly result
func (mc *MetricsCalculator) FromMonthly(r *domain.MonthlyResult) MethodResult {
	return mc.methodResult(r.Method, r.TaxAllowance, r.Gross, r.Tax, r.GrossUp)
}

// FromAnnual extracts the figures of an annual result. The annual tax, not the
// final-period balance, is the cost of the year.
func (mc *MetricsCalculator) FromAnnual(r *domain.AnnualResult) MethodResult {
	return mc.methodResult(r.Method, r.TaxAllowance, r.Gross, r.AnnualTax, r.GrossUp)
}

func (mc *MetricsCalculator) methodResult(method domain.Method, allowance, gross, tax decimal.Decimal, info *domain.GrossUpInfo) MethodResult {
	mr := MethodResult{
		Method:       method,
		Allowance:    allowance,
		EmployerCost: gross,
		Tax:          tax,
		TakeHome:     gross.Sub(tax),
		Converged:    info == nil || info.Converged,
	}
	if !gross.IsZero() {
		mr.EffectiveRate = tax.Div(gross)
	}
	return mr
}

// CalculateComparison fills the deltas of a comparison
func (mc *MetricsCalculator) CalculateComparison(cr ComparisonResult) ComparisonResult {
	cr.EmployerCostDiff = cr.GrossUp.EmployerCost.Sub(cr.Gross.EmployerCost)
	cr.TaxDiff = cr.GrossUp.Tax.Sub(cr.Gross.Tax)
	cr.TakeHomeDiff = cr.GrossUp.TakeHome.Sub(cr.Gross.TakeHome)
	return cr
}

// GenerateRecommendations summarises the cost of bearing the employee's tax
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	for _, r := range compSet.Results {
		if r.EmployerCostDiff.IsPositive() {
			recommendations = append(recommendations, fmt.Sprintf(
				"%s: gross-up costs the employer %s more and raises take-home pay by %s",
				r.Name, output.FormatRupiah(r.EmployerCostDiff), output.FormatRupiah(r.TakeHomeDiff)))
		}
		if !r.GrossUp.Converged {
			recommendations = append(recommendations, fmt.Sprintf(
				"%s: gross-up did not converge; review the allowance before paying it", r.Name))
		}
	}

	if len(compSet.Results) > 1 {
		costliest := compSet.Results[0]
		for _, r := range compSet.Results[1:] {
			if r.EmployerCostDiff.GreaterThan(costliest.EmployerCostDiff) {
				costliest = r
			}
		}
		if costliest.EmployerCostDiff.IsPositive() {
			recommendations = append(recommendations, fmt.Sprintf(
				"Largest gross-up cost: %s (%s)", costliest.Name, output.FormatRupiah(costliest.EmployerCostDiff)))
		}
	}

	return recommendations
}

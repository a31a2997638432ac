package calculation

import (
	"github.com/rgehrsitz/pphgo/internal/domain"
)

// MonthlyCalculator computes monthly PPh 21 withholding with the TER method
type MonthlyCalculator struct {
	Solver *GrossUpSolver
}

// NewMonthlyCalculator creates a monthly calculator sharing the given solver
func NewMonthlyCalculator(solver *GrossUpSolver) *MonthlyCalculator {
	if solver == nil {
		solver = NewGrossUpSolver(nil)
	}
	return &MonthlyCalculator{Solver: solver}
}

// Calculate applies the category's effective rate to the month's gross income
func (mc *MonthlyCalculator) Calculate(req domain.MonthlyRequest) (*domain.MonthlyResult, error) {
	if err := checkAmounts(req.Income.Fields()...); err != nil {
		return nil, err
	}
	method, err := normalizeMethod(req.Method)
	if err != nil {
		return nil, err
	}
	status, err := normalizeEmploymentStatus(req.EmploymentStatus)
	if err != nil {
		return nil, err
	}
	allowance, err := ResolveClassification(req.Classification)
	if err != nil {
		return nil, err
	}
	table, _ := TERTable(allowance.Category)

	result := &domain.MonthlyResult{
		EmploymentStatus: status,
		Classification:   allowance.Classification.String(),
		Category:         allowance.Category,
		Method:           method,
		BaseIncome:       req.Income.Base(),
	}

	var band BandTax
	if method == domain.MethodGrossUp {
		solved := mc.Solver.SolveMonthly(result.BaseIncome, table)
		result.TaxAllowance = solved.Allowance
		band = solved.Band
		result.GrossUp = solved.State.Info()
	} else {
		result.TaxAllowance = req.Income.TaxAllowance
		band = TERTax(table, result.BaseIncome.Add(req.Income.TaxAllowance))
	}

	if !band.Matched {
		mc.Solver.Logger.Warnf("no TER band in table %s matches gross %s, applying rate 0",
			table.Key, band.Amount.String())
	}
	result.Gross = band.Amount
	result.Rate = band.Rate
	result.BandMatched = band.Matched
	result.Tax = band.Tax
	return result, nil
}

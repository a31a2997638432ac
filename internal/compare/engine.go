package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/pphgo/internal/calculation"
	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine orchestrates gross vs gross-up comparisons
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Names      []string // computations to compare; empty means every monthly and annual one
	ConfigPath string
}

// Compare runs every selected monthly and annual computation under both methods.
// Computations of other schemes are listed as skipped.
func (ce *CompareEngine) Compare(ctx context.Context, batch *domain.Batch, options CompareOptions) (*ComparisonSet, error) {
	if batch == nil {
		return nil, fmt.Errorf("no batch to compare")
	}

	selected := map[string]bool{}
	for _, n := range options.Names {
		selected[n] = true
	}
	found := map[string]bool{}

	compSet := &ComparisonSet{ConfigPath: options.ConfigPath, Results: []ComparisonResult{}}
	for i, c := range batch.Computations {
		if len(selected) > 0 && !selected[c.Name] {
			continue
		}
		found[c.Name] = true
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("comparison cancelled at computation %d: %w", i+1, err)
		}

		var (
			cr  ComparisonResult
			err error
		)
		switch {
		case c.Scheme == domain.SchemeMonthly && c.Monthly != nil:
			cr, err = ce.compareMonthly(*c.Monthly)
		case c.Scheme == domain.SchemeAnnual && c.Annual != nil:
			cr, err = ce.compareAnnual(*c.Annual)
		default:
			compSet.Skipped = append(compSet.Skipped, c.Name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to compare %s: %w", c.Name, err)
		}
		cr.Name = c.Name
		cr.Scheme = c.Scheme
		compSet.Results = append(compSet.Results, ce.MetricsCalculator.CalculateComparison(cr))
	}

	for _, n := range options.Names {
		if !found[n] {
			return nil, fmt.Errorf("computation %s not found", n)
		}
	}

	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// CompareMonthly compares one monthly request directly
func (ce *CompareEngine) CompareMonthly(name string, req domain.MonthlyRequest) (ComparisonResult, error) {
	cr, err := ce.compareMonthly(req)
	if err != nil {
		return ComparisonResult{}, err
	}
	cr.Name = name
	cr.Scheme = domain.SchemeMonthly
	return ce.MetricsCalculator.CalculateComparison(cr), nil
}

func (ce *CompareEngine) compareMonthly(req domain.MonthlyRequest) (ComparisonResult, error) {
	// the gross method here pays no allowance: the employee bears the tax
	req.Income.TaxAllowance = decimal.Zero

	req.Method = domain.MethodGross
	gross, err := ce.CalcEngine.CalculateMonthly(req)
	if err != nil {
		return ComparisonResult{}, err
	}
	req.Method = domain.MethodGrossUp
	grossUp, err := ce.CalcEngine.CalculateMonthly(req)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ComparisonResult{
		Classification: gross.Classification,
		Gross:          ce.MetricsCalculator.FromMonthly(gross),
		GrossUp:        ce.MetricsCalculator.FromMonthly(grossUp),
	}, nil
}

func (ce *CompareEngine) compareAnnual(req domain.AnnualRequest) (ComparisonResult, error) {
	req.Income.TaxAllowance = decimal.Zero

	req.Method = domain.MethodGross
	gross, err := ce.CalcEngine.CalculateAnnual(req)
	if err != nil {
		return ComparisonResult{}, err
	}
	req.Method = domain.MethodGrossUp
	grossUp, err := ce.CalcEngine.CalculateAnnual(req)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ComparisonResult{
		Classification: gross.Classification,
		Gross:          ce.MetricsCalculator.FromAnnual(gross),
		GrossUp:        ce.MetricsCalculator.FromAnnual(grossUp),
	}, nil
}

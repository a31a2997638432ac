package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/pphgo/internal/domain"
)

// CalculationEngine dispatches requests to the scheme calculators. It holds no
// per-call state and is safe for concurrent use once configured.
type CalculationEngine struct {
	Solver      *GrossUpSolver
	MonthlyCalc *MonthlyCalculator
	AnnualCalc  *AnnualCalculator
	Logger      Logger
	Anomalies   []TableAnomaly // rate table integrity problems found at construction
}

// NewCalculationEngine creates a new calculation engine with a no-op logger
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithLogger(nil)
}

// NewCalculationEngineWithLogger creates an engine and reports rate table anomalies
// to the logger
func NewCalculationEngineWithLogger(logger Logger) *CalculationEngine {
	solver := NewGrossUpSolver(logger)
	ce := &CalculationEngine{
		Solver:      solver,
		MonthlyCalc: NewMonthlyCalculator(solver),
		AnnualCalc:  NewAnnualCalculator(solver),
		Logger:      solver.Logger,
		Anomalies:   ValidateAllTables(),
	}
	for _, a := range ce.Anomalies {
		ce.Logger.Warnf("rate table anomaly: %s", a.String())
	}
	return ce
}

// SetLogger replaces the logger on the engine and its calculators. nil installs a no-op logger.
func (ce *CalculationEngine) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}
	ce.Logger = logger
	ce.Solver.Logger = logger
}

// CalculateMonthly computes monthly TER withholding
func (ce *CalculationEngine) CalculateMonthly(req domain.MonthlyRequest) (*domain.MonthlyResult, error) {
	result, err := ce.MonthlyCalc.Calculate(req)
	if err != nil {
		return nil, err
	}
	ce.Logger.Debugf("monthly %s %s: gross=%s rate=%s tax=%s",
		result.Classification, result.Method, result.Gross, result.Rate, result.Tax)
	return result, nil
}

// CalculateAnnual computes the annual reconciliation
func (ce *CalculationEngine) CalculateAnnual(req domain.AnnualRequest) (*domain.AnnualResult, error) {
	result, err := ce.AnnualCalc.Calculate(req)
	if err != nil {
		return nil, err
	}
	ce.Logger.Debugf("annual %s %s: taxable=%s tax=%s final=%s (%s)",
		result.Classification, result.Method, result.TaxableIncome, result.AnnualTax,
		result.FinalPeriodTax, result.Settlement)
	return result, nil
}

// CalculateGoodsTax computes PPh 22
func (ce *CalculationEngine) CalculateGoodsTax(req domain.GoodsTaxRequest) (*domain.GoodsTaxResult, error) {
	return CalculateGoodsTax(req)
}

// CalculateWithholding computes PPh 23
func (ce *CalculationEngine) CalculateWithholding(req domain.WithholdingRequest) (*domain.WithholdingResult, error) {
	return CalculateWithholding(req)
}

// CalculateFinalTax computes PPh 4(2)
func (ce *CalculationEngine) CalculateFinalTax(req domain.FinalTaxRequest) (*domain.FinalTaxResult, error) {
	return CalculateFinalTax(req)
}

// CalculateVAT computes PPN
func (ce *CalculationEngine) CalculateVAT(req domain.VATRequest) (*domain.VATResult, error) {
	return CalculateVAT(req)
}

// CalculateUnifiedLevy computes the small-business levy
func (ce *CalculationEngine) CalculateUnifiedLevy(req domain.UnifiedLevyRequest) (*domain.UnifiedLevyResult, error) {
	result, err := CalculateUnifiedLevy(req)
	if err != nil {
		return nil, err
	}
	if result.Status != domain.LevyEligible {
		ce.Logger.Infof("unified levy %s: %s", result.Status, result.Status.Message())
	}
	return result, nil
}

// Calculate runs one batch computation. Rejections are recorded on the outcome.
func (ce *CalculationEngine) Calculate(c domain.Computation) domain.Outcome {
	out := domain.Outcome{Name: c.Name, Scheme: c.Scheme}
	var err error
	missing := func() error {
		return &InvalidInputError{Field: "computation", Value: c.Name, Message: fmt.Sprintf("missing %s request", c.Scheme)}
	}

	switch c.Scheme {
	case domain.SchemeMonthly:
		if c.Monthly == nil {
			err = missing()
			break
		}
		out.Monthly, err = ce.CalculateMonthly(*c.Monthly)
	case domain.SchemeAnnual:
		if c.Annual == nil {
			err = missing()
			break
		}
		out.Annual, err = ce.CalculateAnnual(*c.Annual)
	case domain.SchemeGoods:
		if c.Goods == nil {
			err = missing()
			break
		}
		out.Goods, err = ce.CalculateGoodsTax(*c.Goods)
	case domain.SchemeWithholding:
		if c.Withholding == nil {
			err = missing()
			break
		}
		out.Withholding, err = ce.CalculateWithholding(*c.Withholding)
	case domain.SchemeFinal:
		if c.Final == nil {
			err = missing()
			break
		}
		out.Final, err = ce.CalculateFinalTax(*c.Final)
	case domain.SchemeVAT:
		if c.VAT == nil {
			err = missing()
			break
		}
		out.VAT, err = ce.CalculateVAT(*c.VAT)
	case domain.SchemeUnifiedLevy:
		if c.Levy == nil {
			err = missing()
			break
		}
		out.Levy, err = ce.CalculateUnifiedLevy(*c.Levy)
	default:
		err = &InvalidInputError{Field: "scheme", Value: string(c.Scheme), Message: "unknown scheme"}
	}

	if err != nil {
		ce.Logger.Warnf("computation %q rejected: %v", c.Name, err)
		out.Error = err.Error()
	}
	return out
}

// RunBatch runs every computation in order. Individual rejections do not stop the
// batch; cancellation is checked between computations.
func (ce *CalculationEngine) RunBatch(ctx context.Context, batch *domain.Batch) (*domain.BatchResult, error) {
	if batch == nil {
		return nil, fmt.Errorf("batch is nil")
	}
	result := &domain.BatchResult{
		Metadata: Metadata,
		Outcomes: make([]domain.Outcome, 0, len(batch.Computations)),
	}
	for i, c := range batch.Computations {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("batch cancelled at computation %d: %w", i+1, ctx.Err())
		default:
		}
		result.Outcomes = append(result.Outcomes, ce.Calculate(c))
	}
	ce.Logger.Infof("batch complete: %d computations, %d rejected", len(result.Outcomes), result.FailedCount())
	return result, nil
}

package calculation

import (
	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
)

// grossUpMaxIterations bounds the fixed-point iteration. Reaching it is reported on the
// result, not returned as an error.
const grossUpMaxIterations = 10

var one = decimal.NewFromInt(1)

// ConvergenceState tracks the gross-up fixed point between steps
type ConvergenceState struct {
	Iterations int
	Allowance  decimal.Decimal // current estimate of the tax allowance
	LastTax    decimal.Decimal // tax computed in the latest step
	Converged  bool
}

// Info summarises the state for a result record
func (s ConvergenceState) Info() *domain.GrossUpInfo {
	return &domain.GrossUpInfo{Iterations: s.Iterations, Converged: s.Converged}
}

// TaxFunc computes the tax owed on a rounded gross amount
type TaxFunc func(gross decimal.Decimal) decimal.Decimal

// GrossUpSolver finds the tax allowance that exactly covers the tax on base plus itself
type GrossUpSolver struct {
	Logger Logger
}

// NewGrossUpSolver creates a solver. A nil logger discards output.
func NewGrossUpSolver(logger Logger) *GrossUpSolver {
	if logger == nil {
		logger = NopLogger{}
	}
	return &GrossUpSolver{Logger: logger}
}

// Solve iterates T(i+1) = tax(round(base + T(i))) from T(0) = 0 until successive
// estimates differ by less than one rupiah or the iteration cap is hit
func (s *GrossUpSolver) Solve(base decimal.Decimal, tax TaxFunc) ConvergenceState {
	state := ConvergenceState{Allowance: decimal.Zero, LastTax: decimal.Zero}
	for state.Iterations < grossUpMaxIterations {
		state.Iterations++
		gross := roundHalfUp(base.Add(state.Allowance))
		next := tax(gross)
		state.LastTax = next
		s.Logger.Debugf("gross-up step %d: gross=%s tax=%s allowance=%s",
			state.Iterations, gross.String(), next.String(), state.Allowance.String())

		converged := next.Sub(state.Allowance).Abs().LessThan(one)
		state.Allowance = next
		if converged {
			state.Converged = true
			return state
		}
	}
	s.Logger.Warnf("gross-up did not converge after %d iterations for base %s, using last estimate %s",
		grossUpMaxIterations, base.String(), state.Allowance.String())
	return state
}

// MonthlyGrossUp is the solved monthly allowance and the TER figures at the final gross
type MonthlyGrossUp struct {
	Allowance decimal.Decimal
	Gross     decimal.Decimal
	Band      BandTax
	State     ConvergenceState
}

// SolveMonthly solves the allowance against a TER table, then recomputes the tax, rate
// and band at the final gross
func (s *GrossUpSolver) SolveMonthly(base decimal.Decimal, table domain.RateTable) MonthlyGrossUp {
	state := s.Solve(base, func(gross decimal.Decimal) decimal.Decimal {
		return TERTax(table, gross).Tax
	})
	allowance := roundHalfUp(state.Allowance)
	gross := roundHalfUp(base.Add(state.Allowance))
	return MonthlyGrossUp{
		Allowance: allowance,
		Gross:     gross,
		Band:      TERTax(table, gross),
		State:     state,
	}
}

// AnnualGrossUp is the solved annual allowance
type AnnualGrossUp struct {
	Allowance decimal.Decimal
	Gross     decimal.Decimal
	State     ConvergenceState
}

// SolveAnnual solves the allowance against the full annual pipeline. Every step
// recomputes the occupational deduction, the taxable income and the layered tax since
// the allowance shifts all three.
func (s *GrossUpSolver) SolveAnnual(base, otherDeductions, threshold decimal.Decimal, status domain.EmploymentStatus) AnnualGrossUp {
	state := s.Solve(base, func(gross decimal.Decimal) decimal.Decimal {
		return ReconcileTaxable(gross, otherDeductions, threshold, status).Tax.Total
	})
	allowance := roundHalfUp(state.Allowance)
	return AnnualGrossUp{
		Allowance: allowance,
		Gross:     base.Add(allowance),
		State:     state,
	}
}

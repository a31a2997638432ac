package calculation

import (
	"testing"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrossUpSolver_MonthlyConverges(t *testing.T) {
	table, _ := TERTable(domain.CategoryA)
	solver := NewGrossUpSolver(nil)

	res := solver.SolveMonthly(d("10000000"), table)

	assert.True(t, res.State.Converged)
	assert.Equal(t, 5, res.State.Iterations)
	assert.True(t, d("230179").Equal(res.Allowance), "allowance %s", res.Allowance)
	assert.True(t, d("10230179").Equal(res.Gross), "gross %s", res.Gross)
	assert.True(t, d("0.0225").Equal(res.Band.Rate))
	// at the fixed point the allowance covers the tax exactly
	assert.True(t, res.Allowance.Equal(res.Band.Tax))
}

func TestGrossUpSolver_IterationCapIsNotAnError(t *testing.T) {
	table, _ := TERTable(domain.CategoryA)
	logger := &TestLogger{}
	solver := NewGrossUpSolver(logger)

	// the estimate crosses the 7%/8% boundary and keeps creeping
	res := solver.SolveMonthly(d("15763612"), table)

	assert.False(t, res.State.Converged)
	assert.Equal(t, grossUpMaxIterations, res.State.Iterations)
	assert.True(t, d("1370749").Equal(res.Allowance), "allowance %s", res.Allowance)
	assert.True(t, d("17134361").Equal(res.Gross), "gross %s", res.Gross)
	assert.True(t, d("0.08").Equal(res.Band.Rate))
	assert.True(t, d("1370749").Equal(res.Band.Tax))
	assert.True(t, logger.has("WARN: gross-up did not converge"))
}

func TestGrossUpSolver_ZeroBase(t *testing.T) {
	table, _ := TERTable(domain.CategoryC)
	res := NewGrossUpSolver(nil).SolveMonthly(decimal.Zero, table)
	assert.True(t, res.State.Converged)
	assert.Equal(t, 1, res.State.Iterations)
	assert.True(t, res.Allowance.IsZero())
	assert.True(t, res.Gross.IsZero())
}

func TestGrossUpSolver_Solve(t *testing.T) {
	// tax = 10% of gross converges toward base/9
	solver := NewGrossUpSolver(nil)
	state := solver.Solve(d("900"), func(gross decimal.Decimal) decimal.Decimal {
		return roundHalfUp(gross.Mul(d("0.1")))
	})
	require.True(t, state.Converged)
	assert.True(t, d("100").Equal(state.Allowance), "allowance %s", state.Allowance)
	assert.Equal(t, state.Iterations, state.Info().Iterations)
	assert.True(t, state.Info().Converged)
}

func TestGrossUpSolver_Annual(t *testing.T) {
	solver := NewGrossUpSolver(nil)
	res := solver.SolveAnnual(d("120000000"), decimal.Zero, d("54000000"), domain.PermanentEmployee)

	require.True(t, res.State.Converged)
	assert.Equal(t, 7, res.State.Iterations)
	assert.True(t, d("3529350").Equal(res.Allowance), "allowance %s", res.Allowance)
	assert.True(t, d("123529350").Equal(res.Gross), "gross %s", res.Gross)

	figures := ReconcileTaxable(res.Gross, decimal.Zero, d("54000000"), domain.PermanentEmployee)
	assert.True(t, figures.Tax.Total.Equal(res.Allowance))
}

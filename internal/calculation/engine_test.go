package calculation

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Solver, "Should initialize gross-up solver")
	assert.NotNil(t, engine.MonthlyCalc, "Should initialize monthly calculator")
	assert.NotNil(t, engine.AnnualCalc, "Should initialize annual calculator")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Len(t, engine.Anomalies, 2, "Should record rate table anomalies")
}

func TestNewCalculationEngineWithLogger_WarnsAboutAnomalies(t *testing.T) {
	logger := &TestLogger{}
	NewCalculationEngineWithLogger(logger)

	assert.True(t, logger.has("WARN: rate table anomaly"), "Should warn about the category B table")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	// Test setting a custom logger
	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")
	assert.Equal(t, customLogger, engine.Solver.Logger, "Should share logger with the solver")

	// Test setting nil logger (should use no-op logger)
	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_Calculate(t *testing.T) {
	engine := NewCalculationEngine()

	tests := []struct {
		name    string
		c       domain.Computation
		check   func(t *testing.T, out domain.Outcome)
		wantErr string
	}{
		{
			name: "monthly",
			c: domain.Computation{Name: "m", Scheme: domain.SchemeMonthly, Monthly: &domain.MonthlyRequest{
				Classification: "TK/0", Income: domain.IncomeComponents{Salary: d("10000000")},
			}},
			check: func(t *testing.T, out domain.Outcome) {
				require.NotNil(t, out.Monthly)
				assert.True(t, d("200000").Equal(out.Monthly.Tax))
			},
		},
		{
			name: "annual",
			c:    domain.Computation{Name: "a", Scheme: domain.SchemeAnnual, Annual: ptr(annualRequest())},
			check: func(t *testing.T, out domain.Outcome) {
				require.NotNil(t, out.Annual)
				assert.True(t, d("500000").Equal(out.Annual.FinalPeriodTax))
			},
		},
		{
			name: "goods",
			c:    domain.Computation{Name: "g", Scheme: domain.SchemeGoods, Goods: &domain.GoodsTaxRequest{GoodsType: "import", TransactionValue: d("1000000")}},
			check: func(t *testing.T, out domain.Outcome) {
				require.NotNil(t, out.Goods)
				assert.True(t, d("25000").Equal(out.Goods.Tax))
			},
		},
		{
			name: "withholding",
			c: domain.Computation{Name: "w", Scheme: domain.SchemeWithholding, Withholding: &domain.WithholdingRequest{
				IncomeType: "interest", Amount: d("1000000"), WithoutTaxID: true,
			}},
			check: func(t *testing.T, out domain.Outcome) {
				require.NotNil(t, out.Withholding)
				assert.True(t, d("300000").Equal(out.Withholding.Tax))
			},
		},
		{
			name: "final",
			c:    domain.Computation{Name: "f", Scheme: domain.SchemeFinal, Final: &domain.FinalTaxRequest{IncomeType: "interest", Amount: d("1000000")}},
			check: func(t *testing.T, out domain.Outcome) {
				require.NotNil(t, out.Final)
				assert.True(t, d("100000").Equal(out.Final.Tax))
			},
		},
		{
			name: "vat",
			c:    domain.Computation{Name: "v", Scheme: domain.SchemeVAT, VAT: &domain.VATRequest{TransactionType: "general", TransactionValue: d("1110000")}},
			check: func(t *testing.T, out domain.Outcome) {
				require.NotNil(t, out.VAT)
				assert.True(t, d("110000").Equal(out.VAT.Tax))
			},
		},
		{
			name: "levy",
			c: domain.Computation{Name: "l", Scheme: domain.SchemeUnifiedLevy, Levy: &domain.UnifiedLevyRequest{
				BusinessType: domain.BusinessUMKM, GrossIncome: d("500000000"),
			}},
			check: func(t *testing.T, out domain.Outcome) {
				require.NotNil(t, out.Levy)
				assert.True(t, d("2500000").Equal(out.Levy.Tax))
			},
		},
		{
			name:    "missing request",
			c:       domain.Computation{Name: "empty", Scheme: domain.SchemeVAT},
			wantErr: "missing vat request",
		},
		{
			name:    "unknown scheme",
			c:       domain.Computation{Name: "x", Scheme: "payroll"},
			wantErr: "unknown scheme",
		},
		{
			name: "rejected input",
			c: domain.Computation{Name: "neg", Scheme: domain.SchemeGoods, Goods: &domain.GoodsTaxRequest{
				GoodsType: "import", TransactionValue: d("-5"),
			}},
			wantErr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := engine.Calculate(tt.c)
			assert.Equal(t, tt.c.Name, out.Name)
			assert.Equal(t, tt.c.Scheme, out.Scheme)
			if tt.wantErr != "" {
				assert.True(t, out.Failed())
				assert.Contains(t, out.Error, tt.wantErr)
				return
			}
			assert.False(t, out.Failed(), out.Error)
			tt.check(t, out)
		})
	}
}

func TestCalculationEngine_RunBatch(t *testing.T) {
	engine := NewCalculationEngine()
	batch := &domain.Batch{Computations: []domain.Computation{
		{Name: "ok", Scheme: domain.SchemeFinal, Final: &domain.FinalTaxRequest{IncomeType: "prize", Amount: d("4000000")}},
		{Name: "bad", Scheme: domain.SchemeMonthly, Monthly: &domain.MonthlyRequest{Classification: "Z9"}},
	}}

	result, err := engine.RunBatch(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, Metadata, result.Metadata)
	assert.Equal(t, "ok", result.Outcomes[0].Name)
	assert.True(t, d("1000000").Equal(result.Outcomes[0].Final.Tax))
	assert.Contains(t, result.Outcomes[1].Error, "unresolved classification")
	assert.Equal(t, 1, result.FailedCount())
}

func TestCalculationEngine_RunBatch_Cancelled(t *testing.T) {
	engine := NewCalculationEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.RunBatch(ctx, &domain.Batch{Computations: []domain.Computation{{Name: "x"}}})
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)

	_, err = engine.RunBatch(context.Background(), nil)
	assert.Error(t, err)
}

func ptr[T any](v T) *T {
	return &v
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func (tl *TestLogger) has(prefix string) bool {
	for _, m := range tl.messages {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}

// schemeComputations returns one fresh computation per scheme, gross-up where the
// scheme supports it
func schemeComputations() []domain.Computation {
	return []domain.Computation{
		{Name: "monthly", Scheme: domain.SchemeMonthly, Monthly: &domain.MonthlyRequest{
			Classification: "TK/0", Method: domain.MethodGrossUp, Income: domain.IncomeComponents{Salary: d("10000000")},
		}},
		{Name: "annual", Scheme: domain.SchemeAnnual, Annual: &domain.AnnualRequest{
			MaritalStatus: domain.Married, Dependents: 2, Method: domain.MethodGrossUp,
			Income: domain.IncomeComponents{Salary: d("180000000"), Bonus: d("15000000")}, Zakat: d("1200000"),
			TaxWithheldPrior: d("6000000"),
		}},
		{Name: "goods", Scheme: domain.SchemeGoods, Goods: &domain.GoodsTaxRequest{GoodsType: "import", TransactionValue: d("1000000")}},
		{Name: "withholding", Scheme: domain.SchemeWithholding, Withholding: &domain.WithholdingRequest{
			IncomeType: "royalty", Amount: d("1003"), WithoutTaxID: true,
		}},
		{Name: "final", Scheme: domain.SchemeFinal, Final: &domain.FinalTaxRequest{IncomeType: "interest", Amount: d("1000000")}},
		{Name: "vat", Scheme: domain.SchemeVAT, VAT: &domain.VATRequest{TransactionType: "general", TransactionValue: d("1110000")}},
		{Name: "levy", Scheme: domain.SchemeUnifiedLevy, Levy: &domain.UnifiedLevyRequest{
			BusinessType: domain.BusinessUMKM, GrossIncome: d("100000000"),
		}},
	}
}

func TestCalculationEngine_RepeatableResults(t *testing.T) {
	engine := NewCalculationEngine()
	fresh := schemeComputations()

	for i, c := range schemeComputations() {
		t.Run(c.Name, func(t *testing.T) {
			first := engine.Calculate(c)
			second := engine.Calculate(c)
			require.False(t, first.Failed(), first.Error)
			assert.Equal(t, first, second, "same input should give the same outcome")
			assert.Equal(t, fresh[i], c, "input should not be modified")
		})
	}
}

func TestCalculationEngine_ConcurrentGrossUp(t *testing.T) {
	engine := NewCalculationEngine()
	comps := schemeComputations()[:2]
	want := []domain.Outcome{engine.Calculate(comps[0]), engine.Calculate(comps[1])}

	const workers = 16
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				for j, c := range schemeComputations()[:2] {
					got := engine.Calculate(c)
					assert.Equal(t, want[j], got, "concurrent %s calculation", c.Name)
				}
			}
		}()
	}
	wg.Wait()
}

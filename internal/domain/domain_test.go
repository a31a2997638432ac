package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassification_Formats(t *testing.T) {
	tests := []struct {
		c    Classification
		code string
		str  string
	}{
		{Classification{Status: Unmarried, Dependents: 0}, "TK0", "TK/0"},
		{Classification{Status: Married, Dependents: 2}, "K2", "K/2"},
		{Classification{Status: MarriedCombinedIncome, Dependents: 3}, "KI3", "K/I/3"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.c.Code())
			assert.Equal(t, tt.str, tt.c.String())
		})
	}
	assert.Equal(t, "K/I/1 - Married, combined spouse income, 1 dependents",
		Classification{Status: MarriedCombinedIncome, Dependents: 1}.Description())
}

func TestIncomeComponents(t *testing.T) {
	ic := IncomeComponents{
		Salary:            decimal.NewFromInt(8_000_000),
		TaxAllowance:      decimal.NewFromInt(150_000),
		OtherAllowances:   decimal.NewFromInt(500_000),
		Honorarium:        decimal.NewFromInt(250_000),
		InsurancePremiums: decimal.NewFromInt(100_000),
		Bonus:             decimal.NewFromInt(1_000_000),
	}
	assert.Len(t, ic.Fields(), 7)
	assert.True(t, decimal.NewFromInt(9_850_000).Equal(ic.Base()))
	assert.True(t, decimal.NewFromInt(10_000_000).Equal(ic.Gross()))
	assert.True(t, IncomeComponents{}.Gross().IsZero())
}

func TestRateBand_Contains(t *testing.T) {
	band := RateBand{Lower: decimal.NewFromInt(5_400_001), Upper: decimal.NewFromInt(5_650_000)}
	assert.False(t, band.Contains(decimal.NewFromInt(5_400_000)))
	assert.True(t, band.Contains(decimal.NewFromInt(5_400_001)))
	assert.True(t, band.Contains(decimal.NewFromInt(5_650_000)))
	assert.False(t, band.Contains(decimal.NewFromInt(5_650_001)))

	top := RateBand{Lower: decimal.NewFromInt(1_400_000_001), Unbounded: true}
	assert.True(t, top.Contains(decimal.NewFromInt(9_000_000_000)))
}

func TestScheme_Title(t *testing.T) {
	for _, s := range AllSchemes {
		assert.NotEqual(t, string(s), s.Title(), s)
	}
	assert.Equal(t, "PPh 23 Withholding", SchemeWithholding.Title())
	assert.Equal(t, "custom", Scheme("custom").Title())
}

func TestBatchResult_FailedCount(t *testing.T) {
	br := &BatchResult{Outcomes: []Outcome{
		{Name: "a"},
		{Name: "b", Error: "rejected"},
		{Name: "c", Error: "rejected"},
	}}
	assert.Equal(t, 2, br.FailedCount())
	assert.False(t, br.Outcomes[0].Failed())
}

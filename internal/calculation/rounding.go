package calculation

import "github.com/shopspring/decimal"

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// roundHalfUp rounds to the nearest rupiah with ties going toward positive infinity,
// so -2.5 becomes -2. decimal.Round would send it to -3.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

// floorToThousand truncates down to a multiple of 1,000
func floorToThousand(d decimal.Decimal) decimal.Decimal {
	return d.Div(TaxableIncomeGranularity).Floor().Mul(TaxableIncomeGranularity)
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred)
}

package domain

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// NamedAmount is a labelled monetary figure
type NamedAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// IncomeComponents is the taxable base breakdown for one period (a month or a year)
type IncomeComponents struct {
	Salary            decimal.Decimal `yaml:"salary" json:"salary"` // salary or pension
	TaxAllowance      decimal.Decimal `yaml:"tax_allowance" json:"tax_allowance"`
	OtherAllowances   decimal.Decimal `yaml:"other_allowances" json:"other_allowances"`
	Honorarium        decimal.Decimal `yaml:"honorarium" json:"honorarium"`
	InsurancePremiums decimal.Decimal `yaml:"insurance_premiums" json:"insurance_premiums"` // paid by the employer
	InKindBenefits    decimal.Decimal `yaml:"in_kind_benefits" json:"in_kind_benefits"`
	Bonus             decimal.Decimal `yaml:"bonus" json:"bonus"`
}

// Fields returns every component with its field name, tax allowance included
func (ic IncomeComponents) Fields() []NamedAmount {
	return []NamedAmount{
		{Name: "salary", Amount: ic.Salary},
		{Name: "tax_allowance", Amount: ic.TaxAllowance},
		{Name: "other_allowances", Amount: ic.OtherAllowances},
		{Name: "honorarium", Amount: ic.Honorarium},
		{Name: "insurance_premiums", Amount: ic.InsurancePremiums},
		{Name: "in_kind_benefits", Amount: ic.InKindBenefits},
		{Name: "bonus", Amount: ic.Bonus},
	}
}

// Base sums the six components that exclude the tax allowance
func (ic IncomeComponents) Base() decimal.Decimal {
	base := lo.Filter(ic.Fields(), func(f NamedAmount, _ int) bool {
		return f.Name != "tax_allowance"
	})
	return lo.Reduce(base, func(acc decimal.Decimal, f NamedAmount, _ int) decimal.Decimal {
		return acc.Add(f.Amount)
	}, decimal.Zero)
}

// Gross is Base plus the tax allowance
func (ic IncomeComponents) Gross() decimal.Decimal {
	return ic.Base().Add(ic.TaxAllowance)
}

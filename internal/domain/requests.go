package domain

import (
	"github.com/shopspring/decimal"
)

// MonthlyRequest is the input for monthly TER withholding
type MonthlyRequest struct {
	EmploymentStatus EmploymentStatus `yaml:"employment_status" json:"employment_status"`
	Classification   string           `yaml:"classification" json:"classification"`       // e.g. "TK/0"
	Method           Method           `yaml:"method" json:"method"`
	Income           IncomeComponents `yaml:"income" json:"income"`
}

// AnnualRequest is the input for the annual (final-period) reconciliation
type AnnualRequest struct {
	EmploymentStatus     EmploymentStatus `yaml:"employment_status" json:"employment_status"`
	MaritalStatus        MaritalStatus    `yaml:"marital_status" json:"marital_status"`
	Dependents           int              `yaml:"dependents" json:"dependents"`
	Method               Method           `yaml:"method" json:"method"`
	Income               IncomeComponents `yaml:"income" json:"income"`
	PensionContributions decimal.Decimal  `yaml:"pension_contributions" json:"pension_contributions"`
	Zakat                decimal.Decimal  `yaml:"zakat" json:"zakat"` // mandatory religious contributions
	TaxWithheldPrior     decimal.Decimal  `yaml:"tax_withheld_prior" json:"tax_withheld_prior"`
}

// OtherDeductions sums the deductions other than the occupational expense
func (r AnnualRequest) OtherDeductions() decimal.Decimal {
	return r.PensionContributions.Add(r.Zakat)
}

// GoodsTaxRequest is the input for PPh 22
type GoodsTaxRequest struct {
	GoodsType        string           `yaml:"goods_type" json:"goods_type"`
	TransactionValue decimal.Decimal  `yaml:"transaction_value" json:"transaction_value"`
	Rate             *decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"` // percent; default by goods type
}

// WithholdingRequest is the input for PPh 23
type WithholdingRequest struct {
	IncomeType   string           `yaml:"income_type" json:"income_type"`
	Amount       decimal.Decimal  `yaml:"amount" json:"amount"`
	Rate         *decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"`
	WithoutTaxID bool             `yaml:"without_tax_id" json:"without_tax_id"` // payee has no NPWP
}

// FinalTaxRequest is the input for PPh 4(2)
type FinalTaxRequest struct {
	IncomeType string           `yaml:"income_type" json:"income_type"`
	Amount     decimal.Decimal  `yaml:"amount" json:"amount"`
	Rate       *decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"`
}

// VATRequest is the input for PPN. TransactionValue includes the tax.
type VATRequest struct {
	TransactionType  string           `yaml:"transaction_type" json:"transaction_type"`
	TransactionValue decimal.Decimal  `yaml:"transaction_value" json:"transaction_value"`
	Rate             *decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"`
}

// BusinessType distinguishes small businesses eligible for the unified levy
type BusinessType string

const (
	BusinessUMKM  BusinessType = "umkm"
	BusinessOther BusinessType = "other"
)

// UnifiedLevyRequest is the input for the simplified-business levy
type UnifiedLevyRequest struct {
	BusinessType BusinessType    `yaml:"business_type" json:"business_type"`
	GrossIncome  decimal.Decimal `yaml:"gross_income" json:"gross_income"`
	Deductions   decimal.Decimal `yaml:"deductions" json:"deductions"`
}

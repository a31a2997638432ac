package domain

import (
	"github.com/shopspring/decimal"
)

// GrossUpInfo reports how the gross-up iteration ended. Converged is false when the
// iteration cap was reached; the allowance is then the last estimate.
type GrossUpInfo struct {
	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`
}

// MonthlyResult is the outcome of a monthly TER computation
type MonthlyResult struct {
	EmploymentStatus EmploymentStatus `json:"employment_status"`
	Classification   string          `json:"classification"`
	Category         MonthlyCategory `json:"category"`
	Method           Method          `json:"method"`
	BaseIncome       decimal.Decimal `json:"base_income"`
	TaxAllowance     decimal.Decimal `json:"tax_allowance"`
	Gross            decimal.Decimal `json:"gross"`
	Rate             decimal.Decimal `json:"rate"` // fraction
	BandMatched      bool            `json:"band_matched"`
	Tax              decimal.Decimal `json:"tax"`
	GrossUp          *GrossUpInfo    `json:"gross_up,omitempty"`
}

// LayerAmount is the contribution of one progressive layer
type LayerAmount struct {
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
	Tax    decimal.Decimal `json:"tax"`
}

// Settlement is the direction of the final-period settlement
type Settlement string

const (
	// SettlementUnderpaid means additional tax is withheld in the final period
	SettlementUnderpaid Settlement = "underpaid"
	// SettlementOverpaid means the taxpayer is owed a refund
	SettlementOverpaid Settlement = "overpaid"
)

// AnnualResult is the outcome of the annual reconciliation
type AnnualResult struct {
	EmploymentStatus      EmploymentStatus `json:"employment_status"`
	Classification        string           `json:"classification"`
	Method                Method           `json:"method"`
	BaseIncome            decimal.Decimal  `json:"base_income"`
	TaxAllowance          decimal.Decimal  `json:"tax_allowance"`
	Gross                 decimal.Decimal  `json:"gross"`
	OccupationalDeduction decimal.Decimal  `json:"occupational_deduction"`
	OtherDeductions       decimal.Decimal  `json:"other_deductions"`
	TotalDeductions       decimal.Decimal  `json:"total_deductions"`
	Net                   decimal.Decimal  `json:"net"`
	AnnualThreshold       decimal.Decimal  `json:"annual_threshold"`
	TaxableIncome         decimal.Decimal  `json:"taxable_income"`
	AnnualTax             decimal.Decimal  `json:"annual_tax"`
	Layers                []LayerAmount    `json:"layers"`
	TaxWithheldPrior      decimal.Decimal  `json:"tax_withheld_prior"`
	FinalPeriodTax        decimal.Decimal  `json:"final_period_tax"`
	Settlement            Settlement       `json:"settlement"`
	GrossUp               *GrossUpInfo     `json:"gross_up,omitempty"`
}

// GoodsTaxResult is the outcome of PPh 22
type GoodsTaxResult struct {
	GoodsType        string          `json:"goods_type"`
	TransactionValue decimal.Decimal `json:"transaction_value"`
	Rate             decimal.Decimal `json:"rate"` // percent
	Tax              decimal.Decimal `json:"tax"`
}

// WithholdingResult is the outcome of PPh 23
type WithholdingResult struct {
	IncomeType   string          `json:"income_type"`
	Amount       decimal.Decimal `json:"amount"`
	Rate         decimal.Decimal `json:"rate"`
	TaxIDPresent bool            `json:"tax_id_present"`
	BaseTax      decimal.Decimal `json:"base_tax"`
	Tax          decimal.Decimal `json:"tax"`
}

// FinalTaxResult is the outcome of PPh 4(2)
type FinalTaxResult struct {
	IncomeType string          `json:"income_type"`
	Amount     decimal.Decimal `json:"amount"`
	Rate       decimal.Decimal `json:"rate"`
	Tax        decimal.Decimal `json:"tax"`
}

// VATResult is the outcome of PPN
type VATResult struct {
	TransactionType  string          `json:"transaction_type"`
	TransactionValue decimal.Decimal `json:"transaction_value"`
	Rate             decimal.Decimal `json:"rate"`
	TaxBase          decimal.Decimal `json:"tax_base"` // DPP
	Tax              decimal.Decimal `json:"tax"`
}

// LevyStatus explains whether the unified levy applied
type LevyStatus string

const (
	LevyEligible      LevyStatus = "eligible"
	LevyIneligible    LevyStatus = "ineligible"
	LevyNotApplicable LevyStatus = "not_applicable"
)

// Message returns the explanation shown next to the status
func (s LevyStatus) Message() string {
	switch s {
	case LevyEligible:
		return "Eligible for the unified levy (UMKM)"
	case LevyIneligible:
		return "Not eligible: net income above 500,000,000, use the progressive method"
	case LevyNotApplicable:
		return "Not a small business: use the progressive method (PPh 17)"
	default:
		return string(s)
	}
}

// UnifiedLevyResult is the outcome of the simplified-business levy
type UnifiedLevyResult struct {
	BusinessType BusinessType    `json:"business_type"`
	GrossIncome  decimal.Decimal `json:"gross_income"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetIncome    decimal.Decimal `json:"net_income"`
	Rate         decimal.Decimal `json:"rate"`
	Tax          decimal.Decimal `json:"tax"`
	Status       LevyStatus      `json:"status"`
}

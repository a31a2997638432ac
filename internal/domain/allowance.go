package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaritalStatus is the marital component of a PTKP classification
type MaritalStatus string

const (
	Unmarried             MaritalStatus = "TK"
	Married               MaritalStatus = "K"
	MarriedCombinedIncome MaritalStatus = "KI"
)

// MonthlyCategory selects the TER table used by the monthly method
type MonthlyCategory string

const (
	CategoryA MonthlyCategory = "A"
	CategoryB MonthlyCategory = "B"
	CategoryC MonthlyCategory = "C"
)

// MaxDependents is the highest dependent count recognised by the PTKP table
const MaxDependents = 3

// Classification combines marital status and number of dependents
type Classification struct {
	Status     MaritalStatus `yaml:"status" json:"status"`
	Dependents int           `yaml:"dependents" json:"dependents"`
}

// Code returns the compact code, e.g. "TK0" or "KI3"
func (c Classification) Code() string {
	return fmt.Sprintf("%s%d", c.Status, c.Dependents)
}

// String returns the conventional slashed form, e.g. "TK/0" or "K/I/3"
func (c Classification) String() string {
	if c.Status == MarriedCombinedIncome {
		return fmt.Sprintf("K/I/%d", c.Dependents)
	}
	return fmt.Sprintf("%s/%d", c.Status, c.Dependents)
}

// Description returns a label suitable for option lists
func (c Classification) Description() string {
	var status string
	switch c.Status {
	case Unmarried:
		status = "Unmarried"
	case Married:
		status = "Married"
	case MarriedCombinedIncome:
		status = "Married, combined spouse income"
	default:
		status = string(c.Status)
	}
	return fmt.Sprintf("%s - %s, %d dependents", c.String(), status, c.Dependents)
}

// Allowance is a resolved PTKP classification
type Allowance struct {
	Classification  Classification  `json:"classification"`
	AnnualThreshold decimal.Decimal `json:"annual_threshold"`
	Category        MonthlyCategory `json:"category"`
}

// EmploymentStatus selects the occupational-expense deduction ceiling
type EmploymentStatus string

const (
	PermanentEmployee EmploymentStatus = "permanent"
	Pensioner         EmploymentStatus = "pensioner"
)

// Method selects how the tax allowance is determined
type Method string

const (
	// MethodGross uses the tax allowance supplied by the caller
	MethodGross Method = "gross"
	// MethodGrossUp solves for an allowance that exactly covers the tax
	MethodGrossUp Method = "gross-up"
)

package domain

import (
	"github.com/shopspring/decimal"
)

// RegulatoryMetadata describes the regulatory period the compiled-in tables belong to
type RegulatoryMetadata struct {
	Period      string `yaml:"period" json:"period"`
	Description string `yaml:"description" json:"description"`
}

// RateBand is one row of an effective-rate (TER) table. Both bounds are inclusive;
// the top band of a table is Unbounded and its Upper is ignored.
type RateBand struct {
	Lower     decimal.Decimal `yaml:"lower" json:"lower"`
	Upper     decimal.Decimal `yaml:"upper" json:"upper"`
	Unbounded bool            `yaml:"unbounded,omitempty" json:"unbounded,omitempty"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"` // fraction, e.g. 0.0025
}

// Contains reports whether amount falls inside the band
func (b RateBand) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(b.Lower) {
		return false
	}
	return b.Unbounded || amount.LessThanOrEqual(b.Upper)
}

// RateTable is an ordered, immutable sequence of bands keyed by category
type RateTable struct {
	Key   string     `yaml:"key" json:"key"`
	Bands []RateBand `yaml:"bands" json:"bands"`
}

// ProgressiveLayer is one layer of the annual progressive scheme. Limit is cumulative:
// the layer covers taxable income between the previous layer's Limit and its own.
type ProgressiveLayer struct {
	Limit     decimal.Decimal `yaml:"limit" json:"limit"`
	Unbounded bool            `yaml:"unbounded,omitempty" json:"unbounded,omitempty"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// FlatRate is a default percentage for one transaction or income type
type FlatRate struct {
	Type        string          `yaml:"type" json:"type"`
	Description string          `yaml:"description" json:"description"`
	Percent     decimal.Decimal `yaml:"percent" json:"percent"`
}

// Scheme identifies one of the supported tax computations
type Scheme string

const (
	SchemeMonthly     Scheme = "monthly"
	SchemeAnnual      Scheme = "annual"
	SchemeGoods       Scheme = "goods"
	SchemeWithholding Scheme = "withholding"
	SchemeFinal       Scheme = "final"
	SchemeVAT         Scheme = "vat"
	SchemeUnifiedLevy Scheme = "levy"
)

// AllSchemes lists schemes in display order
var AllSchemes = []Scheme{
	SchemeMonthly,
	SchemeAnnual,
	SchemeGoods,
	SchemeWithholding,
	SchemeFinal,
	SchemeVAT,
	SchemeUnifiedLevy,
}

// Title returns a human-readable scheme name
func (s Scheme) Title() string {
	switch s {
	case SchemeMonthly:
		return "PPh 21 Monthly (TER)"
	case SchemeAnnual:
		return "PPh 21 Annual Reconciliation"
	case SchemeGoods:
		return "PPh 22 Goods Transaction"
	case SchemeWithholding:
		return "PPh 23 Withholding"
	case SchemeFinal:
		return "PPh 4(2) Final"
	case SchemeVAT:
		return "PPN Value-Added Tax"
	case SchemeUnifiedLevy:
		return "PPh Unified Levy (UMKM)"
	default:
		return string(s)
	}
}

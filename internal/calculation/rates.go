package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
)

// RATE TABLE ASSUMPTIONS:
//
// 1. TER tables: effective monthly rates for PPh 21 categories A, B and C
//    (PP 58/2023, PMK 168/2023). Both band bounds are inclusive.
//
// 2. Category B, 16% row: the lower bound reads 411,000,001 while the previous row ends
//    at 41,100,000. Kept as published in the source tables until confirmed against the
//    regulation. ValidateRateTable reports it and the engine warns when constructed.
//
// 3. Progressive layers: PPh 17 as amended by UU HPP (5/15/25/30/35%).
//
// 4. Flat-rate tables only supply defaults. A request may override the rate.

// Metadata describes the regulatory period of the compiled-in tables
var Metadata = domain.RegulatoryMetadata{
	Period:      "2024",
	Description: "PPh 21 TER (PMK 168/2023), PPh 17 layers (UU HPP), PPh 22/23/4(2), PPN 11%",
}

const unbounded = -1

type terRow struct {
	lower int64
	upper int64
	rate  float64
}

var terRowsA = []terRow{
	{0, 5400000, 0.0},
	{5400001, 5650000, 0.0025},
	{5650001, 5950000, 0.005},
	{5950001, 6300000, 0.0075},
	{6300001, 6750000, 0.01},
	{6750001, 7500000, 0.0125},
	{7500001, 8550000, 0.015},
	{8550001, 9650000, 0.0175},
	{9650001, 10050000, 0.02},
	{10050001, 10350000, 0.0225},
	{10350001, 10700000, 0.025},
	{10700001, 11050000, 0.03},
	{11050001, 11600000, 0.035},
	{11600001, 12500000, 0.04},
	{12500001, 13750000, 0.05},
	{13750001, 15100000, 0.06},
	{15100001, 16950000, 0.07},
	{16950001, 19750000, 0.08},
	{19750001, 24150000, 0.09},
	{24150001, 26450000, 0.1},
	{26450001, 28000000, 0.11},
	{28000001, 30050000, 0.12},
	{30050001, 32400000, 0.13},
	{32400001, 35400000, 0.14},
	{35400001, 39100000, 0.15},
	{39100001, 43850000, 0.16},
	{43850001, 47800000, 0.17},
	{47800001, 51400000, 0.18},
	{51400001, 56300000, 0.19},
	{56300001, 62200000, 0.2},
	{62200001, 68600000, 0.21},
	{68600001, 77500000, 0.22},
	{77500001, 89000000, 0.23},
	{89000001, 103000000, 0.24},
	{103000001, 125000000, 0.25},
	{125000001, 157000000, 0.26},
	{157000001, 206000000, 0.27},
	{206000001, 337000000, 0.28},
	{337000001, 454000000, 0.29},
	{454000001, 550000000, 0.3},
	{550000001, 695000000, 0.31},
	{695000001, 910000000, 0.32},
	{910000001, 1400000000, 0.33},
	{1400000001, unbounded, 0.34},
}

var terRowsB = []terRow{
	{0, 6200000, 0.0},
	{6200001, 6500000, 0.0025},
	{6500001, 6850000, 0.005},
	{6850001, 7300000, 0.0075},
	{7300001, 9200000, 0.01},
	{9200001, 10750000, 0.015},
	{10750001, 11250000, 0.02},
	{11250001, 11600000, 0.025},
	{11600001, 12600000, 0.03},
	{12600001, 13600000, 0.04},
	{13600001, 14950000, 0.05},
	{14950001, 16400000, 0.06},
	{16400001, 18450000, 0.07},
	{18450001, 21850000, 0.08},
	{21850001, 26000000, 0.09},
	{26000001, 27700000, 0.1},
	{27700001, 29350000, 0.11},
	{29350001, 31450000, 0.12},
	{31450001, 33950000, 0.13},
	{33950001, 37100000, 0.14},
	{37100001, 41100000, 0.15},
	{411000001, 45800000, 0.16},
	{45800001, 49500000, 0.17},
	{49500001, 53800000, 0.18},
	{53800001, 58500000, 0.19},
	{58500001, 64000000, 0.2},
	{64000001, 71000000, 0.21},
	{71000001, 80000000, 0.22},
	{80000001, 93000000, 0.23},
	{93000001, 109000000, 0.24},
	{109000001, 129000000, 0.25},
	{129000001, 163000000, 0.26},
	{163000001, 211000000, 0.27},
	{211000001, 374000000, 0.28},
	{374000001, 459000000, 0.29},
	{459000001, 555000000, 0.3},
	{555000001, 704000000, 0.31},
	{704000001, 957000000, 0.32},
	{957000001, 1405000000, 0.33},
	{1405000001, unbounded, 0.34},
}

var terRowsC = []terRow{
	{0, 6600000, 0.0},
	{6600001, 6950000, 0.0025},
	{6950001, 7350000, 0.005},
	{7350001, 7800000, 0.0075},
	{7800001, 8850000, 0.01},
	{8850001, 9800000, 0.0125},
	{9800001, 10950000, 0.015},
	{10950001, 11200000, 0.0175},
	{11200001, 12050000, 0.02},
	{12050001, 12950000, 0.03},
	{12950001, 14150000, 0.04},
	{14150001, 15550000, 0.05},
	{15550001, 17050000, 0.06},
	{17050001, 19500000, 0.07},
	{19500001, 22700000, 0.08},
	{22700001, 26600000, 0.09},
	{26600001, 28100000, 0.1},
	{28100001, 30100000, 0.11},
	{30100001, 32600000, 0.12},
	{32600001, 35400000, 0.13},
	{35400001, 38900000, 0.14},
	{38900001, 43000000, 0.15},
	{43000001, 47400000, 0.16},
	{47400001, 51200000, 0.17},
	{51200001, 55800000, 0.18},
	{55800001, 60400000, 0.19},
	{60400001, 66700000, 0.2},
	{66700001, 74500000, 0.21},
	{74500001, 83200000, 0.22},
	{83200001, 95600000, 0.23},
	{95600001, 110000000, 0.24},
	{110000001, 134000000, 0.25},
	{134000001, 169000000, 0.26},
	{169000001, 221000000, 0.27},
	{221000001, 390000000, 0.28},
	{390000001, 463000000, 0.29},
	{463000001, 561000000, 0.3},
	{561000001, 709000000, 0.31},
	{709000001, 965000000, 0.32},
	{965000001, 1419000000, 0.33},
	{1419000001, unbounded, 0.34},
}

var (
	terTableA = buildTERTable("A", terRowsA)
	terTableB = buildTERTable("B", terRowsB)
	terTableC = buildTERTable("C", terRowsC)
)

func buildTERTable(key string, rows []terRow) domain.RateTable {
	bands := make([]domain.RateBand, 0, len(rows))
	for _, r := range rows {
		b := domain.RateBand{
			Lower: decimal.NewFromInt(r.lower),
			Rate:  decimal.NewFromFloat(r.rate),
		}
		if r.upper == unbounded {
			b.Unbounded = true
		} else {
			b.Upper = decimal.NewFromInt(r.upper)
		}
		bands = append(bands, b)
	}
	return domain.RateTable{Key: key, Bands: bands}
}

// TERTable returns a copy of the effective-rate table for a monthly category
func TERTable(category domain.MonthlyCategory) (domain.RateTable, bool) {
	var t domain.RateTable
	switch category {
	case domain.CategoryA:
		t = terTableA
	case domain.CategoryB:
		t = terTableB
	case domain.CategoryC:
		t = terTableC
	default:
		return domain.RateTable{}, false
	}
	return domain.RateTable{Key: t.Key, Bands: append([]domain.RateBand(nil), t.Bands...)}, true
}

var progressiveLayers = []domain.ProgressiveLayer{
	{Limit: decimal.NewFromInt(60_000_000), Rate: decimal.NewFromFloat(0.05)},
	{Limit: decimal.NewFromInt(250_000_000), Rate: decimal.NewFromFloat(0.15)},
	{Limit: decimal.NewFromInt(500_000_000), Rate: decimal.NewFromFloat(0.25)},
	{Limit: decimal.NewFromInt(5_000_000_000), Rate: decimal.NewFromFloat(0.30)},
	{Unbounded: true, Rate: decimal.NewFromFloat(0.35)},
}

// ProgressiveLayers returns a copy of the annual progressive layers
func ProgressiveLayers() []domain.ProgressiveLayer {
	return append([]domain.ProgressiveLayer(nil), progressiveLayers...)
}

// Annual reconciliation and levy constants
var (
	OccupationalDeductionRate    = decimal.NewFromFloat(0.05)
	OccupationalCeilingPermanent = decimal.NewFromInt(6_000_000)
	OccupationalCeilingPensioner = decimal.NewFromInt(2_400_000)
	TaxableIncomeGranularity     = decimal.NewFromInt(1000)
	UnifiedLevyIncomeCeiling     = decimal.NewFromInt(500_000_000)
	UnifiedLevyPercent           = decimal.NewFromFloat(0.5)
	WithoutTaxIDMultiplier       = decimal.NewFromInt(2)
)

func flat(typ, desc string, pct float64) domain.FlatRate {
	return domain.FlatRate{Type: typ, Description: desc, Percent: decimal.NewFromFloat(pct)}
}

var flatRates = map[domain.Scheme][]domain.FlatRate{
	domain.SchemeGoods: {
		flat("import", "Imported goods", 2.5),
		flat("luxury", "Luxury goods", 10),
		flat("non_luxury", "Non-luxury goods", 1.5),
		flat("mining", "Mining products", 1.5),
		flat("forestry", "Forestry products", 1.5),
		flat("fishery", "Fishery products", 1.5),
	},
	domain.SchemeWithholding: {
		flat("dividend", "Dividends", 15),
		flat("interest", "Interest", 15),
		flat("royalty", "Royalties", 15),
		flat("rent", "Rent and services", 10),
		flat("prize", "Prizes and awards", 25),
		flat("other_income", "Other income", 15),
	},
	domain.SchemeFinal: {
		flat("interest", "Deposit interest", 10),
		flat("prize", "Prizes", 25),
		flat("lottery", "Lottery winnings", 25),
		flat("share_transaction", "Share transactions", 0.1),
		flat("share_sale", "Founder share sales", 0.1),
	},
	domain.SchemeVAT: {
		flat("general", "General rate", 11),
		flat("facility", "Facility, zero-rated", 0),
		flat("sale", "Delivery of taxable goods or services", 11),
		flat("import", "Imported goods", 11),
		flat("offshore_goods", "Use of offshore intangible goods", 11),
		flat("offshore_services", "Use of offshore services", 11),
	},
}

// typeAliases maps the Indonesian type codes used on tax forms to the canonical types
var typeAliases = map[domain.Scheme]map[string]string{
	domain.SchemeGoods: {
		"impor":        "import",
		"mewah":        "luxury",
		"non_mewah":    "non_luxury",
		"pertambangan": "mining",
		"kehutanan":    "forestry",
		"perikanan":    "fishery",
	},
	domain.SchemeWithholding: {
		"dividen":          "dividend",
		"bunga":            "interest",
		"royalti":          "royalty",
		"sewa":             "rent",
		"hadiah":           "prize",
		"penghasilan_lain": "other_income",
	},
	domain.SchemeFinal: {
		"bunga":           "interest",
		"hadiah":          "prize",
		"undian":          "lottery",
		"transaksi_saham": "share_transaction",
		"penjualan_saham": "share_sale",
	},
	domain.SchemeVAT: {
		"umum":            "general",
		"fasilitas":       "facility",
		"penjualan":       "sale",
		"impor":           "import",
		"pemanfaatan":     "offshore_goods",
		"pemanfaatan_jkp": "offshore_services",
	},
}

// CanonicalType normalizes a rate type and resolves its Indonesian alias, if any
func CanonicalType(scheme domain.Scheme, typ string) string {
	t := strings.ToLower(strings.TrimSpace(typ))
	if canonical, ok := typeAliases[scheme][t]; ok {
		return canonical
	}
	return t
}

// RateTypes returns the default flat-rate table for a scheme in display order
func RateTypes(scheme domain.Scheme) []domain.FlatRate {
	return append([]domain.FlatRate(nil), flatRates[scheme]...)
}

// DefaultRate returns the default percentage for a transaction or income type
func DefaultRate(scheme domain.Scheme, typ string) (decimal.Decimal, bool) {
	typ = CanonicalType(scheme, typ)
	for _, r := range flatRates[scheme] {
		if r.Type == typ {
			return r.Percent, true
		}
	}
	return decimal.Zero, false
}

// TableAnomaly describes one integrity problem in a rate table
type TableAnomaly struct {
	Table string `json:"table"`
	Index int    `json:"index"`
	Issue string `json:"issue"`
}

func (a TableAnomaly) String() string {
	return fmt.Sprintf("table %s band %d: %s", a.Table, a.Index, a.Issue)
}

// ValidateRateTable checks that bands start at zero, are contiguous at unit
// granularity and end with an unbounded band. Every anomaly found is returned.
func ValidateRateTable(t domain.RateTable) []TableAnomaly {
	var anomalies []TableAnomaly
	add := func(i int, format string, args ...any) {
		anomalies = append(anomalies, TableAnomaly{Table: t.Key, Index: i, Issue: fmt.Sprintf(format, args...)})
	}
	if len(t.Bands) == 0 {
		add(-1, "table is empty")
		return anomalies
	}
	if !t.Bands[0].Lower.IsZero() {
		add(0, "first band starts at %s, not 0", t.Bands[0].Lower)
	}
	one := decimal.NewFromInt(1)
	for i, b := range t.Bands {
		last := i == len(t.Bands)-1
		if b.Unbounded && !last {
			add(i, "unbounded band is not the last band")
		}
		if last && !b.Unbounded {
			add(i, "last band is bounded at %s", b.Upper)
		}
		if !b.Unbounded && b.Lower.GreaterThan(b.Upper) {
			add(i, "lower bound %s exceeds upper bound %s", b.Lower, b.Upper)
		}
		if i > 0 {
			prev := t.Bands[i-1]
			if !prev.Unbounded && !b.Lower.Equal(prev.Upper.Add(one)) {
				add(i, "lower bound %s does not follow previous upper bound %s", b.Lower, prev.Upper)
			}
		}
	}
	return anomalies
}

// ValidateAllTables checks every compiled-in TER table
func ValidateAllTables() []TableAnomaly {
	var all []TableAnomaly
	for _, t := range []domain.RateTable{terTableA, terTableB, terTableC} {
		all = append(all, ValidateRateTable(t)...)
	}
	return all
}

package calculation

import (
	"testing"

	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTERTables_Shape(t *testing.T) {
	tests := []struct {
		category domain.MonthlyCategory
		bands    int
	}{
		{domain.CategoryA, 44},
		{domain.CategoryB, 40},
		{domain.CategoryC, 41},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			table, ok := TERTable(tt.category)
			require.True(t, ok)
			assert.Len(t, table.Bands, tt.bands)
			top := table.Bands[len(table.Bands)-1]
			assert.True(t, top.Unbounded)
			assert.True(t, d("0.34").Equal(top.Rate))
		})
	}

	_, ok := TERTable(domain.MonthlyCategory("D"))
	assert.False(t, ok)
}

func TestTERTable_ReturnsCopy(t *testing.T) {
	table, _ := TERTable(domain.CategoryA)
	table.Bands[0].Rate = decimal.NewFromInt(1)

	fresh, _ := TERTable(domain.CategoryA)
	assert.True(t, fresh.Bands[0].Rate.IsZero())
}

func TestValidateAllTables_ReportsCategoryBGap(t *testing.T) {
	anomalies := ValidateAllTables()
	require.Len(t, anomalies, 2)
	for _, a := range anomalies {
		assert.Equal(t, "B", a.Table)
		assert.Equal(t, 21, a.Index)
	}
	assert.Contains(t, anomalies[0].String(), "411000001")
}

func TestValidateRateTable(t *testing.T) {
	band := func(lo, hi int64, rate float64) domain.RateBand {
		return domain.RateBand{Lower: decimal.NewFromInt(lo), Upper: decimal.NewFromInt(hi), Rate: decimal.NewFromFloat(rate)}
	}
	top := domain.RateBand{Lower: decimal.NewFromInt(201), Unbounded: true, Rate: decimal.NewFromFloat(0.1)}

	t.Run("clean", func(t *testing.T) {
		table := domain.RateTable{Key: "T", Bands: []domain.RateBand{band(0, 100, 0), band(101, 200, 0.05), top}}
		assert.Empty(t, ValidateRateTable(table))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Len(t, ValidateRateTable(domain.RateTable{Key: "T"}), 1)
	})

	t.Run("bounded top and late start", func(t *testing.T) {
		table := domain.RateTable{Key: "T", Bands: []domain.RateBand{band(1, 100, 0), band(101, 200, 0.05)}}
		assert.Len(t, ValidateRateTable(table), 2)
	})

	t.Run("gap", func(t *testing.T) {
		table := domain.RateTable{Key: "T", Bands: []domain.RateBand{band(0, 100, 0), band(150, 200, 0.05), top}}
		anomalies := ValidateRateTable(table)
		require.Len(t, anomalies, 1)
		assert.Equal(t, 1, anomalies[0].Index)
	})
}

func TestDefaultRate(t *testing.T) {
	tests := []struct {
		scheme domain.Scheme
		typ    string
		want   string
	}{
		{domain.SchemeGoods, "import", "2.5"},
		{domain.SchemeGoods, "luxury", "10"},
		{domain.SchemeGoods, "fishery", "1.5"},
		{domain.SchemeWithholding, "dividend", "15"},
		{domain.SchemeWithholding, "rent", "10"},
		{domain.SchemeWithholding, "prize", "25"},
		{domain.SchemeFinal, "interest", "10"},
		{domain.SchemeFinal, "share_sale", "0.1"},
		{domain.SchemeVAT, "general", "11"},
		{domain.SchemeVAT, "facility", "0"},
		{domain.SchemeVAT, "offshore_services", "11"},
		{domain.SchemeGoods, "impor", "2.5"},
		{domain.SchemeGoods, "Mewah", "10"},
		{domain.SchemeWithholding, "dividen", "15"},
		{domain.SchemeWithholding, "royalti", "15"},
		{domain.SchemeWithholding, "bunga", "15"},
		{domain.SchemeFinal, "bunga", "10"},
		{domain.SchemeFinal, "undian", "25"},
		{domain.SchemeFinal, "penjualan_saham", "0.1"},
		{domain.SchemeVAT, "penjualan", "11"},
		{domain.SchemeVAT, "impor", "11"},
		{domain.SchemeVAT, "pemanfaatan", "11"},
		{domain.SchemeVAT, "pemanfaatan_jkp", "11"},
		{domain.SchemeVAT, "umum", "11"},
	}
	for _, tt := range tests {
		t.Run(string(tt.scheme)+"/"+tt.typ, func(t *testing.T) {
			rate, ok := DefaultRate(tt.scheme, tt.typ)
			require.True(t, ok)
			assert.True(t, d(tt.want).Equal(rate), "rate %s", rate)
		})
	}

	_, ok := DefaultRate(domain.SchemeGoods, "dividend")
	assert.False(t, ok)
	_, ok = DefaultRate(domain.SchemeMonthly, "general")
	assert.False(t, ok)
	_, ok = DefaultRate(domain.SchemeGoods, "undian")
	assert.False(t, ok, "aliases are scoped to their scheme")
}

func TestRateTypes(t *testing.T) {
	assert.Len(t, RateTypes(domain.SchemeGoods), 6)
	assert.Len(t, RateTypes(domain.SchemeWithholding), 6)
	assert.Len(t, RateTypes(domain.SchemeFinal), 5)
	assert.Len(t, RateTypes(domain.SchemeVAT), 6)
	assert.Empty(t, RateTypes(domain.SchemeAnnual))
}

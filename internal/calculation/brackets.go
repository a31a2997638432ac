package calculation

import (
	"github.com/rgehrsitz/pphgo/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// BandTax is the result of a single-band effective-rate lookup
type BandTax struct {
	Amount  decimal.Decimal // rounded amount used for the lookup
	Rate    decimal.Decimal
	Tax     decimal.Decimal
	Matched bool
}

// LayeredTax is the result of progressive apportionment
type LayeredTax struct {
	Taxable decimal.Decimal
	Total   decimal.Decimal
	Layers  []domain.LayerAmount
}

// LookupBand finds the band containing amount after rounding it to the rupiah.
// A negative amount or an empty table never matches.
func LookupBand(table domain.RateTable, amount decimal.Decimal) (domain.RateBand, bool) {
	amount = roundHalfUp(amount)
	if amount.IsNegative() {
		return domain.RateBand{}, false
	}
	return lo.Find(table.Bands, func(b domain.RateBand) bool {
		return b.Contains(amount)
	})
}

// TERTax applies the matched band's rate to the whole amount. This is an effective
// rate, not a marginal one. No match yields a zero rate and zero tax.
func TERTax(table domain.RateTable, amount decimal.Decimal) BandTax {
	rounded := roundHalfUp(amount)
	band, ok := LookupBand(table, rounded)
	if !ok {
		return BandTax{Amount: rounded, Rate: decimal.Zero, Tax: decimal.Zero}
	}
	return BandTax{
		Amount:  rounded,
		Rate:    band.Rate,
		Tax:     roundHalfUp(rounded.Mul(band.Rate)),
		Matched: true,
	}
}

// ApportionLayers splits taxable income across progressive layers. Each layer taxes
// only the slice between the previous limit and its own. Layers contributing no tax are
// left out of the breakdown. A negative input is treated as zero.
func ApportionLayers(layers []domain.ProgressiveLayer, taxable decimal.Decimal) LayeredTax {
	result := LayeredTax{Taxable: taxable, Total: decimal.Zero}
	remaining := decimal.Max(taxable, decimal.Zero)
	floor := decimal.Zero

	for _, layer := range layers {
		if !remaining.IsPositive() {
			break
		}
		inLayer := remaining
		if !layer.Unbounded {
			inLayer = decimal.Min(remaining, layer.Limit.Sub(floor))
		}
		tax := inLayer.Mul(layer.Rate)
		if tax.IsPositive() {
			result.Layers = append(result.Layers, domain.LayerAmount{
				Rate:   layer.Rate,
				Amount: inLayer,
				Tax:    tax,
			})
		}
		result.Total = result.Total.Add(tax)
		remaining = remaining.Sub(inLayer)
		if !layer.Unbounded {
			floor = layer.Limit
		}
	}
	return result
}

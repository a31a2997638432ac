package output

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// maxPrintable bounds the amounts that fit the int64 printer path
var maxPrintable = decimal.NewFromInt(math.MaxInt64)

// FormatNumber renders an amount rounded half up to the rupiah with Indonesian digit
// grouping, e.g. 1.000.000. Amounts beyond int64 are grouped on their digit string.
func FormatNumber(amount decimal.Decimal) string {
	rounded := amount.Add(half).Floor()
	if rounded.Abs().LessThanOrEqual(maxPrintable) {
		return idPrinter.Sprintf("%d", rounded.IntPart())
	}
	return groupDigits(rounded.StringFixed(0))
}

func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	b.WriteString(sign)
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatRupiah renders an amount as "Rp 1.000.000"
func FormatRupiah(amount decimal.Decimal) string {
	return "Rp " + FormatNumber(amount)
}

// FormatRate renders a fractional rate as a percentage, e.g. 0.0225 becomes "2.25%"
func FormatRate(fraction decimal.Decimal) string {
	return FormatPercent(fraction.Mul(hundred))
}

// FormatPercent renders a percentage value with trailing zeros trimmed, e.g. "2.5%"
func FormatPercent(percent decimal.Decimal) string {
	s := percent.StringFixed(4)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s + "%"
}

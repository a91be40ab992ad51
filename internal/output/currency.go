package output

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as whole Australian dollars with thousands
// separators, rounding half away from zero: 1234567.5 -> "$1,234,568".
func FormatCurrency(amount decimal.Decimal) string {
	whole := amount.Round(0)
	if whole.IsNegative() {
		return "-$" + humanize.Comma(whole.Neg().IntPart())
	}
	return "$" + humanize.Comma(whole.IntPart())
}

// FormatSignedCurrency is FormatCurrency with an explicit + for positive amounts
func FormatSignedCurrency(amount decimal.Decimal) string {
	if amount.Round(0).IsPositive() {
		return "+" + FormatCurrency(amount)
	}
	return FormatCurrency(amount)
}

// FormatPercentage formats a value that is already a percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fractional rate as a percentage: 0.0075 -> "0.75%"
func FormatRate(rate decimal.Decimal) string {
	return humanize.FtoaWithDigits(rate.Mul(decimal.NewFromInt(100)).InexactFloat64(), 4) + "%"
}

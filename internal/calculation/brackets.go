package calculation

import (
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ResolveBracket returns the bracket containing value. Brackets must be sorted
// ascending and contiguous; a value on a boundary belongs to the upper bracket.
func ResolveBracket(value decimal.Decimal, brackets []domain.Bracket) (domain.Bracket, bool) {
	for _, b := range brackets {
		if b.Contains(value) {
			return b, true
		}
	}
	return domain.Bracket{}, false
}

// ProgressiveAmount computes base + (value - min) * rate for the bracket holding
// value. Values outside every bracket yield zero.
func ProgressiveAmount(value decimal.Decimal, brackets []domain.Bracket) decimal.Decimal {
	b, ok := ResolveBracket(value, brackets)
	if !ok {
		return decimal.Zero
	}
	return b.Base.Add(value.Sub(b.Min).Mul(b.Rate))
}

// LookupTier returns the flat fee of the first tier whose threshold value is
// below. The fee is for the whole value, not additive across tiers.
func LookupTier(value decimal.Decimal, tiers []domain.FeeTier) decimal.Decimal {
	for _, t := range tiers {
		if t.Below == nil || value.LessThan(*t.Below) {
			return t.Fee
		}
	}
	return decimal.Zero
}

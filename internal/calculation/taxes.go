package calculation

import (
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
)

// DUTY AND SURCHARGE ASSUMPTIONS:
//
// 1. Foreign buyer duty surcharge is a flat percentage of the whole value.
//    Unknown state codes use the fallback rate (8%) rather than failing.
// 2. Standard transfer duty uses each state's progressive schedule. A state with
//    no schedule uses the fallback flat rate (4% of value).
// 3. Land tax surcharge applies the state's rate to the value above the state's
//    threshold. A zero threshold charges the full value. Unknown states pay none.

// StampDutyCalculator handles transfer duty and the foreign buyer surcharge
type StampDutyCalculator struct {
	States   map[domain.State]domain.StateRates
	Fallback domain.FallbackRates
}

// NewStampDutyCalculator creates a stamp duty calculator
func NewStampDutyCalculator(states map[domain.State]domain.StateRates, fallback domain.FallbackRates) *StampDutyCalculator {
	return &StampDutyCalculator{States: states, Fallback: fallback}
}

// CalculateSurcharge returns value * surcharge rate, and whether the fallback rate
// was used
func (sdc *StampDutyCalculator) CalculateSurcharge(state domain.State, value decimal.Decimal) (decimal.Decimal, bool) {
	rates, ok := sdc.States[state]
	if !ok {
		return value.Mul(sdc.Fallback.StampDutySurcharge), true
	}
	return value.Mul(rates.StampDutySurcharge), false
}

// CalculateStandardDuty returns progressive transfer duty, and whether the flat
// fallback was used
func (sdc *StampDutyCalculator) CalculateStandardDuty(state domain.State, value decimal.Decimal) (decimal.Decimal, bool) {
	rates, ok := sdc.States[state]
	if !ok || len(rates.TransferDuty) == 0 {
		return value.Mul(sdc.Fallback.StandardDuty), true
	}
	return ProgressiveAmount(value, rates.TransferDuty), false
}

// LandTaxCalculator handles the annual foreign owner land tax surcharge
type LandTaxCalculator struct {
	States map[domain.State]domain.StateRates
}

// NewLandTaxCalculator creates a land tax surcharge calculator
func NewLandTaxCalculator(states map[domain.State]domain.StateRates) *LandTaxCalculator {
	return &LandTaxCalculator{States: states}
}

// CalculateSurcharge returns rate * max(0, value - threshold)
func (ltc *LandTaxCalculator) CalculateSurcharge(state domain.State, value decimal.Decimal) decimal.Decimal {
	rates, ok := ltc.States[state]
	if !ok {
		return decimal.Zero
	}
	taxable := value.Sub(rates.LandTaxThreshold)
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return taxable.Mul(rates.LandTaxSurcharge)
}

package calculation

import (
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
)

// FIRBFeeCalculator computes the one-off FIRB application fee
type FIRBFeeCalculator struct {
	Fees domain.FIRBFees
}

// NewFIRBFeeCalculator creates a calculator over the given fee schedules
func NewFIRBFeeCalculator(fees domain.FIRBFees) *FIRBFeeCalculator {
	return &FIRBFeeCalculator{Fees: fees}
}

// Table selects the tier schedule for a descriptor. Vacant land takes priority,
// then new dwellings and first home buyers share the lower schedule; company and
// trust buyers use the company variant of whichever schedule applies.
func (fc *FIRBFeeCalculator) Table(d domain.PropertyDescriptor) []domain.FeeTier {
	var table domain.FIRBTable
	switch {
	case d.PropertyType == domain.PropertyVacantLand:
		table = fc.Fees.VacantLand
	case d.PropertyType == domain.PropertyNewDwelling || d.FirstHomeBuyer:
		table = fc.Fees.NewDwelling
	default:
		table = fc.Fees.Established
	}
	if d.EntityType.UsesCompanyRates() {
		return table.Company
	}
	return table.Individual
}

// Calculate returns the FIRB fee for the descriptor
func (fc *FIRBFeeCalculator) Calculate(d domain.PropertyDescriptor) decimal.Decimal {
	return LookupTier(d.PropertyValue, fc.Table(d))
}

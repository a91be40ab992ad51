package calculation

import (
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
)

// AncillaryCalculator handles the vacancy fee, the LMI estimate and the fixed
// schedule of purchase and holding costs
type AncillaryCalculator struct {
	Vacancy domain.VacancyRules
	LMI     domain.LMIRules
	Fees    domain.AncillaryFees
}

// NewAncillaryCalculator creates an ancillary cost calculator
func NewAncillaryCalculator(vacancy domain.VacancyRules, lmi domain.LMIRules, fees domain.AncillaryFees) *AncillaryCalculator {
	return &AncillaryCalculator{Vacancy: vacancy, LMI: lmi, Fees: fees}
}

// CalculateVacancyFee returns the annual vacancy fee and whether it is only a
// potential liability. Vacant land never attracts the fee; an occupied dwelling
// does not; an unstated intent includes the fee as contingent.
func (ac *AncillaryCalculator) CalculateVacancyFee(d domain.PropertyDescriptor) (decimal.Decimal, bool) {
	if !d.PropertyType.IsDwelling() {
		return decimal.Zero, false
	}
	switch d.Occupancy {
	case domain.OccupancyOccupied:
		return decimal.Zero, false
	case domain.OccupancyVacant:
		return ac.Vacancy.AnnualFee, false
	default:
		return ac.Vacancy.AnnualFee, true
	}
}

// CalculateLMI estimates lenders mortgage insurance as a flat share of the
// property value once the LVR exceeds the limit and the loan exceeds the
// minimum. This is an approximation, not lender pricing.
func (ac *AncillaryCalculator) CalculateLMI(d domain.PropertyDescriptor) decimal.Decimal {
	if !d.PropertyValue.IsPositive() {
		return decimal.Zero
	}
	loan := d.LoanAmount()
	if loan.LessThanOrEqual(d.PropertyValue.Mul(ac.LMI.MaxLVR)) {
		return decimal.Zero
	}
	if loan.LessThanOrEqual(ac.LMI.MinLoanAmount) {
		return decimal.Zero
	}
	return d.PropertyValue.Mul(ac.LMI.Rate)
}

package rates

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrMalformedTable is wrapped by every rate table validation failure
var ErrMalformedTable = errors.New("malformed rate table")

var one = decimal.NewFromInt(1)

// Validate checks the structural invariants of a rate table: every jurisdiction is
// present; bracket tables start at zero, are contiguous and strictly increasing,
// end unbounded and never step down; FIRB tiers ascend and end unbounded; rates
// are fractions in [0, 1].
func Validate(table *domain.RateTable) error {
	if table == nil {
		return fmt.Errorf("%w: table is nil", ErrMalformedTable)
	}
	if table.Metadata.FinancialYear == "" {
		return fmt.Errorf("%w: metadata.financial_year is required", ErrMalformedTable)
	}

	firb := map[string]domain.FIRBTable{
		"established":  table.FIRB.Established,
		"new_dwelling": table.FIRB.NewDwelling,
		"vacant_land":  table.FIRB.VacantLand,
	}
	for name, t := range firb {
		if err := validateTiers(t.Individual); err != nil {
			return fmt.Errorf("%w: firb.%s.individual: %v", ErrMalformedTable, name, err)
		}
		if err := validateTiers(t.Company); err != nil {
			return fmt.Errorf("%w: firb.%s.company: %v", ErrMalformedTable, name, err)
		}
	}

	// Fallback rates are for codes outside the eight jurisdictions; a table that
	// drops one is incomplete.
	for _, st := range domain.AllStates {
		if _, ok := table.States[st]; !ok {
			return fmt.Errorf("%w: states.%s is missing", ErrMalformedTable, st)
		}
	}

	for code, sr := range table.States {
		if err := validateFraction("stamp_duty_surcharge", sr.StampDutySurcharge); err != nil {
			return fmt.Errorf("%w: state %s: %v", ErrMalformedTable, code, err)
		}
		if err := validateFraction("land_tax_surcharge", sr.LandTaxSurcharge); err != nil {
			return fmt.Errorf("%w: state %s: %v", ErrMalformedTable, code, err)
		}
		if sr.LandTaxThreshold.IsNegative() {
			return fmt.Errorf("%w: state %s: land_tax_threshold cannot be negative", ErrMalformedTable, code)
		}
		if err := ValidateBrackets(sr.TransferDuty); err != nil {
			return fmt.Errorf("%w: state %s transfer_duty: %v", ErrMalformedTable, code, err)
		}
	}

	if err := validateFraction("fallback.stamp_duty_surcharge", table.Fallback.StampDutySurcharge); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	if err := validateFraction("fallback.standard_duty", table.Fallback.StandardDuty); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	if err := validateFraction("lmi.max_lvr", table.LMI.MaxLVR); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	if err := validateFraction("lmi.rate", table.LMI.Rate); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	if table.LMI.MinLoanAmount.IsNegative() || table.Vacancy.AnnualFee.IsNegative() {
		return fmt.Errorf("%w: lmi.min_loan_amount and vacancy.annual_fee cannot be negative", ErrMalformedTable)
	}

	a := table.Ancillary
	for name, v := range map[string]decimal.Decimal{
		"legal": a.Legal, "transfer_fee": a.TransferFee, "title_search": a.TitleSearch,
		"building_inspection": a.BuildingInspection, "conveyancing": a.Conveyancing,
		"loan_application": a.LoanApplication, "council_rates": a.CouncilRates,
		"water_rates": a.WaterRates, "insurance": a.Insurance,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%w: ancillary.%s cannot be negative", ErrMalformedTable, name)
		}
	}
	return nil
}

// ValidateBrackets checks a single progressive bracket table
func ValidateBrackets(brackets []domain.Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("no brackets")
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("first bracket must start at 0, starts at %s", brackets[0].Min.String())
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Base.IsNegative() {
			return fmt.Errorf("bracket %d: rate and base cannot be negative", i)
		}
		last := i == len(brackets)-1
		if last {
			if b.Max != nil {
				return fmt.Errorf("bracket %d: final bracket must be unbounded", i)
			}
			continue
		}
		if b.Max == nil {
			return fmt.Errorf("bracket %d: only the final bracket may be unbounded", i)
		}
		if !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("bracket %d: max %s must exceed min %s", i, b.Max.String(), b.Min.String())
		}
		next := brackets[i+1]
		if !next.Min.Equal(*b.Max) {
			return fmt.Errorf("bracket %d: gap or overlap between max %s and next min %s", i, b.Max.String(), next.Min.String())
		}
		end := b.Base.Add(b.Max.Sub(b.Min).Mul(b.Rate))
		if next.Base.LessThan(end) {
			return fmt.Errorf("bracket %d: amount steps down at %s (%s to %s)", i+1, next.Min.String(), end.String(), next.Base.String())
		}
	}
	return nil
}

func validateTiers(tiers []domain.FeeTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("no tiers")
	}
	for i, t := range tiers {
		if t.Fee.IsNegative() {
			return fmt.Errorf("tier %d: fee cannot be negative", i)
		}
		if i == len(tiers)-1 {
			if t.Below != nil {
				return fmt.Errorf("tier %d: final tier must be unbounded", i)
			}
			continue
		}
		if t.Below == nil {
			return fmt.Errorf("tier %d: only the final tier may be unbounded", i)
		}
		next := tiers[i+1]
		if next.Below != nil && !next.Below.GreaterThan(*t.Below) {
			return fmt.Errorf("tier %d: thresholds must ascend", i+1)
		}
		if next.Fee.LessThan(t.Fee) {
			return fmt.Errorf("tier %d: fee decreases", i+1)
		}
	}
	return nil
}

func validateFraction(name string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(one) {
		return fmt.Errorf("%s must be between 0 and 1, got %s", name, v.String())
	}
	return nil
}

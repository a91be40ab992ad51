package domain

import (
	"github.com/shopspring/decimal"
)

// RateTable contains every rate, threshold and fixed fee used by the fee engine
// for one financial year. It is loaded once and never mutated.
type RateTable struct {
	Metadata  RateMetadata         `yaml:"metadata" json:"metadata"`
	FIRB      FIRBFees             `yaml:"firb" json:"firb"`
	States    map[State]StateRates `yaml:"states" json:"states"`
	Fallback  FallbackRates        `yaml:"fallback" json:"fallback"`
	Vacancy   VacancyRules         `yaml:"vacancy" json:"vacancy"`
	LMI       LMIRules             `yaml:"lmi" json:"lmi"`
	Ancillary AncillaryFees        `yaml:"ancillary" json:"ancillary"`
}

// RateMetadata contains information about the rate data
type RateMetadata struct {
	FinancialYear string `yaml:"financial_year" json:"financial_year"`
	LastUpdated   string `yaml:"last_updated" json:"last_updated"`
	Description   string `yaml:"description" json:"description"`
}

// Bracket is one band of a progressive duty table. A nil Max is unbounded.
type Bracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
	Base decimal.Decimal  `yaml:"base" json:"base"`
}

// Contains reports whether min <= value < max
func (b Bracket) Contains(value decimal.Decimal) bool {
	if value.LessThan(b.Min) {
		return false
	}
	return b.Max == nil || value.LessThan(*b.Max)
}

// FeeTier is a flat fee charged for values strictly below Below. A nil Below is
// the open-ended top tier.
type FeeTier struct {
	Below *decimal.Decimal `yaml:"below,omitempty" json:"below,omitempty"`
	Fee   decimal.Decimal  `yaml:"fee" json:"fee"`
}

// FIRBTable holds the individual and company variants of one tier schedule
type FIRBTable struct {
	Individual []FeeTier `yaml:"individual" json:"individual"`
	Company    []FeeTier `yaml:"company" json:"company"`
}

// FIRBFees contains the application fee schedules by property category
type FIRBFees struct {
	Established FIRBTable `yaml:"established" json:"established"`
	NewDwelling FIRBTable `yaml:"new_dwelling" json:"new_dwelling"`
	VacantLand  FIRBTable `yaml:"vacant_land" json:"vacant_land"`
}

// StateRates contains jurisdiction-specific duty and land tax settings
type StateRates struct {
	Name               string          `yaml:"name" json:"name"`
	StampDutySurcharge decimal.Decimal `yaml:"stamp_duty_surcharge" json:"stamp_duty_surcharge"`
	LandTaxSurcharge   decimal.Decimal `yaml:"land_tax_surcharge" json:"land_tax_surcharge"`
	LandTaxThreshold   decimal.Decimal `yaml:"land_tax_threshold" json:"land_tax_threshold"`
	TransferDuty       []Bracket       `yaml:"transfer_duty" json:"transfer_duty"`
}

// FallbackRates apply when a state code is not in the table
type FallbackRates struct {
	StampDutySurcharge decimal.Decimal `yaml:"stamp_duty_surcharge" json:"stamp_duty_surcharge"`
	StandardDuty       decimal.Decimal `yaml:"standard_duty" json:"standard_duty"`
}

// VacancyRules contains the annual vacancy fee
type VacancyRules struct {
	AnnualFee decimal.Decimal `yaml:"annual_fee" json:"annual_fee"`
}

// LMIRules drive the simplified lenders mortgage insurance estimate
type LMIRules struct {
	MaxLVR        decimal.Decimal `yaml:"max_lvr" json:"max_lvr"`
	MinLoanAmount decimal.Decimal `yaml:"min_loan_amount" json:"min_loan_amount"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
}

// AncillaryFees is the fixed schedule of purchase and holding costs
type AncillaryFees struct {
	Legal              decimal.Decimal `yaml:"legal" json:"legal"`
	TransferFee        decimal.Decimal `yaml:"transfer_fee" json:"transfer_fee"`
	TitleSearch        decimal.Decimal `yaml:"title_search" json:"title_search"`
	BuildingInspection decimal.Decimal `yaml:"building_inspection" json:"building_inspection"`
	Conveyancing       decimal.Decimal `yaml:"conveyancing" json:"conveyancing"`
	LoanApplication    decimal.Decimal `yaml:"loan_application" json:"loan_application"`
	CouncilRates       decimal.Decimal `yaml:"council_rates" json:"council_rates"`
	WaterRates         decimal.Decimal `yaml:"water_rates" json:"water_rates"`
	Insurance          decimal.Decimal `yaml:"insurance" json:"insurance"`
}

// Clone returns a deep copy so callers can never alias shared tables
func (rt *RateTable) Clone() *RateTable {
	if rt == nil {
		return nil
	}
	out := *rt
	out.FIRB = FIRBFees{
		Established: rt.FIRB.Established.clone(),
		NewDwelling: rt.FIRB.NewDwelling.clone(),
		VacantLand:  rt.FIRB.VacantLand.clone(),
	}
	out.States = make(map[State]StateRates, len(rt.States))
	for code, sr := range rt.States {
		brackets := make([]Bracket, len(sr.TransferDuty))
		for i, b := range sr.TransferDuty {
			brackets[i] = b
			if b.Max != nil {
				m := *b.Max
				brackets[i].Max = &m
			}
		}
		sr.TransferDuty = brackets
		out.States[code] = sr
	}
	return &out
}

func (t FIRBTable) clone() FIRBTable {
	return FIRBTable{Individual: cloneTiers(t.Individual), Company: cloneTiers(t.Company)}
}

func cloneTiers(tiers []FeeTier) []FeeTier {
	out := make([]FeeTier, len(tiers))
	for i, t := range tiers {
		out[i] = t
		if t.Below != nil {
			b := *t.Below
			out[i].Below = &b
		}
	}
	return out
}

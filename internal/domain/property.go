package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidDescriptor is wrapped by every descriptor validation failure
var ErrInvalidDescriptor = errors.New("invalid property descriptor")

// State is an Australian state or territory code
type State string

const (
	StateNSW State = "NSW"
	StateVIC State = "VIC"
	StateQLD State = "QLD"
	StateSA  State = "SA"
	StateWA  State = "WA"
	StateTAS State = "TAS"
	StateACT State = "ACT"
	StateNT  State = "NT"
)

// AllStates lists the eight jurisdictions in display order
var AllStates = []State{StateNSW, StateVIC, StateQLD, StateSA, StateWA, StateTAS, StateACT, StateNT}

// ParseState normalises a state code. Unrecognised codes are returned upper-cased
// rather than rejected so the fee calculators can apply their fallback rates.
func ParseState(s string) State {
	return State(strings.ToUpper(strings.TrimSpace(s)))
}

// IsKnown reports whether the state is one of the eight jurisdictions
func (s State) IsKnown() bool {
	for _, st := range AllStates {
		if st == s {
			return true
		}
	}
	return false
}

// PropertyType categorises the property being purchased
type PropertyType string

const (
	PropertyEstablished PropertyType = "established"
	PropertyNewDwelling PropertyType = "newDwelling"
	PropertyVacantLand  PropertyType = "vacantLand"
)

// AllPropertyTypes lists property types in display order
var AllPropertyTypes = []PropertyType{PropertyEstablished, PropertyNewDwelling, PropertyVacantLand}

// ParsePropertyType accepts the canonical names plus the spellings used by web forms
func ParsePropertyType(s string) (PropertyType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	switch key {
	case "established", "establisheddwelling", "existing":
		return PropertyEstablished, nil
	case "new", "newdwelling", "offtheplan":
		return PropertyNewDwelling, nil
	case "vacant", "vacantland", "land":
		return PropertyVacantLand, nil
	}
	return "", fmt.Errorf("unknown property type %q", s)
}

// IsDwelling reports whether the property is a residential dwelling
func (p PropertyType) IsDwelling() bool {
	return p == PropertyEstablished || p == PropertyNewDwelling
}

// Label returns a human-readable name
func (p PropertyType) Label() string {
	switch p {
	case PropertyEstablished:
		return "Established dwelling"
	case PropertyNewDwelling:
		return "New dwelling"
	case PropertyVacantLand:
		return "Vacant land"
	default:
		return string(p)
	}
}

// EntityType identifies the purchasing entity
type EntityType string

const (
	EntityIndividual EntityType = "individual"
	EntityCompany    EntityType = "company"
	EntityTrust      EntityType = "trust"
)

// ParseEntityType parses an entity type case-insensitively
func ParseEntityType(s string) (EntityType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "individual", "person":
		return EntityIndividual, nil
	case "company", "corporation":
		return EntityCompany, nil
	case "trust", "trustee":
		return EntityTrust, nil
	}
	return "", fmt.Errorf("unknown entity type %q", s)
}

// UsesCompanyRates reports whether FIRB company fee tables apply
func (e EntityType) UsesCompanyRates() bool {
	return e == EntityCompany || e == EntityTrust
}

// Occupancy is the buyer's stated intent for the dwelling
type Occupancy string

const (
	OccupancyUnspecified Occupancy = ""
	OccupancyOccupied    Occupancy = "occupied"
	OccupancyVacant      Occupancy = "vacant"
)

// ParseOccupancy parses occupancy intent; empty input is unspecified
func ParseOccupancy(s string) (Occupancy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unspecified", "unknown":
		return OccupancyUnspecified, nil
	case "occupied", "rented", "owner_occupied", "live":
		return OccupancyOccupied, nil
	case "vacant", "empty":
		return OccupancyVacant, nil
	}
	return "", fmt.Errorf("unknown occupancy %q", s)
}

// PropertyDescriptor is the validated input to a fee calculation
type PropertyDescriptor struct {
	PropertyValue  decimal.Decimal `yaml:"property_value" json:"propertyValue"`
	PropertyType   PropertyType    `yaml:"property_type" json:"propertyType"`
	State          State           `yaml:"state" json:"state"`
	EntityType     EntityType      `yaml:"entity_type" json:"entityType"`
	FirstHomeBuyer bool            `yaml:"first_home_buyer" json:"firstHomeBuyer"`
	DepositPercent decimal.Decimal `yaml:"deposit_percent" json:"depositPercent"`
	Occupancy      Occupancy       `yaml:"occupancy,omitempty" json:"occupancy,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// Validate checks a descriptor built in code. Unknown states are allowed.
func (d PropertyDescriptor) Validate() error {
	if !d.PropertyValue.IsPositive() {
		return fmt.Errorf("%w: property value must be positive, got %s", ErrInvalidDescriptor, d.PropertyValue.String())
	}
	if d.DepositPercent.IsNegative() || d.DepositPercent.GreaterThan(hundred) {
		return fmt.Errorf("%w: deposit percent must be between 0 and 100, got %s", ErrInvalidDescriptor, d.DepositPercent.String())
	}
	switch d.PropertyType {
	case PropertyEstablished, PropertyNewDwelling, PropertyVacantLand:
	default:
		return fmt.Errorf("%w: unknown property type %q", ErrInvalidDescriptor, d.PropertyType)
	}
	switch d.EntityType {
	case EntityIndividual, EntityCompany, EntityTrust:
	default:
		return fmt.Errorf("%w: unknown entity type %q", ErrInvalidDescriptor, d.EntityType)
	}
	switch d.Occupancy {
	case OccupancyUnspecified, OccupancyOccupied, OccupancyVacant:
	default:
		return fmt.Errorf("%w: unknown occupancy %q", ErrInvalidDescriptor, d.Occupancy)
	}
	if d.State == "" {
		return fmt.Errorf("%w: state is required", ErrInvalidDescriptor)
	}
	return nil
}

// onePercent scales by multiplication; Div rounds to 16 places
var onePercent = decimal.New(1, -2)

// LoanAmount is the borrowing implied by the deposit
func (d PropertyDescriptor) LoanAmount() decimal.Decimal {
	share := hundred.Sub(d.DepositPercent).Mul(onePercent)
	if share.IsNegative() {
		return decimal.Zero
	}
	return d.PropertyValue.Mul(share)
}

// Key returns a canonical string identifying the descriptor
func (d PropertyDescriptor) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%t|%s|%s",
		d.PropertyValue.String(), d.PropertyType, d.State, d.EntityType,
		d.FirstHomeBuyer, d.DepositPercent.String(), d.Occupancy)
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
)

// RawDescriptor is a property descriptor as it arrives from forms, files and
// query strings, before any coercion
type RawDescriptor struct {
	PropertyValue  string `yaml:"property_value" json:"propertyValue"`
	PropertyType   string `yaml:"property_type" json:"propertyType"`
	State          string `yaml:"state" json:"state"`
	EntityType     string `yaml:"entity_type" json:"entityType"`
	FirstHomeBuyer string `yaml:"first_home_buyer" json:"firstHomeBuyer"`
	DepositPercent string `yaml:"deposit_percent" json:"depositPercent"`
	Occupancy      string `yaml:"occupancy" json:"occupancy"`
}

// FieldError reports the first invalid input field
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match domain.ErrInvalidDescriptor
func (e *FieldError) Unwrap() error {
	return domain.ErrInvalidDescriptor
}

// AsFieldError extracts a FieldError from err, if it carries one
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

var hundred = decimal.NewFromInt(100)

// ParseDescriptor coerces raw input into a validated descriptor. It stops at the
// first invalid field. Unknown state codes are kept so fallback rates apply.
func ParseDescriptor(raw RawDescriptor) (domain.PropertyDescriptor, error) {
	var d domain.PropertyDescriptor

	value, err := ParseAmount("property_value", raw.PropertyValue)
	if err != nil {
		return d, err
	}
	if !value.IsPositive() {
		return d, &FieldError{Field: "property_value", Value: raw.PropertyValue, Reason: "must be greater than zero"}
	}
	d.PropertyValue = value

	if strings.TrimSpace(raw.PropertyType) == "" {
		return d, &FieldError{Field: "property_type", Reason: "is required"}
	}
	if d.PropertyType, err = domain.ParsePropertyType(raw.PropertyType); err != nil {
		return d, &FieldError{Field: "property_type", Value: raw.PropertyType, Reason: "must be established, newDwelling or vacantLand"}
	}

	d.State = domain.ParseState(raw.State)
	if d.State == "" {
		return d, &FieldError{Field: "state", Reason: "is required"}
	}

	d.EntityType = domain.EntityIndividual
	if strings.TrimSpace(raw.EntityType) != "" {
		if d.EntityType, err = domain.ParseEntityType(raw.EntityType); err != nil {
			return d, &FieldError{Field: "entity_type", Value: raw.EntityType, Reason: "must be individual, company or trust"}
		}
	}

	if d.FirstHomeBuyer, err = ParseBool(raw.FirstHomeBuyer); err != nil {
		return d, &FieldError{Field: "first_home_buyer", Value: raw.FirstHomeBuyer, Reason: "must be yes or no"}
	}

	deposit, err := ParseAmount("deposit_percent", raw.DepositPercent)
	if err != nil {
		return d, err
	}
	if deposit.IsNegative() || deposit.GreaterThan(hundred) {
		return d, &FieldError{Field: "deposit_percent", Value: raw.DepositPercent, Reason: "must be between 0 and 100"}
	}
	d.DepositPercent = deposit

	if d.Occupancy, err = domain.ParseOccupancy(raw.Occupancy); err != nil {
		return d, &FieldError{Field: "occupancy", Value: raw.Occupancy, Reason: "must be occupied or vacant"}
	}

	return d, nil
}

// ToRaw renders a typed descriptor back into its raw form
func ToRaw(d domain.PropertyDescriptor) RawDescriptor {
	fhb := "no"
	if d.FirstHomeBuyer {
		fhb = "yes"
	}
	return RawDescriptor{
		PropertyValue:  d.PropertyValue.String(),
		PropertyType:   string(d.PropertyType),
		State:          string(d.State),
		EntityType:     string(d.EntityType),
		FirstHomeBuyer: fhb,
		DepositPercent: d.DepositPercent.String(),
		Occupancy:      string(d.Occupancy),
	}
}

// Amounts are bounded to a trillion dollars and twenty decimal places
const (
	maxAmountLength   = 40
	maxAmountExponent = 12
	minAmountExponent = -20
)

var maxAmount = decimal.New(1, maxAmountExponent)

var amountCleaner = strings.NewReplacer(",", "", "$", "", " ", "", "%", "")

// ParseAmount reads a money or percentage amount, ignoring currency symbols and
// separators. Errors are FieldErrors naming field.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	cleaned := amountCleaner.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, &FieldError{Field: field, Reason: "is required"}
	}
	if len(cleaned) > maxAmountLength {
		return decimal.Zero, &FieldError{Field: field, Value: s, Reason: "out of range"}
	}
	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &FieldError{Field: field, Value: s, Reason: "must be a number"}
	}
	// Checked before any comparison: aligning a huge exponent allocates a big.Int
	// with that many digits.
	if exp := v.Exponent(); exp > maxAmountExponent || exp < minAmountExponent {
		return decimal.Zero, &FieldError{Field: field, Value: s, Reason: "out of range"}
	}
	if v.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, &FieldError{Field: field, Value: s, Reason: "out of range"}
	}
	return v, nil
}

// ParseBool accepts yes/no, true/false, y/n and 1/0. Empty input is false.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no", "n", "false", "0":
		return false, nil
	case "yes", "y", "true", "1":
		return true, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

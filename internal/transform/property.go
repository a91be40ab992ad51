package transform

import (
	"fmt"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SetState moves the purchase to another jurisdiction
type SetState struct {
	State domain.State
}

func (t *SetState) Apply(base domain.PropertyDescriptor) (domain.PropertyDescriptor, error) {
	base.State = t.State
	return base, nil
}

func (t *SetState) Name() string { return "set_state" }

func (t *SetState) Description() string {
	return fmt.Sprintf("Purchase in %s", t.State)
}

func (t *SetState) Validate(domain.PropertyDescriptor) error {
	if t.State == "" {
		return NewTransformError(t.Name(), "validate", "state is required", nil)
	}
	return nil
}

// SetPropertyType changes the property category
type SetPropertyType struct {
	PropertyType domain.PropertyType
}

func (t *SetPropertyType) Apply(base domain.PropertyDescriptor) (domain.PropertyDescriptor, error) {
	base.PropertyType = t.PropertyType
	return base, nil
}

func (t *SetPropertyType) Name() string { return "set_property_type" }

func (t *SetPropertyType) Description() string {
	return fmt.Sprintf("Buy %s", t.PropertyType.Label())
}

func (t *SetPropertyType) Validate(domain.PropertyDescriptor) error {
	if _, err := domain.ParsePropertyType(string(t.PropertyType)); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid property type", err)
	}
	return nil
}

// SetEntityType changes who buys the property
type SetEntityType struct {
	EntityType domain.EntityType
}

func (t *SetEntityType) Apply(base domain.PropertyDescriptor) (domain.PropertyDescriptor, error) {
	base.EntityType = t.EntityType
	return base, nil
}

func (t *SetEntityType) Name() string { return "set_entity_type" }

func (t *SetEntityType) Description() string {
	return fmt.Sprintf("Purchase as %s", t.EntityType)
}

func (t *SetEntityType) Validate(domain.PropertyDescriptor) error {
	if _, err := domain.ParseEntityType(string(t.EntityType)); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid entity type", err)
	}
	return nil
}

// SetFirstHomeBuyer toggles first home buyer status
type SetFirstHomeBuyer struct {
	FirstHomeBuyer bool
}

func (t *SetFirstHomeBuyer) Apply(base domain.PropertyDescriptor) (domain.PropertyDescriptor, error) {
	base.FirstHomeBuyer = t.FirstHomeBuyer
	return base, nil
}

func (t *SetFirstHomeBuyer) Name() string { return "set_first_home_buyer" }

func (t *SetFirstHomeBuyer) Description() string {
	if t.FirstHomeBuyer {
		return "Buy as a first home buyer"
	}
	return "Buy as a non-first home buyer"
}

func (t *SetFirstHomeBuyer) Validate(domain.PropertyDescriptor) error { return nil }

// SetDeposit sets the deposit percentage
type SetDeposit struct {
	Percent decimal.Decimal
}

func (t *SetDeposit) Apply(base domain.PropertyDescriptor) (domain.PropertyDescriptor, error) {
	base.DepositPercent = t.Percent
	return base, nil
}

func (t *SetDeposit) Name() string { return "set_deposit" }

func (t *SetDeposit) Description() string {
	return fmt.Sprintf("Deposit %s%%", t.Percent.String())
}

func (t *SetDeposit) Validate(domain.PropertyDescriptor) error {
	if t.Percent.IsNegative() || t.Percent.GreaterThan(hundred) {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("deposit must be between 0 and 100, got %s", t.Percent), nil)
	}
	return nil
}

// SetValue replaces the property value
type SetValue struct {
	Value decimal.Decimal
}

func (t *SetValue) Apply(base domain.PropertyDescriptor) (domain.PropertyDescriptor, error) {
	base.PropertyValue = t.Value
	return base, nil
}

func (t *SetValue) Name() string { return "set_value" }

func (t *SetValue) Description() string {
	return fmt.Sprintf("Property value %s", t.Value.StringFixed(0))
}

func (t *SetValue) Validate(domain.PropertyDescriptor) error {
	if !t.Value.IsPositive() {
		return NewTransformError(t.Name(), "validate", "value must be positive", nil)
	}
	return nil
}

// ScaleValue multiplies the property value by a factor
type ScaleValue struct {
	Factor decimal.Decimal
}

func (t *ScaleValue) Apply(base domain.PropertyDescriptor) (domain.PropertyDescriptor, error) {
	base.PropertyValue = base.PropertyValue.Mul(t.Factor)
	return base, nil
}

func (t *ScaleValue) Name() string { return "scale_value" }

func (t *ScaleValue) Description() string {
	return fmt.Sprintf("Scale property value by %s", t.Factor.String())
}

func (t *ScaleValue) Validate(domain.PropertyDescriptor) error {
	if !t.Factor.IsPositive() {
		return NewTransformError(t.Name(), "validate", "factor must be positive", nil)
	}
	return nil
}

// SetOccupancy states whether the dwelling will be occupied
type SetOccupancy struct {
	Occupancy domain.Occupancy
}

func (t *SetOccupancy) Apply(base domain.PropertyDescriptor) (domain.PropertyDescriptor, error) {
	base.Occupancy = t.Occupancy
	return base, nil
}

func (t *SetOccupancy) Name() string { return "set_occupancy" }

func (t *SetOccupancy) Description() string {
	if t.Occupancy == domain.OccupancyUnspecified {
		return "Occupancy not stated"
	}
	return fmt.Sprintf("Dwelling kept %s", t.Occupancy)
}

func (t *SetOccupancy) Validate(domain.PropertyDescriptor) error {
	if _, err := domain.ParseOccupancy(string(t.Occupancy)); err != nil {
		return NewTransformError(t.Name(), "validate", "invalid occupancy", err)
	}
	return nil
}

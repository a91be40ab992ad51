package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (DescriptorTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_state", createSetState)
	registry.Register("set_property_type", createSetPropertyType)
	registry.Register("set_entity_type", createSetEntityType)
	registry.Register("set_first_home_buyer", createSetFirstHomeBuyer)
	registry.Register("set_deposit", createSetDeposit)
	registry.Register("set_value", createSetValue)
	registry.Register("scale_value", createScaleValue)
	registry.Register("set_occupancy", createSetOccupancy)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (DescriptorTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_state:state=VIC"
func (r *TransformRegistry) ParseTransformSpec(spec string) (DescriptorTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(s, "_", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createSetState(params map[string]string) (DescriptorTransform, error) {
	s, err := requireParam("set_state", params, "state")
	if err != nil {
		return nil, err
	}
	return &SetState{State: domain.ParseState(s)}, nil
}

func createSetPropertyType(params map[string]string) (DescriptorTransform, error) {
	s, err := requireParam("set_property_type", params, "type")
	if err != nil {
		return nil, err
	}
	pt, err := domain.ParsePropertyType(s)
	if err != nil {
		return nil, err
	}
	return &SetPropertyType{PropertyType: pt}, nil
}

func createSetEntityType(params map[string]string) (DescriptorTransform, error) {
	s, err := requireParam("set_entity_type", params, "entity")
	if err != nil {
		return nil, err
	}
	et, err := domain.ParseEntityType(s)
	if err != nil {
		return nil, err
	}
	return &SetEntityType{EntityType: et}, nil
}

func createSetFirstHomeBuyer(params map[string]string) (DescriptorTransform, error) {
	s, err := requireParam("set_first_home_buyer", params, "value")
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1":
		return &SetFirstHomeBuyer{FirstHomeBuyer: true}, nil
	case "false", "no", "n", "0":
		return &SetFirstHomeBuyer{FirstHomeBuyer: false}, nil
	}
	return nil, fmt.Errorf("invalid value %q, expected yes or no", s)
}

func createSetDeposit(params map[string]string) (DescriptorTransform, error) {
	pct, err := requireDecimal("set_deposit", params, "percent")
	if err != nil {
		return nil, err
	}
	return &SetDeposit{Percent: pct}, nil
}

func createSetValue(params map[string]string) (DescriptorTransform, error) {
	v, err := requireDecimal("set_value", params, "value")
	if err != nil {
		return nil, err
	}
	return &SetValue{Value: v}, nil
}

func createScaleValue(params map[string]string) (DescriptorTransform, error) {
	f, err := requireDecimal("scale_value", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleValue{Factor: f}, nil
}

func createSetOccupancy(params map[string]string) (DescriptorTransform, error) {
	s, err := requireParam("set_occupancy", params, "occupancy")
	if err != nil {
		return nil, err
	}
	o, err := domain.ParseOccupancy(s)
	if err != nil {
		return nil, err
	}
	return &SetOccupancy{Occupancy: o}, nil
}

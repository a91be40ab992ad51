package transform

import (
	"fmt"

	"github.com/rgehrsitz/firbgo/internal/domain"
)

// DescriptorTransform defines the interface for all descriptor transformations.
// Transforms are composable "what if" edits of a property descriptor used by
// comparisons, the affordability solver and the TUI.
type DescriptorTransform interface {
	// Apply returns a modified copy of base. The base is never mutated.
	Apply(base domain.PropertyDescriptor) (domain.PropertyDescriptor, error)

	// Name returns a short identifier for this transform (e.g., "set_state").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base domain.PropertyDescriptor) error
}

// ApplyTransforms applies a sequence of transforms to a base descriptor.
// Transforms are applied in order, with each transform receiving the output of
// the previous one. The result is validated before it is returned.
func ApplyTransforms(base domain.PropertyDescriptor, transforms []DescriptorTransform) (domain.PropertyDescriptor, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	if err := current.Validate(); err != nil {
		return base, fmt.Errorf("transformed descriptor is invalid: %w", err)
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

package tui

import (
	"github.com/rgehrsitz/firbgo/internal/compare"
	"github.com/rgehrsitz/firbgo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneExplorer Scene = iota
	SceneCompare
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneExplorer:
		return "Explorer"
	case SceneCompare:
		return "Compare States"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CalculationCompleteMsg carries the breakdown for a descriptor. Descriptor
// lets the model drop results for inputs that have since changed.
type CalculationCompleteMsg struct {
	Descriptor domain.PropertyDescriptor
	Breakdown  domain.FeeBreakdown
	Err        error
}

// ComparisonCompleteMsg carries a cross-state comparison
type ComparisonCompleteMsg struct {
	Descriptor domain.PropertyDescriptor
	Set        *compare.ComparisonSet
	Err        error
}

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/firbgo/internal/calculation"
	"github.com/rgehrsitz/firbgo/internal/compare"
	"github.com/rgehrsitz/firbgo/internal/domain"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	calc    calculation.Calculator
	compare *compare.CompareEngine

	// Current inputs and the results computed for them
	descriptor domain.PropertyDescriptor
	breakdown  *domain.FeeBreakdown
	comparison *compare.ComparisonSet

	// Property value editing
	valueInput textinput.Model
	editing    bool

	keys KeyMap
	help help.Model

	err error

	// Pending work; the explorer and compare results arrive independently
	calculating bool
	comparing   bool
}

// NewModel creates an explorer starting from initial
func NewModel(calc calculation.Calculator, initial domain.PropertyDescriptor) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. 850,000"
	ti.Prompt = "$ "
	ti.CharLimit = 16

	return Model{
		currentScene: SceneExplorer,
		calc:         calc,
		compare:      compare.NewCompareEngine(calc),
		descriptor:   initial,
		valueInput:   ti,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		width:        100,
		height:       32,
		calculating:  true,
	}
}

// loading reports whether any result is still pending
func (m Model) loading() bool {
	return m.calculating || m.comparing
}

// loadingMessage names the pending work
func (m Model) loadingMessage() string {
	switch {
	case m.calculating && m.comparing:
		return "Calculating and comparing states..."
	case m.comparing:
		return "Comparing states..."
	default:
		return "Calculating..."
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return calculateCmd(m.calc, m.descriptor)
}

// Descriptor returns the inputs currently shown
func (m Model) Descriptor() domain.PropertyDescriptor {
	return m.descriptor
}

// Breakdown returns the latest breakdown, if one has been computed
func (m Model) Breakdown() *domain.FeeBreakdown {
	return m.breakdown
}

// Scene returns the active scene
func (m Model) Scene() Scene {
	return m.currentScene
}

// calculateCmd returns a command that prices a descriptor
func calculateCmd(calc calculation.Calculator, d domain.PropertyDescriptor) tea.Cmd {
	return func() tea.Msg {
		b, err := calc.CalculateAllFees(d)
		return CalculationCompleteMsg{Descriptor: d, Breakdown: b, Err: err}
	}
}

// compareCmd returns a command that prices the descriptor in every state
func compareCmd(ce *compare.CompareEngine, d domain.PropertyDescriptor) tea.Cmd {
	return func() tea.Msg {
		states := append([]domain.State{d.State}, otherStates(d.State)...)
		set, err := ce.CompareStates(context.Background(), d, states)
		return ComparisonCompleteMsg{Descriptor: d, Set: set, Err: err}
	}
}

func otherStates(first domain.State) []domain.State {
	out := make([]domain.State, 0, len(domain.AllStates))
	for _, st := range domain.AllStates {
		if st != first {
			out = append(out, st)
		}
	}
	return out
}

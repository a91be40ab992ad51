package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/firbgo/internal/config"
	"github.com/rgehrsitz/firbgo/internal/domain"
)

var (
	propertyTypes = []domain.PropertyType{domain.PropertyEstablished, domain.PropertyNewDwelling, domain.PropertyVacantLand}
	entityTypes   = []domain.EntityType{domain.EntityIndividual, domain.EntityCompany, domain.EntityTrust}
	occupancies   = []domain.Occupancy{domain.OccupancyUnspecified, domain.OccupancyOccupied, domain.OccupancyVacant}

	depositStep = decimal.NewFromInt(5)
	hundred     = decimal.NewFromInt(100)
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		if msg.Scene == SceneCompare && m.comparisonStale() {
			m.comparing = true
			return m, compareCmd(m.compare, m.descriptor)
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case CalculationCompleteMsg:
		if msg.Descriptor.Key() != m.descriptor.Key() {
			return m, nil
		}
		m.calculating = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		b := msg.Breakdown
		m.breakdown = &b
		return m, nil

	case ComparisonCompleteMsg:
		if msg.Descriptor.Key() != m.descriptor.Key() {
			return m, nil
		}
		m.comparing = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.comparison = msg.Set
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.valueInput, cmd = m.valueInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditing(msg)
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m, navigate(SceneHelp)

	case key.Matches(msg, m.keys.Back):
		if m.currentScene != SceneExplorer {
			return m, navigate(SceneExplorer)
		}
		return m, nil

	case key.Matches(msg, m.keys.Explorer):
		return m, navigate(SceneExplorer)

	case key.Matches(msg, m.keys.Compare):
		return m, navigate(SceneCompare)

	case key.Matches(msg, m.keys.EditValue):
		m.editing = true
		m.valueInput.SetValue(m.descriptor.PropertyValue.String())
		m.valueInput.CursorEnd()
		return m, m.valueInput.Focus()
	}

	d := m.descriptor
	switch {
	case key.Matches(msg, m.keys.NextState):
		d.State = cycle(domain.AllStates, d.State, 1)
	case key.Matches(msg, m.keys.PrevState):
		d.State = cycle(domain.AllStates, d.State, -1)
	case key.Matches(msg, m.keys.Type):
		d.PropertyType = cycle(propertyTypes, d.PropertyType, 1)
	case key.Matches(msg, m.keys.Entity):
		d.EntityType = cycle(entityTypes, d.EntityType, 1)
	case key.Matches(msg, m.keys.FirstHome):
		d.FirstHomeBuyer = !d.FirstHomeBuyer
	case key.Matches(msg, m.keys.Occupancy):
		d.Occupancy = cycle(occupancies, d.Occupancy, 1)
	case key.Matches(msg, m.keys.DepositUp):
		d.DepositPercent = decimal.Min(hundred, d.DepositPercent.Add(depositStep))
	case key.Matches(msg, m.keys.DepositDown):
		d.DepositPercent = decimal.Max(decimal.Zero, d.DepositPercent.Sub(depositStep))
	default:
		return m, nil
	}

	return m.setDescriptor(d)
}

// handleEditing routes keys to the value input until enter or esc
func (m Model) handleEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.valueInput.Blur()
		return m, nil

	case tea.KeyEnter:
		value, err := config.ParseAmount("property_value", m.valueInput.Value())
		if err == nil && !value.IsPositive() {
			err = &config.FieldError{Field: "property_value", Value: m.valueInput.Value(), Reason: "must be greater than zero"}
		}
		m.editing = false
		m.valueInput.Blur()
		if err != nil {
			m.err = err
			return m, nil
		}
		d := m.descriptor
		d.PropertyValue = value
		return m.setDescriptor(d)

	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.valueInput, cmd = m.valueInput.Update(msg)
	return m, cmd
}

// setDescriptor stores new inputs and schedules the recalculations they need
func (m Model) setDescriptor(d domain.PropertyDescriptor) (tea.Model, tea.Cmd) {
	if d.Key() == m.descriptor.Key() {
		return m, nil
	}
	m.descriptor = d
	m.calculating = true

	cmds := []tea.Cmd{calculateCmd(m.calc, d)}
	if m.currentScene == SceneCompare {
		m.comparing = true
		cmds = append(cmds, compareCmd(m.compare, d))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) comparisonStale() bool {
	return m.comparison == nil || m.comparison.BaseResult == nil ||
		m.comparison.BaseResult.Breakdown.Descriptor.Key() != m.descriptor.Key()
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: s}
	}
}

// cycle returns the element step positions after current, wrapping around.
// An unknown current value starts from the first element.
func cycle[T comparable](values []T, current T, step int) T {
	for i, v := range values {
		if v == current {
			n := len(values)
			return values[((i+step)%n+n)%n]
		}
	}
	return values[0]
}

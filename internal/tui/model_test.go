package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/firbgo/internal/calculation"
	"github.com/rgehrsitz/firbgo/internal/domain"
)

func initialDescriptor() domain.PropertyDescriptor {
	return domain.PropertyDescriptor{
		PropertyValue:  decimal.NewFromInt(800000),
		PropertyType:   domain.PropertyEstablished,
		State:          domain.StateNSW,
		EntityType:     domain.EntityIndividual,
		DepositPercent: decimal.NewFromInt(20),
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and then every message its command produces, the way the
// bubbletea runtime would. Cursor blink commands issued while editing are not
// run; they only animate the input.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	return drain(t, m, cmd)
}

func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil || m.editing {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drain(t, m, c)
		}
		return m
	}
	if _, ok := msg.(tea.QuitMsg); ok {
		return m
	}
	next, follow := m.Update(msg)
	return drain(t, next.(Model), follow)
}

func started(t *testing.T) Model {
	t.Helper()
	m := NewModel(calculation.NewFeeEngine(), initialDescriptor())
	return drain(t, m, m.Init())
}

func TestInit_CalculatesInitialDescriptor(t *testing.T) {
	m := started(t)

	require.NotNil(t, m.Breakdown())
	assert.True(t, m.Breakdown().GrandTotal.Equal(decimal.NewFromInt(115630)))
	assert.Equal(t, SceneExplorer, m.Scene())
	assert.False(t, m.loading())
}

func TestKeys_ChangeDescriptor(t *testing.T) {
	tests := []struct {
		name  string
		msg   tea.KeyMsg
		check func(t *testing.T, d domain.PropertyDescriptor)
	}{
		{"next state", tea.KeyMsg{Type: tea.KeyRight}, func(t *testing.T, d domain.PropertyDescriptor) {
			assert.Equal(t, domain.StateVIC, d.State)
		}},
		{"previous state wraps", tea.KeyMsg{Type: tea.KeyLeft}, func(t *testing.T, d domain.PropertyDescriptor) {
			assert.Equal(t, domain.StateNT, d.State)
		}},
		{"property type", runes("t"), func(t *testing.T, d domain.PropertyDescriptor) {
			assert.Equal(t, domain.PropertyNewDwelling, d.PropertyType)
		}},
		{"entity", runes("e"), func(t *testing.T, d domain.PropertyDescriptor) {
			assert.Equal(t, domain.EntityCompany, d.EntityType)
		}},
		{"first home", runes("f"), func(t *testing.T, d domain.PropertyDescriptor) {
			assert.True(t, d.FirstHomeBuyer)
		}},
		{"occupancy", runes("o"), func(t *testing.T, d domain.PropertyDescriptor) {
			assert.Equal(t, domain.OccupancyOccupied, d.Occupancy)
		}},
		{"deposit up", runes("+"), func(t *testing.T, d domain.PropertyDescriptor) {
			assert.True(t, d.DepositPercent.Equal(decimal.NewFromInt(25)))
		}},
		{"deposit down", runes("-"), func(t *testing.T, d domain.PropertyDescriptor) {
			assert.True(t, d.DepositPercent.Equal(decimal.NewFromInt(15)))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := send(t, started(t), tt.msg)
			tt.check(t, m.Descriptor())
			require.NotNil(t, m.Breakdown())
			assert.Equal(t, m.Descriptor().Key(), m.Breakdown().Descriptor.Key(), "breakdown follows the inputs")
		})
	}
}

func TestKeys_DepositClamped(t *testing.T) {
	m := started(t)
	for i := 0; i < 30; i++ {
		m = send(t, m, runes("+"))
	}
	assert.True(t, m.Descriptor().DepositPercent.Equal(decimal.NewFromInt(100)))

	for i := 0; i < 30; i++ {
		m = send(t, m, runes("-"))
	}
	assert.True(t, m.Descriptor().DepositPercent.IsZero())
}

func TestLMIAppearsBelowTwentyPercentDeposit(t *testing.T) {
	m := started(t)
	assert.True(t, m.Breakdown().LendersMortgageInsurance.IsZero())

	m = send(t, m, runes("-"))
	assert.True(t, m.Breakdown().LendersMortgageInsurance.IsPositive())
}

func TestEditValue(t *testing.T) {
	m := send(t, started(t), runes("v"))
	require.True(t, m.editing)

	// Replace the prefilled value
	m.valueInput.SetValue("")
	for _, r := range "1,200,000" {
		m = send(t, m, runes(string(r)))
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.editing)
	assert.True(t, m.Descriptor().PropertyValue.Equal(decimal.NewFromInt(1200000)))
	assert.True(t, m.Breakdown().FIRBFee.Equal(decimal.NewFromInt(30400)))
}

func TestEditValue_Invalid(t *testing.T) {
	m := send(t, started(t), runes("v"))
	m.valueInput.SetValue("abc")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Error(t, m.err)
	assert.True(t, m.Descriptor().PropertyValue.Equal(decimal.NewFromInt(800000)), "value unchanged")
	assert.Contains(t, m.View(), "Error:")

	m = send(t, m, runes("x"))
	assert.NoError(t, m.err, "any key dismisses the error")
}

func TestEditValue_Escape(t *testing.T) {
	m := send(t, started(t), runes("v"))
	m.valueInput.SetValue("5")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.editing)
	assert.True(t, m.Descriptor().PropertyValue.Equal(decimal.NewFromInt(800000)))
}

func TestCompareScene(t *testing.T) {
	m := send(t, started(t), runes("c"))

	assert.Equal(t, SceneCompare, m.Scene())
	require.NotNil(t, m.comparison)
	assert.Equal(t, "NSW", m.comparison.BaseScenarioName)
	assert.Len(t, m.comparison.AlternativeResults, 7)

	view := m.View()
	assert.Contains(t, view, "Compare States")
	assert.Contains(t, view, "VIC")

	// Changing inputs on the compare scene refreshes the comparison
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "VIC", m.comparison.BaseScenarioName)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneExplorer, m.Scene())
}

// collect runs cmd and returns the messages it produces, flattening batches
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func TestCompareScene_LoadingUntilBothResultsArrive(t *testing.T) {
	m := send(t, started(t), runes("c"))
	require.Equal(t, SceneCompare, m.Scene())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)
	assert.True(t, m.calculating)
	assert.True(t, m.comparing)
	assert.Contains(t, m.View(), "Calculating and comparing states...")

	var calc, cmp tea.Msg
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case CalculationCompleteMsg:
			calc = msg
		case ComparisonCompleteMsg:
			cmp = msg
		}
	}
	require.NotNil(t, calc)
	require.NotNil(t, cmp)

	next, _ = m.Update(calc)
	m = next.(Model)
	assert.True(t, m.loading(), "comparison still pending")
	assert.Contains(t, m.View(), "Comparing states...")

	next, _ = m.Update(cmp)
	m = next.(Model)
	assert.False(t, m.loading())
	assert.Equal(t, "VIC", m.comparison.BaseScenarioName)
	assert.NotContains(t, m.View(), "Comparing states...")

	// Results arriving in the other order behave the same
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(Model)
	msgs := collect(cmd)
	for i := len(msgs) - 1; i >= 0; i-- {
		if _, ok := msgs[i].(ComparisonCompleteMsg); ok {
			next, _ = m.Update(msgs[i])
			m = next.(Model)
		}
	}
	assert.True(t, m.calculating)
	assert.False(t, m.comparing)
	assert.Contains(t, m.View(), "Calculating...")
}

func TestStaleResultsIgnored(t *testing.T) {
	m := started(t)
	stale := initialDescriptor()
	stale.State = domain.StateQLD

	next, _ := m.Update(CalculationCompleteMsg{Descriptor: stale, Err: errors.New("boom")})
	m = next.(Model)
	assert.NoError(t, m.err)
	assert.Equal(t, domain.StateNSW, m.Breakdown().Descriptor.State)
}

func TestView_Explorer(t *testing.T) {
	m := started(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "FIRBGO")
	assert.Contains(t, view, "FY 2024-25")
	assert.Contains(t, view, "$800,000")
	assert.Contains(t, view, "$115,630")
	assert.Contains(t, view, "Vacancy fee (if vacant)")
	assert.Contains(t, view, "Foreign buyer costs")
}

func TestView_UnknownStateWarning(t *testing.T) {
	d := initialDescriptor()
	d.State = "XX"
	m := NewModel(calculation.NewFeeEngine(), d)
	m = drain(t, m, m.Init())

	assert.Contains(t, m.View(), "fallback rates")

	// Cycling from an unknown state starts at the first jurisdiction
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, domain.StateNSW, m.Descriptor().State)
}

func TestHelpAndQuit(t *testing.T) {
	m := send(t, started(t), runes("?"))
	assert.Equal(t, SceneHelp, m.Scene())
	assert.Contains(t, m.View(), "deposit up")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestCycle(t *testing.T) {
	values := []string{"a", "b", "c"}
	assert.Equal(t, "b", cycle(values, "a", 1))
	assert.Equal(t, "a", cycle(values, "c", 1))
	assert.Equal(t, "c", cycle(values, "a", -1))
	assert.Equal(t, "a", cycle(values, "z", 1))
}

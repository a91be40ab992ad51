package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/firbgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard displays one cost total with an optional change against a reference
type MetricCard struct {
	Label       string
	Amount      decimal.Decimal
	Change      *decimal.Decimal
	Description string
	Width       int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label string, amount decimal.Decimal) *MetricCard {
	return &MetricCard{
		Label:  label,
		Amount: amount,
		Width:  24,
	}
}

// WithChange records the difference from a reference amount. Costs going up
// render red.
func (m *MetricCard) WithChange(delta decimal.Decimal) *MetricCard {
	m.Change = &delta
	return m
}

// WithDescription adds a description/subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the styled metric card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(tuistyles.FormatCurrency(m.Amount))

	if m.Change != nil && !m.Change.IsZero() {
		up := m.Change.IsPositive()
		style := tuistyles.MetricTrendStyle(!up)
		content += "\n" + style.Render(tuistyles.TrendIndicator(up)+" "+tuistyles.FormatCurrency(m.Change.Abs()))
	}

	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width)

	return cardStyle.Render(content)
}

// MetricGrid renders cards in rows of the given column count
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

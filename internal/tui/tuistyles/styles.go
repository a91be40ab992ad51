// Package tuistyles holds the lipgloss palette shared by the TUI and its
// components. It lives apart from package tui so components can import it.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/firbgo/internal/output"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#A78BFA"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	ColorInfo      = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}

	ColorForeground = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Width(18)

	ParameterValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	TableHighlightStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSuccess)
)

// MetricTrendStyle colours a change. For costs, a decrease is good news.
func MetricTrendStyle(isGood bool) lipgloss.Style {
	if isGood {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns the arrow for a change direction
func TrendIndicator(isIncrease bool) string {
	if isIncrease {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders whole dollars with thousands separators
func FormatCurrency(d decimal.Decimal) string {
	return output.FormatCurrency(d)
}

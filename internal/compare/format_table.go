package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/firbgo/internal/output"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("FOREIGN BUYER COST COMPARISON") + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n\n", compSet.BaseScenarioName))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Bold(true)
			}
			return cellStyle
		}).
		Headers("Scenario", "Upfront", "Annual", "First Year", "Five Year", "vs Base")

	for i, r := range compSet.All() {
		name := r.ScenarioName
		delta := "-"
		if i == 0 {
			name += " (base)"
		} else {
			delta = output.FormatSignedCurrency(r.UpfrontDiffFromBase)
		}
		t.Row(
			name,
			output.FormatCurrency(r.GrandTotal),
			output.FormatCurrency(r.AnnualTotal),
			output.FormatCurrency(r.FirstYearTotal),
			output.FormatCurrency(r.FiveYearCost),
			delta,
		)
	}
	sb.WriteString(t.Render() + "\n")

	if len(compSet.Alerts) > 0 {
		sb.WriteString("\n" + headerStyle.Render("SAVINGS ALERTS") + "\n")
		for _, a := range compSet.Alerts {
			sb.WriteString(fmt.Sprintf("• %s\n", a.Message))
		}
	}

	return sb.String()
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s %s", compSet.BaseScenarioName, output.FormatCurrency(compSet.BaseResult.GrandTotal)))
	for _, alt := range compSet.AlternativeResults {
		change := "="
		if !alt.UpfrontDiffFromBase.Round(0).IsZero() {
			change = output.FormatSignedCurrency(alt.UpfrontDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf(" | %s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}

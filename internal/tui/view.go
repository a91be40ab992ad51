package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/rgehrsitz/firbgo/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(m.renderError())
	}

	var content string
	switch m.currentScene {
	case SceneExplorer:
		content = m.renderExplorer()
	case SceneCompare:
		content = m.renderCompare()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("FIRBGO - Foreign Buyer Property Costs")

	breadcrumb := m.currentScene.String()
	if m.calc != nil {
		breadcrumb += " / FY " + m.calc.FinancialYear()
	}
	if m.loading() {
		breadcrumb += " / " + m.loadingMessage()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the key help line
func (m Model) renderStatusBar() string {
	return StatusBarStyle.Width(max(0, m.width-2)).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()))
}

// renderExplorer shows the inputs beside the resulting costs
func (m Model) renderExplorer() string {
	inputs := BorderStyle.Render(m.renderInputs())

	if m.breakdown == nil {
		return lipgloss.JoinHorizontal(lipgloss.Top, inputs, BorderStyle.Render("Calculating..."))
	}
	b := *m.breakdown

	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Foreign buyer costs", b.ForeignTotal),
		components.NewMetricCard("Standard costs", b.StandardTotal),
		components.NewMetricCard("Upfront total", b.GrandTotal).WithDescription("due at purchase"),
		components.NewMetricCard("Annual costs", b.AnnualTotal).WithDescription("every year"),
	}, 2)

	top := lipgloss.JoinHorizontal(lipgloss.Top, inputs, cards)
	return lipgloss.JoinVertical(lipgloss.Left, top, m.renderLineItems(b))
}

func (m Model) renderInputs() string {
	d := m.descriptor
	var sb strings.Builder

	sb.WriteString(TableHeaderStyle.Render("Purchase") + "\n")
	if m.editing {
		sb.WriteString(ParameterLabelStyle.Render("Property value") + " " + m.valueInput.View() + "\n")
	} else {
		sb.WriteString(param("Property value", FormatCurrency(d.PropertyValue)))
	}
	sb.WriteString(param("State", m.renderStates()))
	sb.WriteString(param("Property type", string(d.PropertyType)))
	sb.WriteString(param("Entity", string(d.EntityType)))
	sb.WriteString(param("First home buyer", yesNo(d.FirstHomeBuyer)))
	occupancy := string(d.Occupancy)
	if occupancy == "" {
		occupancy = "not stated"
	}
	sb.WriteString(param("Occupancy", occupancy))
	sb.WriteString(components.NewParameterSlider("Deposit", d.DepositPercent, decimal.Zero, hundred).WithUnit("%").Render())

	if m.breakdown != nil && m.breakdown.StateFallback {
		sb.WriteString("\n" + WarningStyle.Render("Unknown state: fallback rates in use"))
	}
	return sb.String()
}

// renderStates shows the state strip with the current state highlighted
func (m Model) renderStates() string {
	parts := make([]string, 0, len(domain.AllStates))
	for _, st := range domain.AllStates {
		if st == m.descriptor.State {
			parts = append(parts, SelectedItemStyle.Render(string(st)))
		} else {
			parts = append(parts, SubtitleStyle.Render(string(st)))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderLineItems(b domain.FeeBreakdown) string {
	var sb strings.Builder
	var category domain.FeeCategory
	for _, item := range b.LineItems() {
		if item.Category != category {
			category = item.Category
			sb.WriteString(TableHeaderStyle.Render(categoryTitles[category]) + "\n")
		}
		label := item.Label
		style := TableCellStyle
		if item.Contingent {
			style = WarningStyle
		}
		sb.WriteString(fmt.Sprintf("  %-36s %s\n", label, style.Render(fmt.Sprintf("%12s", FormatCurrency(item.Amount)))))
	}
	sb.WriteString(fmt.Sprintf("\n  %-36s %12s\n", "First-year total", FormatCurrency(b.FirstYearTotal)))
	sb.WriteString(fmt.Sprintf("  %-36s %12s", "Five-year cost", FormatCurrency(b.FiveYearCost())))
	return BorderStyle.Render(sb.String())
}

// renderCompare shows the purchase priced in every state
func (m Model) renderCompare() string {
	set := m.comparison
	if set == nil || set.BaseResult == nil {
		return BorderStyle.Render("Comparing states...")
	}

	cheapest := set.BaseResult.GrandTotal
	for _, r := range set.AlternativeResults {
		cheapest = decimal.Min(cheapest, r.GrandTotal)
	}

	var sb strings.Builder
	sb.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-7s %14s %14s %14s %14s", "State", "Upfront", "Annual", "Five-year", "vs "+set.BaseScenarioName)) + "\n")
	for _, r := range set.All() {
		diff := "-"
		if r.ScenarioName != set.BaseScenarioName {
			diff = signed(r.UpfrontDiffFromBase)
		}
		row := fmt.Sprintf("%-7s %14s %14s %14s %14s", r.ScenarioName,
			FormatCurrency(r.GrandTotal), FormatCurrency(r.AnnualTotal), FormatCurrency(r.FiveYearCost), diff)
		if r.GrandTotal.Equal(cheapest) {
			sb.WriteString(TableHighlightStyle.Render(row) + "\n")
		} else {
			sb.WriteString(TableCellStyle.Render(row) + "\n")
		}
	}

	if len(set.Alerts) > 0 {
		sb.WriteString("\n" + TableHeaderStyle.Render("Savings") + "\n")
		for _, a := range set.Alerts {
			sb.WriteString(InfoStyle.Render("• "+a.Message) + "\n")
		}
	}
	return ActiveBorderStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	intro := "Adjust the purchase and watch the foreign-buyer costs update.\n" +
		"Estimates only: rates are for FY " + m.financialYear() + ".\n\n"
	return BorderStyle.Render(intro + m.help.FullHelpView(m.keys.FullHelp()))
}

func (m Model) financialYear() string {
	if m.calc == nil {
		return "unknown"
	}
	return m.calc.FinancialYear()
}

var categoryTitles = map[domain.FeeCategory]string{
	domain.CategoryForeign:  "Foreign buyer costs",
	domain.CategoryStandard: "Standard purchase costs",
	domain.CategoryAnnual:   "Annual costs",
}

func param(label, value string) string {
	return ParameterLabelStyle.Render(label) + " " + ParameterValueStyle.Render(value) + "\n"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatCurrency(d)
	}
	return FormatCurrency(d)
}

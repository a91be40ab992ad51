package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/firbgo/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	totalStyle   = lipgloss.NewStyle().Bold(true)
	noteStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
)

const labelWidth = 36

// ConsoleFormatter renders breakdowns as a styled terminal report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	for i, sc := range report.Scenarios {
		if i > 0 {
			buf.WriteString("\n")
		}
		writeBreakdown(&buf, sc)
	}
	if len(report.Assumptions) > 0 {
		buf.WriteString("\n" + sectionStyle.Render("Assumptions") + "\n")
		for _, a := range report.Assumptions {
			buf.WriteString(noteStyle.Render("  • "+a) + "\n")
		}
	}
	return buf.Bytes(), nil
}

func writeBreakdown(buf *bytes.Buffer, sc ScenarioReport) {
	b := sc.Breakdown
	d := b.Descriptor

	title := "FOREIGN BUYER PROPERTY COSTS"
	if sc.Name != "" {
		title += " - " + sc.Name
	}
	buf.WriteString(titleStyle.Render(title) + "\n")
	buf.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(buf, "%s in %s, %s, purchased by %s\n",
		d.PropertyType.Label(), d.State, FormatCurrency(d.PropertyValue), d.EntityType)
	fmt.Fprintf(buf, "Deposit %s%% (loan %s), first home buyer: %t, rates %s\n",
		d.DepositPercent.String(), FormatCurrency(b.LoanAmount), d.FirstHomeBuyer, b.FinancialYear)
	if b.StateFallback {
		buf.WriteString(warnStyle.Render(fmt.Sprintf("State %q is not in the rate table; fallback rates used", d.State)) + "\n")
	}

	sections := []struct {
		title    string
		category domain.FeeCategory
		total    string
		label    string
	}{
		{"Foreign buyer costs", domain.CategoryForeign, FormatCurrency(b.ForeignTotal), "Foreign total"},
		{"Standard purchase costs", domain.CategoryStandard, FormatCurrency(b.StandardTotal), "Standard total"},
		{"Annual costs", domain.CategoryAnnual, FormatCurrency(b.AnnualTotal), "Annual total"},
	}
	items := b.LineItems()
	for _, s := range sections {
		buf.WriteString("\n" + sectionStyle.Render(s.title) + "\n")
		for _, item := range items {
			if item.Category == s.category {
				writeLine(buf, item.Label, FormatCurrency(item.Amount))
			}
		}
		buf.WriteString(totalStyle.Render(line(s.label, s.total)) + "\n")
	}

	buf.WriteString("\n" + strings.Repeat("-", 60) + "\n")
	buf.WriteString(totalStyle.Render(line("Total upfront cost", FormatCurrency(b.GrandTotal))) + "\n")
	writeLine(buf, "First year cost", FormatCurrency(b.FirstYearTotal))
	writeLine(buf, "Five year cost", FormatCurrency(b.FiveYearCost()))
	if b.VacancyFeeContingent {
		buf.WriteString(noteStyle.Render("Vacancy fee applies only if the dwelling is vacant for more than 183 days a year") + "\n")
	}
}

func line(label, value string) string {
	return fmt.Sprintf("  %-*s %14s", labelWidth, label, value)
}

func writeLine(buf *bytes.Buffer, label, value string) {
	buf.WriteString(line(label, value) + "\n")
}

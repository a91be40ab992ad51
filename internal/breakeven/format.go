package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/firbgo/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats affordability results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a single affordability result
func (tf *TableFormatter) Format(result *AffordabilityResult) string {
	var sb strings.Builder

	sb.WriteString("AFFORDABILITY RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	d := result.Request.Base
	sb.WriteString(fmt.Sprintf("Budget:              %s\n", output.FormatCurrency(result.Request.Budget)))
	sb.WriteString(fmt.Sprintf("Budget Covers:       %s\n", goalLabel(result.Request.Goal)))
	sb.WriteString(fmt.Sprintf("Property:            %s in %s, %s buyer, %s%% deposit\n",
		d.PropertyType, d.State, d.EntityType, d.DepositPercent.StringFixed(0)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("MAXIMUM PURCHASE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	b := result.Breakdown
	sb.WriteString(fmt.Sprintf("Property Value:        %s\n", output.FormatCurrency(result.MaxPropertyValue)))
	sb.WriteString(fmt.Sprintf("Foreign Buyer Costs:   %s\n", output.FormatCurrency(b.ForeignTotal)))
	sb.WriteString(fmt.Sprintf("Standard Costs:        %s\n", output.FormatCurrency(b.StandardTotal)))
	sb.WriteString(fmt.Sprintf("Annual Costs:          %s\n", output.FormatCurrency(b.AnnualTotal)))
	sb.WriteString(fmt.Sprintf("Charged to Budget:     %s\n", output.FormatCurrency(result.CostCovered)))
	sb.WriteString(fmt.Sprintf("Headroom:              %s\n", output.FormatCurrency(result.Headroom)))
	if b.VacancyFeeContingent {
		sb.WriteString("\nNote: a vacancy fee is assumed because occupancy was not stated.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatStates formats results from a search across states
func (tf *TableFormatter) FormatStates(result *StateAffordability) string {
	var sb strings.Builder

	sb.WriteString("AFFORDABILITY BY STATE\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-8s %16s %16s %16s %14s\n",
		"State", "Max Value", "Upfront Costs", "Annual Costs", "Headroom"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		marker := " "
		if result.Best != nil && res.Request.Base.State == result.Best.Request.Base.State {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%-8s %16s %16s %16s %14s\n",
			string(res.Request.Base.State)+marker,
			output.FormatCurrency(res.MaxPropertyValue),
			tf.formatShort(res.Breakdown.GrandTotal),
			tf.formatShort(res.Breakdown.AnnualTotal),
			output.FormatCurrency(res.Headroom)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *AffordabilityResult) (string, error) {
	return jf.marshal(result)
}

// FormatStates formats per-state results as JSON
func (jf *JSONFormatter) FormatStates(result *StateAffordability) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func goalLabel(g BudgetGoal) string {
	switch g {
	case GoalFirstYear:
		return "price, upfront costs and first-year annual costs"
	case GoalUpfrontCosts:
		return "upfront costs only"
	default:
		return "price and upfront costs"
	}
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return "$" + millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return "$" + thousands.StringFixed(1) + "K"
	}
	return "$" + d.StringFixed(0)
}

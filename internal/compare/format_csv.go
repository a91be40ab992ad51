package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"State",
		"Property Type",
		"Upfront Total",
		"Annual Total",
		"First Year Total",
		"Five Year Cost",
		"Upfront Diff from Base",
		"Upfront % Change",
		"Annual Diff from Base",
		"Five Year Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i, r := range compSet.All() {
		kind := "alternative"
		if i == 0 {
			kind = "base"
		}
		if err := writer.Write(cf.formatRow(&r, kind)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	d := result.Breakdown.Descriptor
	return []string{
		result.ScenarioName,
		scenarioType,
		string(d.State),
		string(d.PropertyType),
		result.GrandTotal.StringFixed(2),
		result.AnnualTotal.StringFixed(2),
		result.FirstYearTotal.StringFixed(2),
		result.FiveYearCost.StringFixed(2),
		result.UpfrontDiffFromBase.StringFixed(2),
		result.UpfrontPctFromBase.StringFixed(2),
		result.AnnualDiffFromBase.StringFixed(2),
		result.FiveYearDiffFromBase.StringFixed(2),
	}
}

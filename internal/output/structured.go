package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// JSONFormatter renders the report as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// YAMLFormatter renders the report as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(report *Report) ([]byte, error) {
	return yaml.Marshal(report)
}

// CSVFormatter renders one row per line item per scenario
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Scenario", "State", "PropertyValue", "Key", "Label", "Category", "Amount", "Contingent"}); err != nil {
		return nil, err
	}
	for _, sc := range report.Scenarios {
		b := sc.Breakdown
		rows := b.LineItems()
		for _, item := range rows {
			contingent := "false"
			if item.Contingent {
				contingent = "true"
			}
			row := []string{
				sc.Name,
				string(b.Descriptor.State),
				b.Descriptor.PropertyValue.StringFixed(2),
				item.Key,
				item.Label,
				string(item.Category),
				item.Amount.StringFixed(2),
				contingent,
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		for _, total := range []struct {
			key    string
			amount string
		}{
			{"foreignTotal", b.ForeignTotal.StringFixed(2)},
			{"standardTotal", b.StandardTotal.StringFixed(2)},
			{"grandTotal", b.GrandTotal.StringFixed(2)},
			{"annualTotal", b.AnnualTotal.StringFixed(2)},
			{"firstYearTotal", b.FirstYearTotal.StringFixed(2)},
		} {
			row := []string{sc.Name, string(b.Descriptor.State), b.Descriptor.PropertyValue.StringFixed(2), total.key, total.key, "total", total.amount, "false"}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rgehrsitz/firbgo/internal/calculation"
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildTestReport(t *testing.T) *Report {
	t.Helper()
	b, err := calculation.NewFeeEngine().CalculateAllFees(domain.PropertyDescriptor{
		PropertyValue:  decimal.NewFromInt(800_000),
		PropertyType:   domain.PropertyEstablished,
		State:          domain.StateNSW,
		EntityType:     domain.EntityIndividual,
		DepositPercent: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	return NewReport(ScenarioReport{Name: "sydney", Breakdown: b})
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"0", "$0"},
		{"999.49", "$999"},
		{"999.5", "$1,000"},
		{"1234567.5", "$1,234,568"},
		{"-1234.4", "-$1,234"},
		{"-0.5", "-$1"},
		{"-0.4", "$0"},
		{"30530", "$30,530"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCurrency(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestFormatSignedCurrencyAndRates(t *testing.T) {
	assert.Equal(t, "+$1,500", FormatSignedCurrency(decimal.NewFromInt(1500)))
	assert.Equal(t, "-$1,500", FormatSignedCurrency(decimal.NewFromInt(-1500)))
	assert.Equal(t, "$0", FormatSignedCurrency(decimal.Zero))
	assert.Equal(t, "12.50%", FormatPercentage(decimal.RequireFromString("12.5")))
	assert.Equal(t, "8%", FormatRate(decimal.RequireFromString("0.08")))
	assert.Equal(t, "0.75%", FormatRate(decimal.RequireFromString("0.0075")))
}

func TestFormatterFunc(t *testing.T) {
	called := false
	f := FormatterFunc{ID: "test-formatter", F: func(r *Report) ([]byte, error) {
		called = true
		return []byte("test output"), nil
	}}
	out, err := f.Format(&Report{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "test output", string(out))
	assert.Equal(t, "test-formatter", f.Name())
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	f := FormatterFunc{ID: "t", F: func(*Report) ([]byte, error) { return []byte("content"), nil }}
	filename, err := WriteFormatted(f, &Report{}, "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "firb_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))

	failing := FormatterFunc{ID: "e", F: func(*Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") }}
	filename, err = WriteFormatted(failing, &Report{}, "txt")
	assert.Empty(t, filename)
	assert.ErrorContains(t, err, "formatter error")
}

func TestFormatterRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "html", "json", "yaml"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "yml")

	assert.Equal(t, "console", GetFormatterByName("table").Name())
	assert.Equal(t, "yaml", GetFormatterByName("yml").Name())
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "FOREIGN BUYER PROPERTY COSTS - sydney")
	assert.Contains(t, content, "FIRB application fee")
	assert.Contains(t, content, "$15,200")
	assert.Contains(t, content, "$64,000")
	assert.Contains(t, content, "$30,530")
	assert.Contains(t, content, "$115,630")
	assert.Contains(t, content, "Vacancy fee (if vacant)")
	assert.Contains(t, content, "Assumptions")
}

func TestConsoleFormatter_Fallback(t *testing.T) {
	report := buildTestReport(t)
	report.Scenarios[0].Breakdown.StateFallback = true
	out, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "fallback rates used")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded struct {
		Scenarios []struct {
			Name      string `json:"name"`
			Breakdown struct {
				FIRBFee    decimal.Decimal `json:"firbFee"`
				GrandTotal decimal.Decimal `json:"grandTotal"`
			} `json:"breakdown"`
		} `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded.Scenarios, 1)
	assert.Equal(t, "sydney", decoded.Scenarios[0].Name)
	assert.True(t, decoded.Scenarios[0].Breakdown.FIRBFee.Equal(decimal.NewFromInt(15_200)))
	assert.True(t, decoded.Scenarios[0].Breakdown.GrandTotal.Equal(decimal.NewFromInt(115_630)))
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "scenarios")
	assert.Contains(t, string(out), "stamp_duty_surcharge")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	// header + 15 line items + 5 totals
	require.Len(t, records, 21)
	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"sydney", "NSW", "800000.00", "firb", "FIRB application fee", "foreign", "15200.00", "false"}, records[1])
	assert.Equal(t, "grandTotal", records[18][3])
	assert.Equal(t, "115630.00", records[18][6])
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "<!DOCTYPE html>")
	assert.Contains(t, content, "<title>Foreign Buyer Property Costs</title>")
	assert.Contains(t, content, "sydney: Established dwelling in NSW")
	assert.Contains(t, content, "$115,630")
}

package main

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/firbgo/internal/calculation"
	"github.com/rgehrsitz/firbgo/internal/config"
	"github.com/rgehrsitz/firbgo/internal/output"
)

const exampleScenarios = "../../examples/scenarios.yaml"

// TestIntegrationSmokeTest runs the shipped example file through every output path
func TestIntegrationSmokeTest(t *testing.T) {
	t.Run("example_file_loads", func(t *testing.T) {
		cfg, err := config.NewInputParser().LoadFromFile(exampleScenarios)
		require.NoError(t, err)
		assert.Len(t, cfg.Scenarios, 4)
	})

	for _, format := range []string{"console", "json", "yaml", "csv", "html"} {
		t.Run("calculate_"+format, func(t *testing.T) {
			out, err := execute(t, "calculate", exampleScenarios, "--format", format)
			require.NoError(t, err)
			assert.Contains(t, out, "sydney_established")
			assert.Contains(t, out, "canberra_land")
		})
	}
}

// TestDataConsistency checks that the JSON and CSV renderings carry the same totals
func TestDataConsistency(t *testing.T) {
	jsonOut, err := execute(t, "calculate", exampleScenarios, "--format", "json")
	require.NoError(t, err)
	var report output.Report
	require.NoError(t, json.Unmarshal([]byte(jsonOut), &report))

	csvOut, err := execute(t, "calculate", exampleScenarios, "--format", "csv")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(csvOut)).ReadAll()
	require.NoError(t, err)

	grand := map[string]decimal.Decimal{}
	for _, row := range rows[1:] {
		if row[3] == "grandTotal" {
			grand[row[0]] = decimal.RequireFromString(row[6])
		}
	}

	require.Len(t, grand, len(report.Scenarios))
	for _, sc := range report.Scenarios {
		b := sc.Breakdown
		assert.True(t, b.GrandTotal.Equal(b.ForeignTotal.Add(b.StandardTotal)), sc.Name)
		assert.True(t, b.FirstYearTotal.Equal(b.GrandTotal.Add(b.AnnualTotal)), sc.Name)
		assert.True(t, grand[sc.Name].Equal(b.GrandTotal.Round(2)), "%s: csv %s json %s", sc.Name, grand[sc.Name], b.GrandTotal)
	}
}

// TestPerformance guards against accidental quadratic work in the engine
func TestPerformance(t *testing.T) {
	cfg, err := config.NewInputParser().LoadFromFile(exampleScenarios)
	require.NoError(t, err)
	engine := calculation.NewFeeEngine()

	start := time.Now()
	for i := 0; i < 2000; i++ {
		for _, s := range cfg.Scenarios {
			_, err := engine.CalculateAllFees(s.Descriptor)
			require.NoError(t, err)
		}
	}
	assert.Less(t, time.Since(start), 10*time.Second)
}

package rates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	table := Default()
	require.NoError(t, Validate(table))
	assert.Equal(t, "2024-25", table.Metadata.FinancialYear)
	for _, state := range domain.AllStates {
		assert.Contains(t, table.States, state)
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()

	nsw := a.States[domain.StateNSW]
	nsw.TransferDuty[0].Rate = decimal.NewFromInt(1)
	a.States[domain.StateNSW] = nsw
	*a.FIRB.Established.Individual[0].Below = decimal.NewFromInt(1)

	assert.True(t, b.States[domain.StateNSW].TransferDuty[0].Rate.Equal(decimal.RequireFromString("0.0125")))
	assert.True(t, b.FIRB.Established.Individual[0].Below.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, Default().States[domain.StateNSW].TransferDuty[0].Rate.Equal(decimal.RequireFromString("0.0125")))
}

func TestLoadFile_RoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Metadata, loaded.Metadata)
	assert.True(t, loaded.Vacancy.AnnualFee.Equal(decimal.NewFromInt(11_490)))
	assert.Len(t, loaded.States[domain.StateVIC].TransferDuty, 5)
	assert.Nil(t, loaded.States[domain.StateVIC].TransferDuty[4].Max)
}

func TestResolve(t *testing.T) {
	table, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "2024-25", table.Metadata.FinancialYear)

	_, err = Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_InvalidInput(t *testing.T) {
	_, err := Parse([]byte("{not json"), true)
	assert.Error(t, err)

	_, err = Parse([]byte("metadata: ["), false)
	assert.Error(t, err)

	_, err = Parse([]byte("metadata:\n  financial_year: \"\"\n"), false)
	assert.ErrorIs(t, err, ErrMalformedTable)
}

func TestValidate_RejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(rt *domain.RateTable)
	}{
		{"missing year", func(rt *domain.RateTable) { rt.Metadata.FinancialYear = "" }},
		{"surcharge above one", func(rt *domain.RateTable) {
			s := rt.States[domain.StateNSW]
			s.StampDutySurcharge = decimal.NewFromInt(8)
			rt.States[domain.StateNSW] = s
		}},
		{"bracket gap", func(rt *domain.RateTable) {
			s := rt.States[domain.StateSA]
			s.TransferDuty[2].Min = decimal.NewFromInt(31_000)
			rt.States[domain.StateSA] = s
		}},
		{"downward step", func(rt *domain.RateTable) {
			s := rt.States[domain.StateACT]
			s.TransferDuty[1].Base = decimal.NewFromInt(100)
			rt.States[domain.StateACT] = s
		}},
		{"bounded final bracket", func(rt *domain.RateTable) {
			s := rt.States[domain.StateQLD]
			last := decimal.NewFromInt(9_000_000)
			s.TransferDuty[len(s.TransferDuty)-1].Max = &last
			rt.States[domain.StateQLD] = s
		}},
		{"unordered tiers", func(rt *domain.RateTable) {
			below := decimal.NewFromInt(500)
			rt.FIRB.VacantLand.Individual[1].Below = &below
		}},
		{"negative fee", func(rt *domain.RateTable) { rt.Ancillary.Legal = decimal.NewFromInt(-1) }},
		{"lvr above one", func(rt *domain.RateTable) { rt.LMI.MaxLVR = decimal.NewFromInt(2) }},
		{"missing jurisdiction", func(rt *domain.RateTable) { delete(rt.States, domain.StateTAS) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := Default()
			tt.mutate(table)
			assert.ErrorIs(t, Validate(table), ErrMalformedTable)
		})
	}
}

func TestParse_RejectsMissingJurisdiction(t *testing.T) {
	table := Default()
	delete(table.States, domain.StateWA)
	data, err := Marshal(table)
	require.NoError(t, err)

	_, err = Parse(data, false)
	require.ErrorIs(t, err, ErrMalformedTable)
	assert.Contains(t, err.Error(), "states.WA is missing")
}

func TestValidateBrackets_AllowsUpwardStatutoryStep(t *testing.T) {
	assert.NoError(t, ValidateBrackets(Default().States[domain.StateVIC].TransferDuty))
	assert.NoError(t, ValidateBrackets(Default().States[domain.StateWA].TransferDuty))
	assert.Error(t, ValidateBrackets(nil))
}

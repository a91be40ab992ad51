package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewInputParser(t *testing.T) {
	assert.NotNil(t, NewInputParser())
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	_, err := NewInputParser().LoadFromFile("nonexistent.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "scenarios: [\n")
	_, err := NewInputParser().LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	path := writeFile(t, "input.yaml", `
rates_file: rates/2024-25.yaml
scenarios:
  - name: sydney-established
    property:
      property_value: "800,000"
      property_type: established
      state: NSW
      entity_type: individual
      first_home_buyer: "no"
      deposit_percent: "20"
  - name: brisbane-new
    property:
      property_value: "650000"
      property_type: newDwelling
      state: qld
      deposit_percent: "10"
      occupancy: occupied
`)
	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	require.Len(t, config.Scenarios, 2)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "rates/2024-25.yaml"), config.RatesFile)

	s, ok := config.Find("brisbane-new")
	require.True(t, ok)
	assert.Equal(t, domain.StateQLD, s.Descriptor.State)
	assert.Equal(t, domain.PropertyNewDwelling, s.Descriptor.PropertyType)
	assert.Equal(t, domain.OccupancyOccupied, s.Descriptor.Occupancy)

	_, ok = config.Find("missing")
	assert.False(t, ok)
}

func TestInputParser_LoadFromFile_ValidJSON(t *testing.T) {
	path := writeFile(t, "input.json", `{"scenarios":[{"name":"perth","property":{"propertyValue":"500000","propertyType":"vacantLand","state":"WA","depositPercent":"30"}}]}`)
	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, config.Scenarios, 1)
	assert.Equal(t, domain.PropertyVacantLand, config.Scenarios[0].Descriptor.PropertyType)
	assert.Empty(t, config.RatesFile)
}

func TestInputParser_ValidateConfiguration_NoScenarios(t *testing.T) {
	_, err := NewInputParser().ValidateConfiguration(&InputFile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenarios provided")
}

func TestInputParser_ValidateConfiguration_DuplicateName(t *testing.T) {
	input := &InputFile{Scenarios: []Scenario{
		{Name: "a", Property: validRaw()},
		{Name: "a", Property: validRaw()},
	}}
	_, err := NewInputParser().ValidateConfiguration(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario 1 (a): duplicate name")
}

func TestInputParser_ValidateConfiguration_WrapsFieldError(t *testing.T) {
	bad := validRaw()
	bad.DepositPercent = "150"
	input := &InputFile{Scenarios: []Scenario{{Name: "too-much", Property: bad}}}

	_, err := NewInputParser().ValidateConfiguration(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario 0 (too-much)")
	assert.ErrorIs(t, err, domain.ErrInvalidDescriptor)
	fe, ok := AsFieldError(err)
	require.True(t, ok)
	assert.Equal(t, "deposit_percent", fe.Field)
}

func TestInputParser_ValidateConfiguration_EmptyName(t *testing.T) {
	input := &InputFile{Scenarios: []Scenario{{Name: " ", Property: validRaw()}}}
	_, err := NewInputParser().ValidateConfiguration(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

package transform

import (
	"testing"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range []string{"new_dwelling", "as_company", "deposit_20", "occupied", "state_vic", "under_1m"} {
		tmpl, ok := registry.Get(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, tmpl.Description)
		_, err := ApplyTemplate(baseDescriptor(), tmpl)
		assert.NoError(t, err, name)
	}

	_, ok := registry.Get("NEW_DWELLING")
	assert.True(t, ok, "lookup is case-insensitive")
	_, ok = registry.Get("missing")
	assert.False(t, ok)

	names := registry.List()
	assert.IsIncreasing(t, names)
}

func TestApplyTemplate_Combination(t *testing.T) {
	base := baseDescriptor()
	base.DepositPercent = decimal.NewFromInt(5)
	tmpl, ok := CreateBuiltInTemplates().Get("new_dwelling_deposit_20")
	require.True(t, ok)

	out, err := ApplyTemplate(base, tmpl)
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyNewDwelling, out.PropertyType)
	assert.True(t, out.DepositPercent.Equal(decimal.NewFromInt(20)))
}

func TestApplyTemplate_Empty(t *testing.T) {
	_, err := ApplyTemplate(baseDescriptor(), Template{Name: "nothing"})
	assert.Error(t, err)
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"a", "b"}, ParseTemplateList(" a, ,b "))
}

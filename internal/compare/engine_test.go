package compare

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rgehrsitz/firbgo/internal/calculation"
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseDescriptor() domain.PropertyDescriptor {
	return domain.PropertyDescriptor{
		PropertyValue:  decimal.NewFromInt(800_000),
		PropertyType:   domain.PropertyEstablished,
		State:          domain.StateNSW,
		EntityType:     domain.EntityIndividual,
		DepositPercent: decimal.NewFromInt(10),
	}
}

func TestCompareStates_OrderAndMetrics(t *testing.T) {
	ce := NewCompareEngine(calculation.NewFeeEngine())

	set, err := ce.CompareStates(context.Background(), baseDescriptor(), nil)
	require.NoError(t, err)

	all := set.All()
	require.Len(t, all, len(domain.AllStates))
	for i, st := range domain.AllStates {
		assert.Equal(t, string(st), all[i].ScenarioName)
		assert.Equal(t, st, all[i].Breakdown.Descriptor.State)
	}
	assert.Equal(t, "NSW", set.BaseScenarioName)

	for _, alt := range set.AlternativeResults {
		assert.True(t, alt.UpfrontDiffFromBase.Equal(alt.GrandTotal.Sub(set.BaseResult.GrandTotal)))
		assert.True(t, alt.FiveYearCost.Equal(alt.GrandTotal.Add(alt.AnnualTotal.Mul(decimal.NewFromInt(5)))))
	}
}

func TestCompareStates_Subset(t *testing.T) {
	ce := NewCompareEngine(calculation.NewFeeEngine())

	set, err := ce.CompareStates(context.Background(), baseDescriptor(), []domain.State{domain.StateVIC, domain.StateNT})
	require.NoError(t, err)
	assert.Equal(t, "VIC", set.BaseScenarioName)
	require.Len(t, set.AlternativeResults, 1)
	assert.Equal(t, "NT", set.AlternativeResults[0].ScenarioName)

	// NT has no surcharge and no land tax, so it is the cheaper state
	require.NotEmpty(t, set.Alerts)
	var found bool
	for _, a := range set.Alerts {
		if a.Kind == AlertCheapestState {
			found = true
			assert.Contains(t, a.Message, "Buying in NT instead of VIC")
		}
	}
	assert.True(t, found)
}

func TestCompareStates_PropagatesErrors(t *testing.T) {
	ce := NewCompareEngine(calculation.NewFeeEngine())
	bad := baseDescriptor()
	bad.PropertyValue = decimal.Zero

	_, err := ce.CompareStates(context.Background(), bad, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDescriptor)
}

func TestCompareStates_CancelledContext(t *testing.T) {
	ce := NewCompareEngine(calculation.NewFeeEngine())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ce.CompareStates(ctx, baseDescriptor(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare_Templates(t *testing.T) {
	ce := NewCompareEngine(calculation.NewFeeEngine())

	set, err := ce.Compare(context.Background(), baseDescriptor(), CompareOptions{
		BaseScenarioName: "sydney",
		Templates:        []string{"new_dwelling", "deposit_20", "as_company"},
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 3)

	newDwelling := set.AlternativeResults[0]
	assert.Equal(t, "sydney_new_dwelling", newDwelling.ScenarioName)
	// FIRB 13,200 instead of 15,200
	assertDecimal(t, "-2000", newDwelling.UpfrontDiffFromBase)

	deposit := set.AlternativeResults[1]
	// LMI of 2% of 800k disappears
	assertDecimal(t, "-16000", deposit.UpfrontDiffFromBase)

	company := set.AlternativeResults[2]
	assertDecimal(t, "15200", company.UpfrontDiffFromBase)

	kinds := map[AlertKind]bool{}
	for _, a := range set.Alerts {
		kinds[a.Kind] = true
	}
	assert.True(t, kinds[AlertPropertyType])
	assert.True(t, kinds[AlertLMIAvoidance])
	assert.True(t, kinds[AlertVacancyExposure])
	assert.True(t, kinds[AlertCheaperOption])
	assert.False(t, kinds[AlertCheapestState], "single-state comparison has no state alert")

	for i := 1; i < len(set.Alerts); i++ {
		assert.True(t, set.Alerts[i-1].Amount.GreaterThanOrEqual(set.Alerts[i].Amount), "alerts sorted by amount")
	}
}

func TestCompare_Errors(t *testing.T) {
	ce := NewCompareEngine(calculation.NewFeeEngine())

	_, err := ce.Compare(context.Background(), baseDescriptor(), CompareOptions{Templates: []string{"missing"}})
	assert.ErrorContains(t, err, "template missing not found")

	bad := baseDescriptor()
	bad.DepositPercent = decimal.NewFromInt(-1)
	_, err = ce.Compare(context.Background(), bad, CompareOptions{})
	assert.ErrorContains(t, err, "failed to calculate base scenario")
}

func TestGenerateAlerts_NoBase(t *testing.T) {
	assert.Empty(t, GenerateAlerts(&ComparisonSet{}))
}

func TestComparisonSet_JSON(t *testing.T) {
	ce := NewCompareEngine(calculation.NewFeeEngine())
	set, err := ce.CompareStates(context.Background(), baseDescriptor(), []domain.State{domain.StateNSW, domain.StateQLD})
	require.NoError(t, err)

	out, err := (&JSONFormatter{Pretty: true}).Format(set)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "NSW", decoded["baseScenarioName"])
	assert.Len(t, decoded["alternativeResults"], 1)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

package transform

import (
	"testing"

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
		DepositPercent: decimal.NewFromInt(20),
	}
}

func TestApplyTransforms_DoesNotMutateBase(t *testing.T) {
	base := baseDescriptor()
	out, err := ApplyTransforms(base, []DescriptorTransform{
		&SetState{State: domain.StateVIC},
		&SetPropertyType{PropertyType: domain.PropertyNewDwelling},
		&ScaleValue{Factor: decimal.RequireFromString("1.5")},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StateVIC, out.State)
	assert.Equal(t, domain.PropertyNewDwelling, out.PropertyType)
	assert.True(t, out.PropertyValue.Equal(decimal.NewFromInt(1_200_000)))
	assert.Equal(t, baseDescriptor(), base)
}

func TestApplyTransforms_Empty(t *testing.T) {
	out, err := ApplyTransforms(baseDescriptor(), nil)
	require.NoError(t, err)
	assert.Equal(t, baseDescriptor(), out)
}

func TestApplyTransforms_Errors(t *testing.T) {
	_, err := ApplyTransforms(baseDescriptor(), []DescriptorTransform{nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 0 is nil")

	_, err = ApplyTransforms(baseDescriptor(), []DescriptorTransform{&SetDeposit{Percent: decimal.NewFromInt(150)}})
	require.Error(t, err)
	var te *TransformError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "set_deposit", te.TransformName)

	_, err = ApplyTransforms(baseDescriptor(), []DescriptorTransform{&SetValue{Value: decimal.Zero}})
	assert.Error(t, err)
}

func TestTransforms_NamesAndDescriptions(t *testing.T) {
	transforms := []DescriptorTransform{
		&SetState{State: domain.StateQLD},
		&SetPropertyType{PropertyType: domain.PropertyVacantLand},
		&SetEntityType{EntityType: domain.EntityTrust},
		&SetFirstHomeBuyer{FirstHomeBuyer: true},
		&SetDeposit{Percent: decimal.NewFromInt(10)},
		&SetValue{Value: decimal.NewFromInt(500_000)},
		&ScaleValue{Factor: decimal.NewFromInt(2)},
		&SetOccupancy{Occupancy: domain.OccupancyOccupied},
	}
	seen := map[string]bool{}
	for _, tr := range transforms {
		assert.NotEmpty(t, tr.Name())
		assert.NotEmpty(t, tr.Description())
		assert.False(t, seen[tr.Name()], "duplicate name %s", tr.Name())
		seen[tr.Name()] = true
		_, err := ApplyTransforms(baseDescriptor(), []DescriptorTransform{tr})
		assert.NoError(t, err, tr.Name())
	}
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec  string
		check func(t *testing.T, d domain.PropertyDescriptor)
	}{
		{"set_state:state=vic", func(t *testing.T, d domain.PropertyDescriptor) { assert.Equal(t, domain.StateVIC, d.State) }},
		{"set_property_type:type=vacant_land", func(t *testing.T, d domain.PropertyDescriptor) {
			assert.Equal(t, domain.PropertyVacantLand, d.PropertyType)
		}},
		{"set_entity_type:entity=company", func(t *testing.T, d domain.PropertyDescriptor) {
			assert.Equal(t, domain.EntityCompany, d.EntityType)
		}},
		{"set_first_home_buyer:value=yes", func(t *testing.T, d domain.PropertyDescriptor) { assert.True(t, d.FirstHomeBuyer) }},
		{"set_deposit:percent=35", func(t *testing.T, d domain.PropertyDescriptor) {
			assert.True(t, d.DepositPercent.Equal(decimal.NewFromInt(35)))
		}},
		{"set_value:value=1_500_000", func(t *testing.T, d domain.PropertyDescriptor) {
			assert.True(t, d.PropertyValue.Equal(decimal.NewFromInt(1_500_000)))
		}},
		{"scale_value:factor=0.5", func(t *testing.T, d domain.PropertyDescriptor) {
			assert.True(t, d.PropertyValue.Equal(decimal.NewFromInt(400_000)))
		}},
		{"set_occupancy:occupancy=vacant", func(t *testing.T, d domain.PropertyDescriptor) {
			assert.Equal(t, domain.OccupancyVacant, d.Occupancy)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(tt.spec)
			require.NoError(t, err)
			out, err := ApplyTransforms(baseDescriptor(), []DescriptorTransform{tr})
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestTransformRegistry_Errors(t *testing.T) {
	registry := NewTransformRegistry()

	for _, spec := range []string{
		"set_state",
		"unknown:x=1",
		"set_state:state",
		"set_deposit:amount=5",
		"set_value:value=abc",
		"set_property_type:type=castle",
		"set_first_home_buyer:value=maybe",
	} {
		_, err := registry.ParseTransformSpec(spec)
		assert.Error(t, err, spec)
	}

	assert.Len(t, registry.List(), 8)
	assert.Equal(t, "scale_value", registry.List()[0])
}

package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in descriptor templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []DescriptorTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the common
// cost-saving alternatives a foreign buyer weighs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Property type
	registry.Register(Template{
		Name:        "new_dwelling",
		Description: "Buy a new dwelling instead (lower FIRB schedule)",
		Transforms:  []DescriptorTransform{&SetPropertyType{PropertyType: domain.PropertyNewDwelling}},
	})
	registry.Register(Template{
		Name:        "established",
		Description: "Buy an established dwelling",
		Transforms:  []DescriptorTransform{&SetPropertyType{PropertyType: domain.PropertyEstablished}},
	})
	registry.Register(Template{
		Name:        "vacant_land",
		Description: "Buy vacant land instead (lowest FIRB schedule, no vacancy fee)",
		Transforms:  []DescriptorTransform{&SetPropertyType{PropertyType: domain.PropertyVacantLand}},
	})

	// Entity
	registry.Register(Template{
		Name:        "as_individual",
		Description: "Purchase as an individual",
		Transforms:  []DescriptorTransform{&SetEntityType{EntityType: domain.EntityIndividual}},
	})
	registry.Register(Template{
		Name:        "as_company",
		Description: "Purchase through a company (company FIRB schedule)",
		Transforms:  []DescriptorTransform{&SetEntityType{EntityType: domain.EntityCompany}},
	})
	registry.Register(Template{
		Name:        "as_trust",
		Description: "Purchase through a trust (company FIRB schedule)",
		Transforms:  []DescriptorTransform{&SetEntityType{EntityType: domain.EntityTrust}},
	})

	// Deposit
	for _, pct := range []int64{10, 20, 30} {
		registry.Register(Template{
			Name:        fmt.Sprintf("deposit_%d", pct),
			Description: fmt.Sprintf("Put down a %d%% deposit", pct),
			Transforms:  []DescriptorTransform{&SetDeposit{Percent: decimal.NewFromInt(pct)}},
		})
	}

	// Occupancy
	registry.Register(Template{
		Name:        "occupied",
		Description: "Keep the dwelling occupied (no vacancy fee)",
		Transforms:  []DescriptorTransform{&SetOccupancy{Occupancy: domain.OccupancyOccupied}},
	})
	registry.Register(Template{
		Name:        "vacant",
		Description: "Leave the dwelling vacant more than 183 days a year",
		Transforms:  []DescriptorTransform{&SetOccupancy{Occupancy: domain.OccupancyVacant}},
	})

	// Price
	registry.Register(Template{
		Name:        "price_minus_10pct",
		Description: "Buy 10% cheaper",
		Transforms:  []DescriptorTransform{&ScaleValue{Factor: decimal.RequireFromString("0.9")}},
	})
	registry.Register(Template{
		Name:        "under_1m",
		Description: "Buy just under $1m to stay in the first FIRB tier",
		Transforms:  []DescriptorTransform{&SetValue{Value: decimal.NewFromInt(999_999)}},
	})

	// States
	for _, st := range domain.AllStates {
		registry.Register(Template{
			Name:        "state_" + strings.ToLower(string(st)),
			Description: fmt.Sprintf("Buy in %s instead", st),
			Transforms:  []DescriptorTransform{&SetState{State: st}},
		})
	}

	// Combinations
	registry.Register(Template{
		Name:        "new_dwelling_deposit_20",
		Description: "New dwelling with a 20% deposit (lower FIRB fee, no LMI)",
		Transforms: []DescriptorTransform{
			&SetPropertyType{PropertyType: domain.PropertyNewDwelling},
			&SetDeposit{Percent: decimal.NewFromInt(20)},
		},
	})

	return registry
}

// ApplyTemplate applies all transforms in a template to a base descriptor
func ApplyTemplate(base domain.PropertyDescriptor, template Template) (domain.PropertyDescriptor, error) {
	if len(template.Transforms) == 0 {
		return base, fmt.Errorf("template %s has no transforms", template.Name)
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}

	return templates
}

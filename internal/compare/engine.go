package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/firbgo/internal/calculation"
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/rgehrsitz/firbgo/internal/transform"
	"golang.org/x/sync/errgroup"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Calc              calculation.Calculator
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calc calculation.Calculator) *CompareEngine {
	return &CompareEngine{
		Calc:              calc,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name shown for the base descriptor
	Templates        []string // List of template names to apply
}

// CompareStates prices the same purchase in each state. States default to all
// eight jurisdictions; the base result is the first state in the list.
// Results keep the order of states regardless of completion order.
func (ce *CompareEngine) CompareStates(ctx context.Context, base domain.PropertyDescriptor, states []domain.State) (*ComparisonSet, error) {
	if len(states) == 0 {
		states = domain.AllStates
	}

	breakdowns := make([]domain.FeeBreakdown, len(states))
	g, gctx := errgroup.WithContext(ctx)
	for i, st := range states {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d := base
			d.State = st
			b, err := ce.Calc.CalculateAllFees(d)
			if err != nil {
				return fmt.Errorf("failed to calculate %s: %w", st, err)
			}
			breakdowns[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(string(states[0]), breakdowns[0])
	baseResult.Description = fmt.Sprintf("Purchase in %s", states[0])
	alternatives := make([]ComparisonResult, 0, len(states)-1)
	for i := 1; i < len(states); i++ {
		alt := ce.MetricsCalculator.CalculateMetrics(string(states[i]), breakdowns[i])
		alt.Description = fmt.Sprintf("Purchase in %s", states[i])
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseResult.ScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Alerts = GenerateAlerts(compSet)
	return compSet, nil
}

// Compare prices the base descriptor and each named template applied to it
func (ce *CompareEngine) Compare(ctx context.Context, base domain.PropertyDescriptor, options CompareOptions) (*ComparisonSet, error) {
	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	baseBreakdown, err := ce.Calc.CalculateAllFees(base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseBreakdown)

	alternatives := []ComparisonResult{}
	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altBreakdown, err := ce.Calc.CalculateAllFees(modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(baseName+"_"+templateName, altBreakdown)
		altResult.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Alerts = GenerateAlerts(compSet)
	return compSet, nil
}

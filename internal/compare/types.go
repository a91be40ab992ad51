package compare

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/rgehrsitz/firbgo/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string              `json:"scenarioName"`
	Description  string              `json:"description"`
	Breakdown    domain.FeeBreakdown `json:"breakdown"`

	// Key Metrics
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	AnnualTotal    decimal.Decimal `json:"annualTotal"`
	FirstYearTotal decimal.Decimal `json:"firstYearTotal"`
	FiveYearCost   decimal.Decimal `json:"fiveYearCost"`

	// Comparison to Base (negative is cheaper)
	UpfrontDiffFromBase  decimal.Decimal `json:"upfrontDiffFromBase"`
	UpfrontPctFromBase   decimal.Decimal `json:"upfrontPctFromBase"`
	AnnualDiffFromBase   decimal.Decimal `json:"annualDiffFromBase"`
	FiveYearDiffFromBase decimal.Decimal `json:"fiveYearDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Alerts             []Alert            `json:"alerts"`
}

// All returns the base followed by the alternatives
func (cs *ComparisonSet) All() []ComparisonResult {
	out := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, *cs.BaseResult)
	}
	return append(out, cs.AlternativeResults...)
}

// AlertKind classifies a savings alert
type AlertKind string

const (
	AlertCheapestState   AlertKind = "cheapest_state"
	AlertPropertyType    AlertKind = "property_type"
	AlertLMIAvoidance    AlertKind = "lmi_avoidance"
	AlertVacancyExposure AlertKind = "vacancy_exposure"
	AlertCheaperOption   AlertKind = "cheaper_option"
)

// Alert is a savings opportunity or cost exposure found in a comparison
type Alert struct {
	Kind    AlertKind       `json:"kind"`
	Message string          `json:"message"`
	Amount  decimal.Decimal `json:"amount"`
}

// MetricsCalculator extracts key metrics from fee breakdowns
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a breakdown
func (mc *MetricsCalculator) CalculateMetrics(name string, b domain.FeeBreakdown) ComparisonResult {
	return ComparisonResult{
		ScenarioName:   name,
		Breakdown:      b,
		GrandTotal:     b.GrandTotal,
		AnnualTotal:    b.AnnualTotal,
		FirstYearTotal: b.FirstYearTotal,
		FiveYearCost:   b.FiveYearCost(),
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.UpfrontDiffFromBase = scenario.GrandTotal.Sub(base.GrandTotal)
	if !base.GrandTotal.IsZero() {
		scenario.UpfrontPctFromBase = scenario.UpfrontDiffFromBase.
			Div(base.GrandTotal).
			Mul(decimal.NewFromInt(100))
	}
	scenario.AnnualDiffFromBase = scenario.AnnualTotal.Sub(base.AnnualTotal)
	scenario.FiveYearDiffFromBase = scenario.FiveYearCost.Sub(base.FiveYearCost)
	return scenario
}

// GenerateAlerts surfaces savings opportunities and cost exposures
func GenerateAlerts(compSet *ComparisonSet) []Alert {
	alerts := []Alert{}
	if compSet.BaseResult == nil {
		return alerts
	}
	base := *compSet.BaseResult
	bd := base.Breakdown.Descriptor

	// Cheapest state by upfront cost, only when the set spans several states
	cheapest := base
	states := map[domain.State]bool{bd.State: true}
	for _, alt := range compSet.AlternativeResults {
		states[alt.Breakdown.Descriptor.State] = true
		if alt.Breakdown.Descriptor.State != bd.State && alt.GrandTotal.LessThan(cheapest.GrandTotal) {
			cheapest = alt
		}
	}
	if len(states) > 1 && cheapest.ScenarioName != base.ScenarioName {
		saving := base.GrandTotal.Sub(cheapest.GrandTotal)
		alerts = append(alerts, Alert{
			Kind: AlertCheapestState,
			Message: fmt.Sprintf("Buying in %s instead of %s saves %s upfront",
				cheapest.Breakdown.Descriptor.State, bd.State, output.FormatCurrency(saving)),
			Amount: saving,
		})
	}

	// Property type savings
	for _, alt := range compSet.AlternativeResults {
		ad := alt.Breakdown.Descriptor
		if ad.PropertyType == bd.PropertyType || ad.State != bd.State {
			continue
		}
		if alt.GrandTotal.LessThan(base.GrandTotal) {
			saving := base.GrandTotal.Sub(alt.GrandTotal)
			alerts = append(alerts, Alert{
				Kind:    AlertPropertyType,
				Message: fmt.Sprintf("Choosing %s over %s saves %s upfront", ad.PropertyType.Label(), bd.PropertyType.Label(), output.FormatCurrency(saving)),
				Amount:  saving,
			})
		}
	}

	// Other cheaper alternatives within the same state and property type
	for _, alt := range compSet.AlternativeResults {
		ad := alt.Breakdown.Descriptor
		if ad.State != bd.State || ad.PropertyType != bd.PropertyType {
			continue
		}
		if alt.FiveYearDiffFromBase.IsNegative() {
			alerts = append(alerts, Alert{
				Kind:    AlertCheaperOption,
				Message: fmt.Sprintf("%s lowers five year costs by %s", alt.ScenarioName, output.FormatCurrency(alt.FiveYearDiffFromBase.Neg())),
				Amount:  alt.FiveYearDiffFromBase.Neg(),
			})
		}
	}

	// LMI avoidance
	if base.Breakdown.LendersMortgageInsurance.IsPositive() {
		alerts = append(alerts, Alert{
			Kind: AlertLMIAvoidance,
			Message: fmt.Sprintf("A deposit of at least 20%% avoids an estimated %s in lenders mortgage insurance",
				output.FormatCurrency(base.Breakdown.LendersMortgageInsurance)),
			Amount: base.Breakdown.LendersMortgageInsurance,
		})
	}

	// Vacancy fee exposure
	if base.Breakdown.VacancyFeeContingent {
		alerts = append(alerts, Alert{
			Kind: AlertVacancyExposure,
			Message: fmt.Sprintf("Leaving the dwelling vacant for more than 183 days a year costs %s annually",
				output.FormatCurrency(base.Breakdown.VacancyFee)),
			Amount: base.Breakdown.VacancyFee,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Amount.GreaterThan(alerts[j].Amount)
	})
	return alerts
}

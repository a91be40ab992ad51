package breakeven

import (
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetGoal defines which costs the budget has to cover
type BudgetGoal string

const (
	GoalTotalOutlay  BudgetGoal = "total_outlay"  // price + upfront costs
	GoalFirstYear    BudgetGoal = "first_year"    // price + upfront costs + first year's annual costs
	GoalUpfrontCosts BudgetGoal = "upfront_costs" // upfront costs only, price funded elsewhere
)

// ParseBudgetGoal parses a goal name; empty selects GoalTotalOutlay
func ParseBudgetGoal(s string) (BudgetGoal, error) {
	switch BudgetGoal(s) {
	case "":
		return GoalTotalOutlay, nil
	case GoalTotalOutlay, GoalFirstYear, GoalUpfrontCosts:
		return BudgetGoal(s), nil
	}
	return "", &SolverError{Operation: "parse_goal", Message: "unknown budget goal " + s}
}

// AffordabilityRequest defines the parameters for an affordability search
type AffordabilityRequest struct {
	Base          domain.PropertyDescriptor `json:"base"`
	Budget        decimal.Decimal           `json:"budget"`
	Goal          BudgetGoal                `json:"goal"`
	MaxIterations int                       `json:"maxIterations,omitempty"`
	Tolerance     decimal.Decimal           `json:"tolerance,omitempty"`
}

// Validate checks the request is solvable
func (r *AffordabilityRequest) Validate() error {
	if !r.Budget.IsPositive() {
		return &SolverError{Operation: "validate_request", Message: "budget must be positive"}
	}
	if _, err := ParseBudgetGoal(string(r.Goal)); err != nil {
		return err
	}
	if r.Tolerance.IsNegative() {
		return &SolverError{Operation: "validate_request", Message: "tolerance cannot be negative"}
	}
	probe := r.Base
	probe.PropertyValue = decimal.NewFromInt(1)
	if err := probe.Validate(); err != nil {
		return &SolverError{Operation: "validate_request", Message: "invalid base descriptor", Cause: err}
	}
	return nil
}

// AffordabilityResult contains the outcome of an affordability search
type AffordabilityResult struct {
	Request         AffordabilityRequest `json:"request"`
	Success         bool                 `json:"success"`
	Iterations      int                  `json:"iterations"`
	ConvergenceInfo string               `json:"convergenceInfo"`

	MaxPropertyValue decimal.Decimal     `json:"maxPropertyValue"`
	Breakdown        domain.FeeBreakdown `json:"breakdown"`
	CostCovered      decimal.Decimal     `json:"costCovered"` // what the budget pays for at the max value
	Headroom         decimal.Decimal     `json:"headroom"`    // budget left unspent
}

// StateAffordability ranks states by the most property a budget buys
type StateAffordability struct {
	Results []AffordabilityResult `json:"results"`
	Best    *AffordabilityResult  `json:"best,omitempty"`

	Recommendations []string `json:"recommendations,omitempty"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Convergence tolerance on the property value
	MaxIterations int             // Maximum bisection steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 100,
	}
}

// SolverError represents errors from the affordability solver
type SolverError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolverError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}

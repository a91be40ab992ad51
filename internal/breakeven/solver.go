package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/firbgo/internal/calculation"
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	two      = decimal.NewFromInt(2)
	minValue = decimal.NewFromInt(1)
)

// Solver searches for the largest property value a budget can pay for
type Solver struct {
	Calc    calculation.Calculator
	Options SolverOptions
}

// NewSolver creates a new affordability solver
func NewSolver(calc calculation.Calculator, options SolverOptions) *Solver {
	return &Solver{
		Calc:    calc,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calc calculation.Calculator) *Solver {
	return NewSolver(calc, DefaultSolverOptions())
}

// MaxAffordable bisects over property value. Every fee is non-decreasing in
// value, so the affordable values form a single interval starting at zero.
func (s *Solver) MaxAffordable(ctx context.Context, req AffordabilityRequest) (*AffordabilityResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Goal == "" {
		req.Goal = GoalTotalOutlay
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	lo := minValue
	_, loCost, err := s.evaluate(req, lo)
	if err != nil {
		return nil, err
	}
	if loCost.GreaterThan(req.Budget) {
		return nil, &SolverError{
			Operation: "max_affordable",
			Message:   fmt.Sprintf("budget %s does not cover the fixed costs of %s", req.Budget.StringFixed(0), loCost.StringFixed(0)),
		}
	}

	// Price is part of the cost for every goal except upfront-only, so the
	// budget caps the search. Upfront costs alone are at least the surcharge
	// plus duty, which grow linearly, so a wide cap still converges.
	hi := req.Budget
	if req.Goal == GoalUpfrontCosts {
		hi = req.Budget.Mul(decimal.NewFromInt(1000))
	}
	if _, hiCost, err := s.evaluate(req, hi); err != nil {
		return nil, err
	} else if hiCost.LessThanOrEqual(req.Budget) {
		lo = hi
	}

	iterations := 0
	for hi.Sub(lo).GreaterThan(req.Tolerance) {
		if iterations >= req.MaxIterations {
			result := s.result(req, lo, iterations)
			result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
			return result, nil
		}
		iterations++

		select {
		case <-ctx.Done():
			return nil, &SolverError{Operation: "max_affordable", Message: "search cancelled", Cause: ctx.Err()}
		default:
		}

		mid := lo.Add(hi).Div(two).Round(2)
		if mid.Equal(lo) || mid.Equal(hi) {
			break
		}
		_, cost, err := s.evaluate(req, mid)
		if err != nil {
			return nil, err
		}
		if cost.LessThanOrEqual(req.Budget) {
			lo = mid
		} else {
			hi = mid
		}
	}

	result := s.result(req, lo, iterations)
	result.Success = true
	result.ConvergenceInfo = fmt.Sprintf("Converged within $%s", req.Tolerance.String())
	return result, nil
}

// evaluate prices the base descriptor at value and returns the cost the goal
// charges against the budget
func (s *Solver) evaluate(req AffordabilityRequest, value decimal.Decimal) (domain.FeeBreakdown, decimal.Decimal, error) {
	d := req.Base
	d.PropertyValue = value
	b, err := s.Calc.CalculateAllFees(d)
	if err != nil {
		return b, decimal.Zero, &SolverError{Operation: "evaluate", Message: "failed to calculate fees", Cause: err}
	}
	return b, costFor(req.Goal, b), nil
}

func costFor(goal BudgetGoal, b domain.FeeBreakdown) decimal.Decimal {
	switch goal {
	case GoalUpfrontCosts:
		return b.GrandTotal
	case GoalFirstYear:
		return b.Descriptor.PropertyValue.Add(b.FirstYearTotal)
	default:
		return b.Descriptor.PropertyValue.Add(b.GrandTotal)
	}
}

func (s *Solver) result(req AffordabilityRequest, value decimal.Decimal, iterations int) *AffordabilityResult {
	b, cost, err := s.evaluate(req, value)
	if err != nil {
		return &AffordabilityResult{Request: req, Iterations: iterations, MaxPropertyValue: value}
	}
	return &AffordabilityResult{
		Request:          req,
		Iterations:       iterations,
		MaxPropertyValue: value,
		Breakdown:        b,
		CostCovered:      cost,
		Headroom:         req.Budget.Sub(cost),
	}
}

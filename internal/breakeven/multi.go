package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/rgehrsitz/firbgo/internal/output"
	"github.com/rgehrsitz/firbgo/internal/transform"
	"github.com/shopspring/decimal"
)

// Gaps under 5% of the best value are not worth a recommendation
var twentieth = decimal.NewFromInt(20)

// AcrossStates runs the search once per state and ranks where the budget buys
// the most property. States default to all eight jurisdictions. A state whose
// fixed costs already exceed the budget is skipped rather than failing the run.
func (s *Solver) AcrossStates(ctx context.Context, req AffordabilityRequest, states []domain.State) (*StateAffordability, error) {
	if len(states) == 0 {
		states = domain.AllStates
	}

	out := &StateAffordability{}
	var lastErr error
	for _, st := range states {
		r := req
		r.Base = moveTo(req.Base, st)

		result, err := s.MaxAffordable(ctx, r)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			lastErr = err
			continue
		}
		out.Results = append(out.Results, *result)
	}

	if len(out.Results) == 0 {
		return nil, &SolverError{
			Operation: "across_states",
			Message:   "budget is not sufficient in any state",
			Cause:     lastErr,
		}
	}

	for i := range out.Results {
		if out.Best == nil || out.Results[i].MaxPropertyValue.GreaterThan(out.Best.MaxPropertyValue) {
			out.Best = &out.Results[i]
		}
	}
	out.Recommendations = recommendations(out)
	return out, nil
}

func moveTo(base domain.PropertyDescriptor, st domain.State) domain.PropertyDescriptor {
	moved, err := (&transform.SetState{State: st}).Apply(base)
	if err != nil {
		base.State = st
		return base
	}
	return moved
}

func recommendations(sa *StateAffordability) []string {
	var recs []string
	best := sa.Best
	recs = append(recs, fmt.Sprintf("%s stretches the budget furthest: up to %s of property",
		best.Request.Base.State, output.FormatCurrency(best.MaxPropertyValue)))

	for i := range sa.Results {
		r := &sa.Results[i]
		if r == best {
			continue
		}
		gap := best.MaxPropertyValue.Sub(r.MaxPropertyValue)
		if gap.IsPositive() && gap.GreaterThanOrEqual(best.MaxPropertyValue.Div(twentieth)) {
			recs = append(recs, fmt.Sprintf("Buying in %s instead of %s adds %s of purchasing power",
				best.Request.Base.State, r.Request.Base.State, output.FormatCurrency(gap)))
		}
	}
	return recs
}

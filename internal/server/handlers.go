package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rgehrsitz/firbgo/internal/breakeven"
	"github.com/rgehrsitz/firbgo/internal/config"
	"github.com/rgehrsitz/firbgo/internal/domain"
	"github.com/rgehrsitz/firbgo/internal/logging"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type feesResponse struct {
	Breakdown    domain.FeeBreakdown `json:"breakdown"`
	LineItems    []domain.LineItem   `json:"lineItems"`
	FiveYearCost decimal.Decimal     `json:"fiveYearCost"`
}

type compareStatesRequest struct {
	Property config.RawDescriptor `json:"property"`
	States   []string             `json:"states,omitempty"`
}

type affordabilityRequest struct {
	Property config.RawDescriptor `json:"property"`
	Budget   string               `json:"budget"`
	Goal     string               `json:"goal,omitempty"`
	States   []string             `json:"states,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":        "ok",
		"financialYear": s.calc.FinancialYear(),
	})
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.table)
}

func (s *Server) handleFees(w http.ResponseWriter, r *http.Request) {
	var raw config.RawDescriptor
	if !s.decode(w, r, &raw) {
		return
	}
	s.respondFees(w, r, raw)
}

func (s *Server) handleFeesQuery(w http.ResponseWriter, r *http.Request) {
	s.respondFees(w, r, rawFromQuery(r.URL.Query()))
}

func (s *Server) respondFees(w http.ResponseWriter, r *http.Request, raw config.RawDescriptor) {
	d, err := config.ParseDescriptor(raw)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	b, err := s.calc.CalculateAllFees(d)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if b.StateFallback {
		logging.FromContext(r.Context()).Warn("Unknown state priced with fallback rates", "state", d.State)
	}
	writeJSON(w, http.StatusOK, feesResponse{
		Breakdown:    b,
		LineItems:    b.LineItems(),
		FiveYearCost: b.FiveYearCost(),
	})
}

func (s *Server) handleCompareStates(w http.ResponseWriter, r *http.Request) {
	var req compareStatesRequest
	if !s.decode(w, r, &req) {
		return
	}
	d, err := config.ParseDescriptor(req.Property)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	set, err := s.compare.CompareStates(r.Context(), d, parseStates(req.States))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleAffordability(w http.ResponseWriter, r *http.Request) {
	var req affordabilityRequest
	if !s.decode(w, r, &req) {
		return
	}

	// The solver picks the value, so any placeholder satisfies the parser
	if req.Property.PropertyValue == "" {
		req.Property.PropertyValue = "1"
	}
	d, err := config.ParseDescriptor(req.Property)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	budget, err := config.ParseAmount("budget", req.Budget)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if !budget.IsPositive() {
		writeError(w, http.StatusBadRequest, "budget must be greater than zero", "budget")
		return
	}
	goal, err := breakeven.ParseBudgetGoal(req.Goal)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "goal")
		return
	}

	solveReq := breakeven.AffordabilityRequest{Base: d, Budget: budget, Goal: goal}
	if len(req.States) == 0 {
		result, err := s.solver.MaxAffordable(r.Context(), solveReq)
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	result, err := s.solver.AcrossStates(r.Context(), solveReq, parseStates(req.States))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		logging.FromContext(r.Context()).Debug("Rejected request body", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), "")
		return false
	}
	return true
}

// writeFailure maps domain errors onto status codes. Input problems are the
// caller's fault; anything else is logged as a server error.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if fe, ok := config.AsFieldError(err); ok {
		writeError(w, http.StatusBadRequest, fe.Error(), fe.Field)
		return
	}
	if errors.Is(err, domain.ErrInvalidDescriptor) {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	var se *breakeven.SolverError
	if errors.As(err, &se) && r.Context().Err() == nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "")
		return
	}
	logging.FromContext(r.Context()).Error("Request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error", "")
}

func rawFromQuery(q url.Values) config.RawDescriptor {
	return config.RawDescriptor{
		PropertyValue:  q.Get("propertyValue"),
		PropertyType:   q.Get("propertyType"),
		State:          q.Get("state"),
		EntityType:     q.Get("entityType"),
		FirstHomeBuyer: q.Get("firstHomeBuyer"),
		DepositPercent: q.Get("depositPercent"),
		Occupancy:      q.Get("occupancy"),
	}
}

func parseStates(in []string) []domain.State {
	var states []domain.State
	for _, s := range in {
		if st := domain.ParseState(s); st != "" {
			states = append(states, st)
		}
	}
	return states
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, field string) {
	writeJSON(w, status, errorResponse{Error: message, Field: field})
}

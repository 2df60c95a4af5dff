package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rgehrsitz/cadpay/internal/budget"
	"github.com/shopspring/decimal"
)

type totalRequest struct {
	Total decimal.Decimal `json:"total"`
}

type categoryRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Color  string          `json:"color"`
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	Success(w, s.snapshot(), RequestID(r))
}

func (s *Server) handleBudgetTotal(w http.ResponseWriter, r *http.Request) {
	var req totalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", RequestID(r))
		return
	}
	if err := s.Planner.SetTotal(req.Total); err != nil {
		Fail(w, http.StatusBadRequest, "bad_request", err.Error(), RequestID(r))
		return
	}
	Success(w, s.snapshot(), RequestID(r))
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", RequestID(r))
		return
	}
	c, err := s.Planner.AddCategory(req.Name, req.Amount, req.Color)
	switch {
	case errors.Is(err, budget.ErrDuplicateCategory):
		Fail(w, http.StatusConflict, "conflict", err.Error(), RequestID(r))
		return
	case errors.Is(err, budget.ErrExceedsBudget):
		Fail(w, http.StatusUnprocessableEntity, "unprocessable", err.Error(), RequestID(r))
		return
	case err != nil:
		Fail(w, http.StatusBadRequest, "bad_request", err.Error(), RequestID(r))
		return
	}
	s.snapshot()
	Created(w, c, RequestID(r))
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	// chi routes on RawPath only when the request carried escapes that
	// Path cannot represent, so only then is the param still encoded
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			Fail(w, http.StatusBadRequest, "bad_request", "invalid category name", RequestID(r))
			return
		}
		name = unescaped
	}
	if !s.Planner.RemoveCategory(name) {
		Fail(w, http.StatusNotFound, "not_found", "category not found", RequestID(r))
		return
	}
	s.snapshot()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetCategories(w http.ResponseWriter, r *http.Request) {
	s.Planner.ResetCategories()
	s.snapshot()
	w.WriteHeader(http.StatusNoContent)
}

// snapshot reads the planner and refreshes the allocation gauge
func (s *Server) snapshot() budget.Summary {
	summary := s.Planner.Snapshot()
	s.metrics.budgetAllocated.Set(summary.Allocated.InexactFloat64())
	return summary
}

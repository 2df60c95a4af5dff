package api

import (
	"encoding/json"
	"net/http"

	"github.com/rgehrsitz/cadpay/internal/breakeven"
	"github.com/rgehrsitz/cadpay/internal/compare"
	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
)

type compareRequest struct {
	TaxableIncome decimal.Decimal `json:"taxableIncome"`
	Base          string          `json:"base"`
	Jurisdictions []string        `json:"jurisdictions"`
	Year          domain.TaxYear  `json:"year"`
}

type breakevenRequest struct {
	TargetNet    decimal.Decimal `json:"targetNet"`
	Jurisdiction string          `json:"jurisdiction"`
	All          bool            `json:"all"`
	Year         domain.TaxYear  `json:"year"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", RequestID(r))
		return
	}
	base, err := domain.ParseJurisdiction(req.Base)
	if err != nil {
		Fail(w, http.StatusBadRequest, "bad_request", err.Error(), RequestID(r))
		return
	}
	alternatives := make([]domain.Jurisdiction, 0, len(req.Jurisdictions))
	for _, name := range req.Jurisdictions {
		j, err := domain.ParseJurisdiction(name)
		if err != nil {
			Fail(w, http.StatusBadRequest, "bad_request", err.Error(), RequestID(r))
			return
		}
		alternatives = append(alternatives, j)
	}

	compSet, err := compare.NewCompareEngine(s.Engine).Compare(r.Context(), compare.CompareOptions{
		Income:        req.TaxableIncome,
		Year:          s.year(req.Year),
		Base:          base,
		Jurisdictions: alternatives,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, compSet, RequestID(r))
}

func (s *Server) handleBreakeven(w http.ResponseWriter, r *http.Request) {
	var req breakevenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", RequestID(r))
		return
	}
	year := s.year(req.Year)
	solver := breakeven.NewDefaultSolver(s.Engine)

	if req.All {
		result, err := solver.SolveAll(r.Context(), req.TargetNet, year, nil)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		Success(w, result, RequestID(r))
		return
	}

	j, err := domain.ParseJurisdiction(req.Jurisdiction)
	if err != nil {
		Fail(w, http.StatusBadRequest, "bad_request", err.Error(), RequestID(r))
		return
	}
	result, err := solver.Solve(r.Context(), breakeven.Request{TargetNet: req.TargetNet, Jurisdiction: j, Year: year})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	Success(w, result, RequestID(r))
}

func (s *Server) year(y domain.TaxYear) domain.TaxYear {
	if y == 0 {
		return s.DefaultYear
	}
	return y
}

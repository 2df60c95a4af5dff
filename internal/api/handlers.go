package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rgehrsitz/cadpay/internal/calculation"
	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
)

type jurisdictionInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type deductionsRequest struct {
	TaxableIncome decimal.Decimal `json:"taxableIncome"`
	Jurisdiction  string          `json:"jurisdiction"`
	Year          domain.TaxYear  `json:"year"`
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	Success(w, s.Engine.Tables.Years(), RequestID(r))
}

func (s *Server) handleJurisdictions(w http.ResponseWriter, r *http.Request) {
	out := make([]jurisdictionInfo, 0, len(domain.Jurisdictions))
	for _, j := range domain.Jurisdictions {
		out = append(out, jurisdictionInfo{Code: string(j), Name: j.Name()})
	}
	Success(w, out, RequestID(r))
}

func (s *Server) handleDeductions(w http.ResponseWriter, r *http.Request) {
	var req deductionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", RequestID(r))
		return
	}
	j, err := domain.ParseJurisdiction(req.Jurisdiction)
	if err != nil {
		Fail(w, http.StatusBadRequest, "bad_request", err.Error(), RequestID(r))
		return
	}
	year := s.year(req.Year)

	result, err := s.Engine.PayrollDeductions(req.TaxableIncome, j, year)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.calculations.WithLabelValues(string(j), year.String()).Inc()
	Success(w, result, RequestID(r))
}

func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	req := calculation.DefaultIncomeRequest()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Fail(w, http.StatusBadRequest, "bad_request", "invalid JSON body", RequestID(r))
		return
	}
	req.Year = s.year(req.Year)

	summary, err := s.Engine.Income(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.calculations.WithLabelValues(string(req.Jurisdiction), req.Year.String()).Inc()
	Success(w, summary, RequestID(r))
}

// fail maps engine errors onto HTTP statuses
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNegativeIncome), errors.Is(err, calculation.ErrInvalidIncomeRequest):
		Fail(w, http.StatusBadRequest, "bad_request", err.Error(), RequestID(r))
	case errors.Is(err, domain.ErrUnknownTaxYear), errors.Is(err, domain.ErrUnknownJurisdiction):
		Fail(w, http.StatusUnprocessableEntity, "unprocessable", err.Error(), RequestID(r))
	default:
		s.Logger.Error("calculation failed", "err", err, "requestId", RequestID(r))
		Fail(w, http.StatusInternalServerError, "internal", "internal error", RequestID(r))
	}
}

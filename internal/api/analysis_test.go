package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rgehrsitz/cadpay/internal/breakeven"
	"github.com/rgehrsitz/cadpay/internal/compare"
	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	rec, env := do(t, h, http.MethodPost, "/api/v1/compare",
		`{"taxableIncome": 20000, "base": "AB", "jurisdictions": ["Ontario"], "year": 2025}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var compSet compare.ComparisonSet
	require.NoError(t, json.Unmarshal(env.Data, &compSet))
	assert.Equal(t, domain.Alberta, compSet.BaseJurisdiction)
	require.Len(t, compSet.AlternativeResults, 1)
	assert.True(t, compSet.AlternativeResults[0].NetDiffFromBase.Equal(decimal.NewFromInt(590)))

	rec, env = do(t, h, http.MethodPost, "/api/v1/compare", `{"taxableIncome": 50000, "base": "QC"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &compSet))
	assert.Equal(t, srv.DefaultYear, compSet.Year)
	assert.Len(t, compSet.AlternativeResults, len(domain.Jurisdictions)-1)
}

func TestCompareErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed body", `[`, http.StatusBadRequest},
		{"unknown base", `{"taxableIncome": 1000, "base": "ZZ"}`, http.StatusBadRequest},
		{"unknown alternative", `{"taxableIncome": 1000, "base": "ON", "jurisdictions": ["ZZ"]}`, http.StatusBadRequest},
		{"negative income", `{"taxableIncome": -5, "base": "ON"}`, http.StatusBadRequest},
		{"unknown year", `{"taxableIncome": 1000, "base": "ON", "year": 1999}`, http.StatusUnprocessableEntity},
	}

	srv, _ := newTestServer(t)
	h := srv.Routes()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, "/api/v1/compare", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestBreakeven(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	rec, env := do(t, h, http.MethodPost, "/api/v1/breakeven",
		`{"targetNet": "14190.25", "jurisdiction": "AB", "year": 2025}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result breakeven.Result
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Success)
	assert.True(t, result.GrossIncome.Sub(decimal.NewFromInt(20000)).Abs().LessThanOrEqual(decimal.NewFromFloat(0.02)),
		"gross %s", result.GrossIncome)

	rec, env = do(t, h, http.MethodPost, "/api/v1/breakeven", `{"targetNet": 40000, "all": true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var multi breakeven.MultiJurisdictionResult
	require.NoError(t, json.Unmarshal(env.Data, &multi))
	assert.Len(t, multi.Results, len(domain.Jurisdictions))
	assert.Equal(t, srv.DefaultYear, multi.Year)
}

func TestBreakevenErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Routes()

	rec, _ := do(t, h, http.MethodPost, "/api/v1/breakeven", `{"targetNet": -1, "jurisdiction": "ON"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/breakeven", `{"targetNet": 100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/breakeven", `{"targetNet": 100, "jurisdiction": "ON", "year": 1999}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

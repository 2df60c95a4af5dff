package breakeven

import (
	"context"
	"sort"

	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
)

// MultiJurisdictionResult ranks the break-even income for one target net
// across several jurisdictions
type MultiJurisdictionResult struct {
	TargetNet decimal.Decimal `json:"targetNet"`
	Year      domain.TaxYear  `json:"year"`
	Results   []Result        `json:"results"` // ascending by gross income
	Lowest    *Result         `json:"lowest"`
	Highest   *Result         `json:"highest"`
}

// SolveAll solves the same target in every jurisdiction given, or all of
// them when none are given
func (s *Solver) SolveAll(ctx context.Context, targetNet decimal.Decimal, year domain.TaxYear, jurisdictions []domain.Jurisdiction) (*MultiJurisdictionResult, error) {
	if len(jurisdictions) == 0 {
		jurisdictions = domain.Jurisdictions
	}

	results := make([]Result, 0, len(jurisdictions))
	for _, j := range jurisdictions {
		result, err := s.Solve(ctx, Request{TargetNet: targetNet, Jurisdiction: j, Year: year})
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].GrossIncome.LessThan(results[b].GrossIncome)
	})

	return &MultiJurisdictionResult{
		TargetNet: targetNet,
		Year:      year,
		Results:   results,
		Lowest:    &results[0],
		Highest:   &results[len(results)-1],
	}, nil
}

// Package compare ranks the payroll deductions for one income across
// jurisdictions.
package compare

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/cadpay/internal/calculation"
	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine orchestrates jurisdiction comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Income        decimal.Decimal
	Year          domain.TaxYear
	Base          domain.Jurisdiction   // Jurisdiction the others are measured against
	Jurisdictions []domain.Jurisdiction // Alternatives; empty means every other jurisdiction
}

// Compare computes deductions for the base and each alternative and orders
// the alternatives by net income, highest first
func (ce *CompareEngine) Compare(ctx context.Context, options CompareOptions) (*ComparisonSet, error) {
	if !options.Base.Valid() {
		return nil, fmt.Errorf("base %w: %q", domain.ErrUnknownJurisdiction, string(options.Base))
	}

	baseResult, err := ce.calculate(options.Income, options.Base, options.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base jurisdiction: %w", err)
	}

	alternatives := options.Jurisdictions
	if len(alternatives) == 0 {
		for _, j := range domain.Jurisdictions {
			if j != options.Base {
				alternatives = append(alternatives, j)
			}
		}
	}

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, j := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if j == options.Base {
			continue
		}

		altResult, err := ce.calculate(options.Income, j, options.Year)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", j, err)
		}
		results = append(results, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].NetIncome.GreaterThan(results[b].NetIncome)
	})

	compSet := &ComparisonSet{
		Income:             options.Income,
		Year:               options.Year,
		BaseJurisdiction:   options.Base,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	ce.CalcEngine.Logger.Debugf("compared %d jurisdictions against %s at %s", len(results), options.Base, options.Income)

	return compSet, nil
}

func (ce *CompareEngine) calculate(income decimal.Decimal, j domain.Jurisdiction, year domain.TaxYear) (ComparisonResult, error) {
	deductions, err := ce.CalcEngine.PayrollDeductions(income, j, year)
	if err != nil {
		return ComparisonResult{}, err
	}
	marginal, err := ce.CalcEngine.CombinedMarginalRate(income, j, year)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(deductions, marginal), nil
}

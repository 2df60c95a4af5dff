package compare

import (
	"fmt"

	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/rgehrsitz/cadpay/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult holds the deductions for one jurisdiction at the
// compared income
type ComparisonResult struct {
	Jurisdiction domain.Jurisdiction             `json:"jurisdiction"`
	Name         string                          `json:"name"`
	Deductions   *domain.PayrollDeductionsResult `json:"deductions"`

	// Key Metrics
	NetIncome          decimal.Decimal `json:"netIncome"`
	TotalTax           decimal.Decimal `json:"totalTax"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	EffectiveRate      decimal.Decimal `json:"effectiveRate"`
	MarginalRate       decimal.Decimal `json:"marginalRate"`

	// Comparison to Base
	NetDiffFromBase decimal.Decimal `json:"netDiffFromBase"`
	NetPctFromBase  decimal.Decimal `json:"netPctFromBase"`
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
}

// ComparisonSet is a base jurisdiction and its alternatives at one income
type ComparisonSet struct {
	Income             decimal.Decimal     `json:"income"`
	Year               domain.TaxYear      `json:"year"`
	BaseJurisdiction   domain.Jurisdiction `json:"baseJurisdiction"`
	BaseResult         *ComparisonResult   `json:"baseResult"`
	AlternativeResults []ComparisonResult  `json:"alternativeResults"`
	Recommendations    []string            `json:"recommendations"`
}

// MetricsCalculator extracts key metrics from deduction results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics builds a comparison row from one deductions result
func (mc *MetricsCalculator) CalculateMetrics(deductions *domain.PayrollDeductionsResult, marginalRate decimal.Decimal) ComparisonResult {
	return ComparisonResult{
		Jurisdiction:       deductions.Jurisdiction,
		Name:               deductions.Jurisdiction.Name(),
		Deductions:         deductions,
		NetIncome:          deductions.NetIncome,
		TotalTax:           deductions.TotalTax,
		TotalContributions: deductions.TotalContributions,
		EffectiveRate:      deductions.EffectiveRate(),
		MarginalRate:       marginalRate,
	}
}

// CalculateComparison fills in the differences from base
func (mc *MetricsCalculator) CalculateComparison(result, base ComparisonResult) ComparisonResult {
	result.NetDiffFromBase = result.NetIncome.Sub(base.NetIncome)

	if !base.NetIncome.IsZero() {
		result.NetPctFromBase = result.NetDiffFromBase.
			Div(base.NetIncome).
			Mul(decimal.NewFromInt(100))
	}

	result.TaxDiffFromBase = result.TotalTax.Sub(base.TotalTax)

	return result
}

// GenerateRecommendations summarizes where the alternatives beat the base
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	base := compSet.BaseResult

	bestNet := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.NetIncome.GreaterThan(bestNet.NetIncome) {
			bestNet = alt
		}
	}
	if bestNet != base {
		recommendations = append(recommendations,
			"Highest Net Income: "+bestNet.Name+" keeps "+output.FormatCurrency(bestNet.NetIncome.Sub(base.NetIncome))+
				" more than "+base.Name)
	}

	lowestTax := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalTax.LessThan(lowestTax.TotalTax) {
			lowestTax = alt
		}
	}
	if lowestTax != base {
		recommendations = append(recommendations,
			"Lowest Income Tax: "+lowestTax.Name+" saves "+output.FormatCurrency(base.TotalTax.Sub(lowestTax.TotalTax))+
				" in income tax")
	}

	lowestMarginal := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.MarginalRate.LessThan(lowestMarginal.MarginalRate) {
			lowestMarginal = alt
		}
	}
	if lowestMarginal != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Marginal Rate: %s taxes the next dollar at %s (base %s)",
				lowestMarginal.Name,
				output.FormatPercentage(lowestMarginal.MarginalRate),
				output.FormatPercentage(base.MarginalRate)))
	}

	return recommendations
}

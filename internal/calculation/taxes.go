package calculation

import (
	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateProgressiveTax partitions income into marginal slices, one per
// bracket, and sums slice * rate. Upper bounds are inclusive: income equal
// to a threshold is taxed entirely within that bracket. A negative income
// is treated as zero.
func CalculateProgressiveTax(income decimal.Decimal, brackets domain.Schedule) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	totalTax := decimal.Zero
	previousThreshold := decimal.Zero

	for _, bracket := range brackets {
		currentThreshold := income
		if bracket.IncomeUpToInclusive != nil {
			currentThreshold = *bracket.IncomeUpToInclusive
		}

		slice := decimal.Min(income, currentThreshold).Sub(previousThreshold)
		if slice.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(slice.Mul(bracket.Rate))
		}

		if income.LessThanOrEqual(currentThreshold) {
			break
		}
		previousThreshold = currentThreshold
	}

	return totalTax
}

// MarginalRate returns the rate applied to the last dollar of income
func MarginalRate(income decimal.Decimal, brackets domain.Schedule) decimal.Decimal {
	for _, bracket := range brackets {
		if bracket.IncomeUpToInclusive == nil || income.LessThanOrEqual(*bracket.IncomeUpToInclusive) {
			return bracket.Rate
		}
	}
	return decimal.Zero
}

// CalculateContribution applies a two-tier capped CPP/QPP rule. Neither
// tier taxes income above its own ceiling.
func CalculateContribution(income decimal.Decimal, rule domain.ContributionRule) decimal.Decimal {
	if income.LessThanOrEqual(rule.BasicExemption) {
		return decimal.Zero
	}

	primaryEarnings := decimal.Min(income, rule.PrimaryCeiling).Sub(rule.BasicExemption)
	primary := decimal.Max(decimal.Zero, primaryEarnings).Mul(rule.PrimaryRate)

	secondary := decimal.Zero
	if income.GreaterThan(rule.PrimaryCeiling) {
		secondaryEarnings := decimal.Min(income, rule.SecondaryCeiling).Sub(rule.PrimaryCeiling)
		secondary = decimal.Max(decimal.Zero, secondaryEarnings).Mul(rule.SecondaryRate)
	}

	return primary.Add(secondary)
}

// CalculatePremium applies a capped-earnings premium
func CalculatePremium(income decimal.Decimal, rule domain.PremiumRule) decimal.Decimal {
	if income.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.Min(income, rule.InsurableEarningsCeiling).Mul(rule.Rate)
}

package calculation

import (
	"testing"

	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// federal2025 mirrors the built-in 2025 federal schedule
var federal2025 = domain.Schedule{
	{IncomeUpToInclusive: bound(57375), Rate: rate("0.145")},
	{IncomeUpToInclusive: bound(114750), Rate: rate("0.205")},
	{IncomeUpToInclusive: bound(177882), Rate: rate("0.26")},
	{IncomeUpToInclusive: bound(253414), Rate: rate("0.29")},
	{IncomeUpToInclusive: nil, Rate: rate("0.33")},
}

var ontario2025 = domain.Schedule{
	{IncomeUpToInclusive: bound(52886), Rate: rate("0.0505")},
	{IncomeUpToInclusive: bound(105775), Rate: rate("0.0915")},
	{IncomeUpToInclusive: bound(150000), Rate: rate("0.1116")},
	{IncomeUpToInclusive: bound(220000), Rate: rate("0.1216")},
	{IncomeUpToInclusive: nil, Rate: rate("0.1316")},
}

func TestCalculateProgressiveTax(t *testing.T) {
	tests := []struct {
		name     string
		income   decimal.Decimal
		brackets domain.Schedule
		expected decimal.Decimal
	}{
		{"zero income", decimal.Zero, federal2025, decimal.Zero},
		{"negative income treated as zero", decimal.NewFromInt(-500), federal2025, decimal.Zero},
		{"first bracket only", decimal.NewFromInt(20000), federal2025, rate("2900")},
		{"exactly on first threshold", decimal.NewFromInt(57375), federal2025, rate("8319.375")},
		{"one dollar past first threshold", decimal.NewFromInt(57376), federal2025, rate("8319.58")},
		{"two brackets", decimal.NewFromInt(60000), federal2025, rate("8857.5")},
		{"four brackets", decimal.NewFromInt(200000), federal2025, rate("42909.79")},
		{"top open bracket", decimal.NewFromInt(300000), federal2025, rate("73773.23")},
		{"ontario two brackets", decimal.NewFromInt(60000), ontario2025, rate("3321.674")},
		{"empty schedule", decimal.NewFromInt(1000), domain.Schedule{}, decimal.Zero},
		{
			"single open bracket",
			decimal.NewFromInt(1000),
			domain.Schedule{{IncomeUpToInclusive: nil, Rate: rate("0.1")}},
			rate("100"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateProgressiveTax(tt.income, tt.brackets)
			assert.True(t, tt.expected.Equal(result), "expected %s, got %s", tt.expected, result)
		})
	}
}

func TestCalculateProgressiveTax_Monotonic(t *testing.T) {
	previous := decimal.Zero
	for income := int64(0); income <= 400000; income += 2500 {
		tax := CalculateProgressiveTax(decimal.NewFromInt(income), federal2025)
		assert.True(t, tax.GreaterThanOrEqual(previous), "tax decreased at %d: %s < %s", income, tax, previous)
		assert.True(t, tax.LessThanOrEqual(decimal.NewFromInt(income)), "tax exceeds income at %d", income)
		previous = tax
	}
}

func TestMarginalRate(t *testing.T) {
	assert.True(t, MarginalRate(decimal.NewFromInt(57375), federal2025).Equal(rate("0.145")))
	assert.True(t, MarginalRate(decimal.NewFromInt(57376), federal2025).Equal(rate("0.205")))
	assert.True(t, MarginalRate(decimal.NewFromInt(1000000), federal2025).Equal(rate("0.33")))
	assert.True(t, MarginalRate(decimal.NewFromInt(1000), domain.Schedule{}).IsZero())
}

var cpp2025 = domain.ContributionRule{
	BasicExemption:   decimal.NewFromInt(3500),
	PrimaryCeiling:   decimal.NewFromInt(71300),
	PrimaryRate:      rate("0.0595"),
	SecondaryCeiling: decimal.NewFromInt(81200),
	SecondaryRate:    rate("0.04"),
}

func TestCalculateContribution(t *testing.T) {
	tests := []struct {
		name     string
		income   decimal.Decimal
		expected decimal.Decimal
	}{
		{"zero income", decimal.Zero, decimal.Zero},
		{"below basic exemption", decimal.NewFromInt(3000), decimal.Zero},
		{"at basic exemption", decimal.NewFromInt(3500), decimal.Zero},
		{"primary tier", decimal.NewFromInt(60000), rate("3361.75")},
		{"at primary ceiling", decimal.NewFromInt(71300), rate("4034.1")},
		{"secondary tier", decimal.NewFromInt(75000), rate("4182.1")},
		{"above secondary ceiling", decimal.NewFromInt(100000), rate("4430.1")},
		{"far above ceilings", decimal.NewFromInt(1000000), rate("4430.1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateContribution(tt.income, cpp2025)
			assert.True(t, tt.expected.Equal(result), "expected %s, got %s", tt.expected, result)
		})
	}
}

func TestCalculatePremium(t *testing.T) {
	ei := domain.PremiumRule{InsurableEarningsCeiling: decimal.NewFromInt(65700), Rate: rate("0.0164")}

	tests := []struct {
		name     string
		income   decimal.Decimal
		expected decimal.Decimal
	}{
		{"zero income", decimal.Zero, decimal.Zero},
		{"negative income", decimal.NewFromInt(-10), decimal.Zero},
		{"below ceiling", decimal.NewFromInt(60000), rate("984")},
		{"at ceiling", decimal.NewFromInt(65700), rate("1077.48")},
		{"above ceiling", decimal.NewFromInt(100000), rate("1077.48")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePremium(tt.income, ei)
			assert.True(t, tt.expected.Equal(result), "expected %s, got %s", tt.expected, result)
		})
	}
}

package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/cadpay/internal/calculation"
	"github.com/rgehrsitz/cadpay/internal/config"
	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompareEngine(t *testing.T) *CompareEngine {
	t.Helper()
	tables, err := config.DefaultTables()
	require.NoError(t, err)
	return NewCompareEngine(calculation.NewEngine(tables))
}

func TestCompareEngine_Compare(t *testing.T) {
	ce := newTestCompareEngine(t)

	compSet, err := ce.Compare(context.Background(), CompareOptions{
		Income:        decimal.NewFromInt(20000),
		Year:          2025,
		Base:          domain.Alberta,
		Jurisdictions: []domain.Jurisdiction{domain.Ontario, domain.Alberta},
	})
	require.NoError(t, err)

	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, domain.Alberta, compSet.BaseJurisdiction)
	assert.True(t, compSet.BaseResult.NetIncome.Equal(decimal.RequireFromString("14190.25")), compSet.BaseResult.NetIncome.String())
	assert.True(t, compSet.BaseResult.MarginalRate.Equal(decimal.RequireFromString("0.225")))

	// the base is skipped when listed among the alternatives
	require.Len(t, compSet.AlternativeResults, 1)
	on := compSet.AlternativeResults[0]
	assert.Equal(t, domain.Ontario, on.Jurisdiction)
	assert.True(t, on.TotalTax.Equal(decimal.NewFromInt(3910)), on.TotalTax.String())
	assert.True(t, on.NetDiffFromBase.Equal(decimal.NewFromInt(590)), on.NetDiffFromBase.String())
	assert.True(t, on.TaxDiffFromBase.Equal(decimal.NewFromInt(-590)), on.TaxDiffFromBase.String())

	require.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, compSet.Recommendations[0], "Ontario keeps $590.00 more than Alberta")
}

func TestCompareEngine_Compare_AllJurisdictions(t *testing.T) {
	ce := newTestCompareEngine(t)

	compSet, err := ce.Compare(context.Background(), CompareOptions{
		Income: decimal.NewFromInt(85000),
		Year:   2025,
		Base:   domain.Ontario,
	})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, len(domain.Jurisdictions)-1)

	for i, alt := range compSet.AlternativeResults {
		assert.NotEqual(t, domain.Ontario, alt.Jurisdiction)
		assert.True(t, alt.NetIncome.Equal(compSet.BaseResult.NetIncome.Add(alt.NetDiffFromBase)))
		if i > 0 {
			assert.True(t, compSet.AlternativeResults[i-1].NetIncome.GreaterThanOrEqual(alt.NetIncome), "alternatives not ordered by net income")
		}
	}
}

func TestCompareEngine_Compare_Errors(t *testing.T) {
	ce := newTestCompareEngine(t)
	ctx := context.Background()

	_, err := ce.Compare(ctx, CompareOptions{Income: decimal.NewFromInt(1000), Year: 2025, Base: "ZZ"})
	assert.ErrorIs(t, err, domain.ErrUnknownJurisdiction)

	_, err = ce.Compare(ctx, CompareOptions{Income: decimal.NewFromInt(-1), Year: 2025, Base: domain.Ontario})
	assert.ErrorIs(t, err, domain.ErrNegativeIncome)

	_, err = ce.Compare(ctx, CompareOptions{Income: decimal.NewFromInt(1000), Year: 1990, Base: domain.Ontario})
	assert.ErrorIs(t, err, domain.ErrUnknownTaxYear)

	_, err = ce.Compare(ctx, CompareOptions{
		Income:        decimal.NewFromInt(1000),
		Year:          2025,
		Base:          domain.Ontario,
		Jurisdictions: []domain.Jurisdiction{"XX"},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownJurisdiction)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = ce.Compare(cancelled, CompareOptions{Income: decimal.NewFromInt(1000), Year: 2025, Base: domain.Ontario})
	assert.ErrorIs(t, err, context.Canceled)
}

package calculation

import (
	"fmt"

	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine computes payroll deductions against an immutable set of tax
// tables. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	Tables domain.TaxTables
	Logger Logger
}

// NewEngine creates an engine over tables
func NewEngine(tables domain.TaxTables) *Engine {
	return &Engine{
		Tables: tables,
		Logger: NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// FederalTax returns federal income tax on income for year
func (e *Engine) FederalTax(income decimal.Decimal, year domain.TaxYear) (decimal.Decimal, error) {
	if err := checkIncome(income); err != nil {
		return decimal.Zero, err
	}
	tables, err := e.Tables.Year(year)
	if err != nil {
		return decimal.Zero, err
	}
	return CalculateProgressiveTax(income, tables.Federal), nil
}

// ProvincialTax returns provincial or territorial income tax on income
func (e *Engine) ProvincialTax(income decimal.Decimal, j domain.Jurisdiction, year domain.TaxYear) (decimal.Decimal, error) {
	if err := checkIncome(income); err != nil {
		return decimal.Zero, err
	}
	tables, err := e.Tables.Year(year)
	if err != nil {
		return decimal.Zero, err
	}
	brackets, err := tables.Schedule(j)
	if err != nil {
		return decimal.Zero, fmt.Errorf("year %d: %w", year, err)
	}
	return CalculateProgressiveTax(income, brackets), nil
}

// CombinedMarginalRate returns the federal plus provincial income tax rate
// on the last dollar of income
func (e *Engine) CombinedMarginalRate(income decimal.Decimal, j domain.Jurisdiction, year domain.TaxYear) (decimal.Decimal, error) {
	if err := checkIncome(income); err != nil {
		return decimal.Zero, err
	}
	tables, err := e.Tables.Year(year)
	if err != nil {
		return decimal.Zero, err
	}
	brackets, err := tables.Schedule(j)
	if err != nil {
		return decimal.Zero, fmt.Errorf("year %d: %w", year, err)
	}
	return MarginalRate(income, tables.Federal).Add(MarginalRate(income, brackets)), nil
}

// CppQpp returns the pension contribution; QC uses the QPP rule
func (e *Engine) CppQpp(income decimal.Decimal, j domain.Jurisdiction, year domain.TaxYear) (decimal.Decimal, error) {
	if err := checkIncome(income); err != nil {
		return decimal.Zero, err
	}
	if !j.Valid() {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrUnknownJurisdiction, string(j))
	}
	tables, err := e.Tables.Year(year)
	if err != nil {
		return decimal.Zero, err
	}
	return CalculateContribution(income, tables.ContributionRule(j)), nil
}

// EiQpip returns the EI premium and, for QC only, the QPIP premium
func (e *Engine) EiQpip(income decimal.Decimal, j domain.Jurisdiction, year domain.TaxYear) (domain.Premiums, error) {
	if err := checkIncome(income); err != nil {
		return domain.Premiums{}, err
	}
	if !j.Valid() {
		return domain.Premiums{}, fmt.Errorf("%w: %q", domain.ErrUnknownJurisdiction, string(j))
	}
	tables, err := e.Tables.Year(year)
	if err != nil {
		return domain.Premiums{}, err
	}

	if j.IsQuebec() {
		return domain.Premiums{
			EIPremium:   CalculatePremium(income, tables.EiQpip.Quebec.EI),
			QPIPPremium: CalculatePremium(income, tables.EiQpip.Quebec.QPIP),
		}, nil
	}
	return domain.Premiums{
		EIPremium:   CalculatePremium(income, tables.EiQpip.Standard.EI),
		QPIPPremium: decimal.Zero,
	}, nil
}

// PayrollDeductions computes every tax and contribution for one annual
// taxable income and aggregates them
func (e *Engine) PayrollDeductions(income decimal.Decimal, j domain.Jurisdiction, year domain.TaxYear) (*domain.PayrollDeductionsResult, error) {
	federal, err := e.FederalTax(income, year)
	if err != nil {
		return nil, fmt.Errorf("federal tax: %w", err)
	}
	provincial, err := e.ProvincialTax(income, j, year)
	if err != nil {
		return nil, fmt.Errorf("provincial tax: %w", err)
	}
	cpp, err := e.CppQpp(income, j, year)
	if err != nil {
		return nil, fmt.Errorf("pension contribution: %w", err)
	}
	premiums, err := e.EiQpip(income, j, year)
	if err != nil {
		return nil, fmt.Errorf("insurance premiums: %w", err)
	}

	result := domain.NewPayrollDeductionsResult(income, j, year, federal, provincial, cpp, premiums)
	e.Logger.Debugf("deductions %s %d income=%s federal=%s provincial=%s cpp=%s ei=%s qpip=%s",
		j, year, income, federal, provincial, cpp, premiums.EIPremium, premiums.QPIPPremium)
	return result, nil
}

func checkIncome(income decimal.Decimal) error {
	if income.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: %s", domain.ErrNegativeIncome, income)
	}
	return nil
}

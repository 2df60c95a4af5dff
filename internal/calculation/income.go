package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	WeeksPerYear  = 52
	MonthsPerYear = 12
)

var (
	weeksPerYear  = decimal.NewFromInt(WeeksPerYear)
	monthsPerYear = decimal.NewFromInt(MonthsPerYear)
)

// ErrInvalidIncomeRequest marks an income request missing a positive
// income, hours per week or days per week
var ErrInvalidIncomeRequest = errors.New("invalid income request")

// GrossIncomeType says whether GrossIncome is an hourly wage or a yearly salary
type GrossIncomeType string

const (
	GrossIncomeHourly GrossIncomeType = "hourly"
	GrossIncomeYearly GrossIncomeType = "yearly"
)

// AnnualFromHourly converts an hourly wage to annual income
func AnnualFromHourly(hourlyWage, hoursPerWeek decimal.Decimal) decimal.Decimal {
	return hourlyWage.Mul(hoursPerWeek).Mul(weeksPerYear)
}

// HourlyFromAnnual converts annual income to an hourly wage
func HourlyFromAnnual(annualIncome, hoursPerWeek decimal.Decimal) decimal.Decimal {
	if hoursPerWeek.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return annualIncome.Div(weeksPerYear).Div(hoursPerWeek)
}

// AnnualOvertimePay returns yearly overtime earnings. No overtime is paid
// for non-positive hours or a multiplier below 1.
func AnnualOvertimePay(hourlyWage, overtimeHoursPerWeek, multiplier decimal.Decimal) decimal.Decimal {
	if overtimeHoursPerWeek.LessThanOrEqual(decimal.Zero) || multiplier.LessThan(decimal.NewFromInt(1)) {
		return decimal.Zero
	}
	return hourlyWage.Mul(multiplier).Mul(overtimeHoursPerWeek).Mul(weeksPerYear)
}

// WageBreakdown expresses one annual amount per hour, day, week, month and year
type WageBreakdown struct {
	Hourly  decimal.Decimal `json:"hourly" yaml:"hourly"`
	Daily   decimal.Decimal `json:"daily" yaml:"daily"`
	Weekly  decimal.Decimal `json:"weekly" yaml:"weekly"`
	Monthly decimal.Decimal `json:"monthly" yaml:"monthly"`
	Yearly  decimal.Decimal `json:"yearly" yaml:"yearly"`
}

// BreakdownWages splits annual income across pay periods
func BreakdownWages(annual, hoursPerWeek, daysPerWeek decimal.Decimal) WageBreakdown {
	weekly := annual.Div(weeksPerYear)
	b := WageBreakdown{
		Weekly:  weekly,
		Monthly: annual.Div(monthsPerYear),
		Yearly:  annual,
	}
	if daysPerWeek.GreaterThan(decimal.Zero) {
		b.Daily = weekly.Div(daysPerWeek)
	}
	if hoursPerWeek.GreaterThan(decimal.Zero) {
		b.Hourly = weekly.Div(hoursPerWeek)
	}
	return b
}

// IncomeRequest describes a worker's pay and where they are taxed
type IncomeRequest struct {
	GrossIncome          decimal.Decimal     `json:"grossIncome" yaml:"grossIncome"`
	GrossIncomeType      GrossIncomeType     `json:"grossIncomeType" yaml:"grossIncomeType"`
	HoursPerWeek         decimal.Decimal     `json:"hoursPerWeek" yaml:"hoursPerWeek"`
	DaysPerWeek          decimal.Decimal     `json:"daysPerWeek" yaml:"daysPerWeek"`
	OvertimeHoursPerWeek decimal.Decimal     `json:"overtimeHoursPerWeek" yaml:"overtimeHoursPerWeek"`
	OvertimeMultiplier   decimal.Decimal     `json:"overtimeMultiplier" yaml:"overtimeMultiplier"`
	Jurisdiction         domain.Jurisdiction `json:"jurisdiction" yaml:"jurisdiction"`
	Year                 domain.TaxYear      `json:"year" yaml:"year"`
}

// DefaultIncomeRequest returns a request with a 37.5 hour, 5 day week
func DefaultIncomeRequest() IncomeRequest {
	return IncomeRequest{
		GrossIncomeType: GrossIncomeHourly,
		HoursPerWeek:    decimal.NewFromFloat(37.5),
		DaysPerWeek:     decimal.NewFromInt(5),
	}
}

// Validate checks the request carries positive income, working time and a
// known jurisdiction
func (r IncomeRequest) Validate() error {
	if r.GrossIncome.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: gross income must be positive", ErrInvalidIncomeRequest)
	}
	if r.HoursPerWeek.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: hours per week must be positive", ErrInvalidIncomeRequest)
	}
	if r.DaysPerWeek.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: days per week must be positive", ErrInvalidIncomeRequest)
	}
	switch r.GrossIncomeType {
	case GrossIncomeHourly, GrossIncomeYearly:
	default:
		return fmt.Errorf("%w: gross income type must be 'hourly' or 'yearly'", ErrInvalidIncomeRequest)
	}
	if !r.Jurisdiction.Valid() {
		return fmt.Errorf("%w: jurisdiction %q is not a province or territory code", ErrInvalidIncomeRequest, string(r.Jurisdiction))
	}
	return nil
}

// IncomeSummary is the result of an income calculation
type IncomeSummary struct {
	HourlyWage          decimal.Decimal                 `json:"hourlyWage" yaml:"hourlyWage"`
	OvertimePay         decimal.Decimal                 `json:"overtimePay" yaml:"overtimePay"`
	TaxableAnnualIncome decimal.Decimal                 `json:"taxableAnnualIncome" yaml:"taxableAnnualIncome"`
	Deductions          *domain.PayrollDeductionsResult `json:"deductions" yaml:"deductions"`
	NetAnnualIncome     decimal.Decimal                 `json:"netAnnualIncome" yaml:"netAnnualIncome"`
	GrossWages          WageBreakdown                   `json:"grossWages" yaml:"grossWages"`
	NetWages            WageBreakdown                   `json:"netWages" yaml:"netWages"`
}

// Income derives taxable annual income from a wage, runs the payroll
// deductions and breaks the net income down per pay period
func (e *Engine) Income(req IncomeRequest) (*IncomeSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var hourly, baseAnnual decimal.Decimal
	if req.GrossIncomeType == GrossIncomeHourly {
		hourly = req.GrossIncome
		baseAnnual = AnnualFromHourly(hourly, req.HoursPerWeek)
	} else {
		hourly = HourlyFromAnnual(req.GrossIncome, req.HoursPerWeek)
		baseAnnual = req.GrossIncome
	}

	overtime := AnnualOvertimePay(hourly, req.OvertimeHoursPerWeek, req.OvertimeMultiplier)
	taxable := baseAnnual.Add(overtime)

	deductions, err := e.PayrollDeductions(taxable, req.Jurisdiction, req.Year)
	if err != nil {
		return nil, err
	}

	net := deductions.NetIncome
	e.Logger.Debugf("income %s/%s hourly=%s overtime=%s taxable=%s net=%s",
		req.GrossIncome, req.GrossIncomeType, hourly, overtime, taxable, net)

	return &IncomeSummary{
		HourlyWage:          hourly,
		OvertimePay:         overtime,
		TaxableAnnualIncome: taxable,
		Deductions:          deductions,
		NetAnnualIncome:     net,
		GrossWages:          BreakdownWages(taxable, req.HoursPerWeek, req.DaysPerWeek),
		NetWages:            BreakdownWages(net, req.HoursPerWeek, req.DaysPerWeek),
	}, nil
}

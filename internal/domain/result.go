package domain

import "github.com/shopspring/decimal"

// Premiums are the EI and QPIP amounts for one income
type Premiums struct {
	EIPremium   decimal.Decimal `json:"eiPremium" yaml:"eiPremium"`
	QPIPPremium decimal.Decimal `json:"qpipPremium" yaml:"qpipPremium"`
}

// Total returns EI + QPIP
func (p Premiums) Total() decimal.Decimal {
	return p.EIPremium.Add(p.QPIPPremium)
}

// PayrollDeductionsResult aggregates taxes and contributions for one
// annual taxable income
type PayrollDeductionsResult struct {
	TaxableIncome decimal.Decimal `json:"taxableIncome" yaml:"taxableIncome"`
	Jurisdiction  Jurisdiction    `json:"jurisdiction" yaml:"jurisdiction"`
	Year          TaxYear         `json:"year" yaml:"year"`

	TotalFederalTax    decimal.Decimal `json:"totalFederalTax" yaml:"totalFederalTax"`
	TotalProvincialTax decimal.Decimal `json:"totalProvincialTax" yaml:"totalProvincialTax"`
	TotalTax           decimal.Decimal `json:"totalTax" yaml:"totalTax"`

	CPPContribution    decimal.Decimal `json:"cppContribution" yaml:"cppContribution"`
	EIPremium          decimal.Decimal `json:"eiPremium" yaml:"eiPremium"`
	QPIPPremium        decimal.Decimal `json:"qpipPremium" yaml:"qpipPremium"`
	TotalContributions decimal.Decimal `json:"totalContributions" yaml:"totalContributions"`

	TotalDeductions decimal.Decimal `json:"totalDeductions" yaml:"totalDeductions"`
	NetIncome       decimal.Decimal `json:"netIncome" yaml:"netIncome"`
}

// NewPayrollDeductionsResult fills in the derived totals
func NewPayrollDeductionsResult(income decimal.Decimal, j Jurisdiction, year TaxYear, federal, provincial, cpp decimal.Decimal, premiums Premiums) *PayrollDeductionsResult {
	totalTax := federal.Add(provincial)
	totalContributions := cpp.Add(premiums.EIPremium).Add(premiums.QPIPPremium)
	totalDeductions := totalTax.Add(totalContributions)
	return &PayrollDeductionsResult{
		TaxableIncome:      income,
		Jurisdiction:       j,
		Year:               year,
		TotalFederalTax:    federal,
		TotalProvincialTax: provincial,
		TotalTax:           totalTax,
		CPPContribution:    cpp,
		EIPremium:          premiums.EIPremium,
		QPIPPremium:        premiums.QPIPPremium,
		TotalContributions: totalContributions,
		TotalDeductions:    totalDeductions,
		NetIncome:          income.Sub(totalDeductions),
	}
}

// EffectiveRate returns total deductions as a fraction of taxable income
func (r *PayrollDeductionsResult) EffectiveRate() decimal.Decimal {
	if r.TaxableIncome.IsZero() {
		return decimal.Zero
	}
	return r.TotalDeductions.Div(r.TaxableIncome)
}

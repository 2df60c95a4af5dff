package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/cadpay/internal/budget"
	"github.com/rgehrsitz/cadpay/internal/calculation"
	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1F4E79", Dark: "#7AB8F5"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9A9A9A"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#444444"}

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	totalStyle    = lipgloss.NewStyle().Bold(true)
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

const (
	labelWidth = 24
	valueWidth = 16
)

// ConsoleFormatter renders results as boxed tables for a terminal
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (cf ConsoleFormatter) Deductions(r *domain.PayrollDeductionsResult) ([]byte, error) {
	return []byte(cf.renderDeductions(r) + "\n"), nil
}

func (cf ConsoleFormatter) renderDeductions(r *domain.PayrollDeductionsResult) string {
	var sb strings.Builder
	sb.WriteString(row("Taxable income", r.TaxableIncome))
	sb.WriteString(rule())
	sb.WriteString(row("Federal tax", r.TotalFederalTax))
	sb.WriteString(row("Provincial tax", r.TotalProvincialTax))
	sb.WriteString(totalRow("Total tax", r.TotalTax))
	sb.WriteString(rule())
	pension := "CPP contribution"
	if r.Jurisdiction.IsQuebec() {
		pension = "QPP contribution"
	}
	sb.WriteString(row(pension, r.CPPContribution))
	sb.WriteString(row("EI premium", r.EIPremium))
	if r.Jurisdiction.IsQuebec() {
		sb.WriteString(row("QPIP premium", r.QPIPPremium))
	}
	sb.WriteString(totalRow("Total contributions", r.TotalContributions))
	sb.WriteString(rule())
	sb.WriteString(totalRow("Total deductions", r.TotalDeductions))
	sb.WriteString(totalRow("Net income", r.NetIncome))
	sb.WriteString(fmt.Sprintf("%-*s %*s", labelWidth, "Effective rate", valueWidth, FormatPercentage(r.EffectiveRate())))

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("PAYROLL DEDUCTIONS"),
		subtitleStyle.Render(fmt.Sprintf("%s (%s), tax year %d", r.Jurisdiction.Name(), r.Jurisdiction, r.Year)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, boxStyle.Render(sb.String()))
}

func (cf ConsoleFormatter) Income(s *calculation.IncomeSummary) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(row("Hourly wage", s.HourlyWage))
	sb.WriteString(row("Overtime pay", s.OvertimePay))
	sb.WriteString(totalRow("Taxable annual income", s.TaxableAnnualIncome))
	sb.WriteString(totalRow("Net annual income", s.NetAnnualIncome))
	sb.WriteString(rule())
	sb.WriteString(fmt.Sprintf("%-*s %*s %*s\n", labelWidth, "Net pay per", valueWidth, "Gross", valueWidth, "Net"))
	periods := []struct {
		label      string
		gross, net decimal.Decimal
	}{
		{"Hour", s.GrossWages.Hourly, s.NetWages.Hourly},
		{"Day", s.GrossWages.Daily, s.NetWages.Daily},
		{"Week", s.GrossWages.Weekly, s.NetWages.Weekly},
		{"Month", s.GrossWages.Monthly, s.NetWages.Monthly},
		{"Year", s.GrossWages.Yearly, s.NetWages.Yearly},
	}
	for i, p := range periods {
		line := fmt.Sprintf("%-*s %*s %*s", labelWidth, p.label, valueWidth, FormatCurrency(p.gross), valueWidth, FormatCurrency(p.net))
		if i < len(periods)-1 {
			line += "\n"
		}
		sb.WriteString(line)
	}

	income := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("INCOME"),
		boxStyle.Render(sb.String()),
	)
	out := lipgloss.JoinVertical(lipgloss.Left, income, cf.renderDeductions(s.Deductions))
	return []byte(out + "\n"), nil
}

func (ConsoleFormatter) Budget(s budget.Summary) ([]byte, error) {
	var sb strings.Builder
	for _, c := range s.Categories {
		sb.WriteString(row(c.Name, c.Amount))
	}
	if len(s.Categories) == 0 {
		sb.WriteString(subtitleStyle.Render("No categories") + "\n")
	}
	sb.WriteString(rule())
	sb.WriteString(row(s.Unallocated.Name, s.Unallocated.Amount))
	sb.WriteString(strings.TrimSuffix(totalRow(budget.TotalName, s.Total), "\n"))

	out := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("MONTHLY BUDGET"),
		subtitleStyle.Render(fmt.Sprintf("%s allocated of %s", FormatCurrency(s.Allocated), FormatCurrency(s.Total))),
		boxStyle.Render(sb.String()),
	)
	return []byte(out + "\n"), nil
}

func row(label string, amount decimal.Decimal) string {
	return fmt.Sprintf("%-*s %*s\n", labelWidth, label, valueWidth, FormatCurrency(amount))
}

func totalRow(label string, amount decimal.Decimal) string {
	return totalStyle.Render(fmt.Sprintf("%-*s %*s", labelWidth, label, valueWidth, FormatCurrency(amount))) + "\n"
}

func rule() string {
	return strings.Repeat("─", labelWidth+valueWidth+1) + "\n"
}

package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/cadpay/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a table of the base and alternative jurisdictions
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("JURISDICTION COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Taxable income: %s\n", output.FormatCurrency(compSet.Income)))
	sb.WriteString(fmt.Sprintf("Tax year:       %d\n", compSet.Year))
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf("Base:           %s\n", compSet.BaseResult.Name))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Jurisdiction",
		numWidth, "Net Income",
		numWidth, "Income Tax",
		numWidth, "Effective",
		numWidth, "Marginal"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("%-*s net %s%s (%s%%)",
				nameWidth, tf.truncate(alt.Name, nameWidth),
				tf.deltaSymbol(alt.NetDiffFromBase),
				output.FormatCurrency(alt.NetDiffFromBase),
				alt.NetPctFromBase.StringFixed(1)))
			if !alt.TaxDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf(", tax %s%s", tf.deltaSymbol(alt.TaxDiffFromBase), output.FormatCurrency(alt.TaxDiffFromBase)))
			}
			sb.WriteString("\n")
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}

	return sb.String()
}

// FormatCompact creates a single-line summary of net income differences
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseJurisdiction))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.NetDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.NetDiffFromBase) + output.FormatCurrency(alt.NetDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.Jurisdiction, change))
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.Name
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, output.FormatCurrency(result.NetIncome),
		numWidth, output.FormatCurrency(result.TotalTax),
		numWidth, output.FormatPercentage(result.EffectiveRate),
		numWidth, output.FormatPercentage(result.MarginalRate))
}

// deltaSymbol prefixes positive deltas; FormatCurrency already signs negatives
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

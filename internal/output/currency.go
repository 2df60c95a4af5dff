package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups digits the way en-CA displays dollar amounts
var printer = message.NewPrinter(language.MustParse("en-CA"))

// FormatCurrency formats an amount as Canadian dollars: $1,234.56
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	rounded := amount.Round(2)
	fixed := rounded.StringFixed(2)
	return sign + "$" + printer.Sprintf("%d", rounded.IntPart()) + fixed[len(fixed)-3:]
}

// FormatPercentage formats a fraction as a percentage: 0.2345 -> 23.45%
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

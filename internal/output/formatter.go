package output

import (
	"github.com/rgehrsitz/cadpay/internal/budget"
	"github.com/rgehrsitz/cadpay/internal/calculation"
	"github.com/rgehrsitz/cadpay/internal/domain"
)

// Formatter renders calculation results for the CLI
type Formatter interface {
	Name() string
	Deductions(result *domain.PayrollDeductionsResult) ([]byte, error)
	Income(summary *calculation.IncomeSummary) ([]byte, error)
	Budget(summary budget.Summary) ([]byte, error)
}

// GetFormatterByName returns the formatter for name, or nil
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console", "":
		return ConsoleFormatter{}
	case "json":
		return JSONFormatter{Pretty: true}
	case "yaml":
		return YAMLFormatter{}
	default:
		return nil
	}
}

// FormatterNames lists the accepted format names
var FormatterNames = []string{"console", "json", "yaml"}

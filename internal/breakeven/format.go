package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/cadpay/internal/output"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a report for one break-even result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN TAXABLE INCOME\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Jurisdiction:        %s (%s)\n", result.Request.Jurisdiction.Name(), result.Request.Jurisdiction))
	sb.WriteString(fmt.Sprintf("Tax year:            %d\n", result.Request.Year))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Target net income:   %s\n", output.FormatCurrency(result.Request.TargetNet)))
	sb.WriteString(fmt.Sprintf("Taxable income:      %s\n", output.FormatCurrency(result.GrossIncome)))
	if d := result.Deductions; d != nil {
		sb.WriteString(fmt.Sprintf("Total tax:           %s\n", output.FormatCurrency(d.TotalTax)))
		sb.WriteString(fmt.Sprintf("Contributions:       %s\n", output.FormatCurrency(d.TotalContributions)))
		sb.WriteString(fmt.Sprintf("Achieved net income: %s\n", output.FormatCurrency(d.NetIncome)))
	}

	return sb.String()
}

// FormatMulti formats a ranking across jurisdictions
func (tf *TableFormatter) FormatMulti(result *MultiJurisdictionResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN TAXABLE INCOME BY JURISDICTION\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Target net income %s, tax year %d\n\n", output.FormatCurrency(result.TargetNet), result.Year))

	sb.WriteString(fmt.Sprintf("%-4s %-26s %16s %16s\n", "Code", "Jurisdiction", "Taxable income", "Deductions"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, res := range result.Results {
		deductions := ""
		if res.Deductions != nil {
			deductions = output.FormatCurrency(res.Deductions.TotalDeductions)
		}
		sb.WriteString(fmt.Sprintf("%-4s %-26s %16s %16s\n",
			res.Request.Jurisdiction,
			res.Request.Jurisdiction.Name(),
			output.FormatCurrency(res.GrossIncome),
			deductions))
	}
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	if result.Lowest != nil && result.Highest != nil {
		spread := result.Highest.GrossIncome.Sub(result.Lowest.GrossIncome)
		sb.WriteString(fmt.Sprintf("Lowest:  %s at %s\n", result.Lowest.Request.Jurisdiction.Name(), output.FormatCurrency(result.Lowest.GrossIncome)))
		sb.WriteString(fmt.Sprintf("Highest: %s at %s (%s more)\n", result.Highest.Request.Jurisdiction.Name(), output.FormatCurrency(result.Highest.GrossIncome), output.FormatCurrency(spread)))
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for one result
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMulti generates JSON output for a ranking
func (jf *JSONFormatter) FormatMulti(result *MultiJurisdictionResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "Converged"
	}
	return "Did not converge"
}

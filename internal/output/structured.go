package output

import (
	"encoding/json"

	"github.com/rgehrsitz/cadpay/internal/budget"
	"github.com/rgehrsitz/cadpay/internal/calculation"
	"github.com/rgehrsitz/cadpay/internal/domain"
	"gopkg.in/yaml.v3"
)

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf JSONFormatter) Name() string { return "json" }

func (jf JSONFormatter) Deductions(result *domain.PayrollDeductionsResult) ([]byte, error) {
	return jf.marshal(result)
}

func (jf JSONFormatter) Income(summary *calculation.IncomeSummary) ([]byte, error) {
	return jf.marshal(summary)
}

func (jf JSONFormatter) Budget(summary budget.Summary) ([]byte, error) {
	return jf.marshal(summary)
}

func (jf JSONFormatter) marshal(v any) ([]byte, error) {
	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// YAMLFormatter formats results as YAML
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Deductions(result *domain.PayrollDeductionsResult) ([]byte, error) {
	return yaml.Marshal(result)
}

func (YAMLFormatter) Income(summary *calculation.IncomeSummary) ([]byte, error) {
	return yaml.Marshal(summary)
}

func (YAMLFormatter) Budget(summary budget.Summary) ([]byte, error) {
	return yaml.Marshal(summary)
}

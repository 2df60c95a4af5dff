package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/rgehrsitz/cadpay/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/tables.yaml
var defaultTablesSource []byte

var (
	defaultTablesOnce sync.Once
	defaultTables     domain.TaxTables
	defaultTablesErr  error
)

// DefaultTables returns the tables built into the binary. They are parsed
// and validated once.
func DefaultTables() (domain.TaxTables, error) {
	defaultTablesOnce.Do(func() {
		defaultTables, defaultTablesErr = NewTableLoader().Parse(defaultTablesSource)
	})
	return defaultTables, defaultTablesErr
}

// TableLoader handles parsing of tax table files
type TableLoader struct{}

// NewTableLoader creates a new table loader
func NewTableLoader() *TableLoader {
	return &TableLoader{}
}

// LoadFromFile loads tables from a YAML or JSON file
func (tl *TableLoader) LoadFromFile(filename string) (domain.TaxTables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return tl.Parse(data)
}

// Parse decodes and validates table data. JSON is accepted since it is
// valid YAML.
func (tl *TableLoader) Parse(data []byte) (domain.TaxTables, error) {
	var tables domain.TaxTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse tables: %w", err)
	}

	if err := tl.ValidateTables(tables); err != nil {
		return nil, fmt.Errorf("table validation failed: %w", err)
	}

	return tables, nil
}

// ValidateTables validates every year in tables
func (tl *TableLoader) ValidateTables(tables domain.TaxTables) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tax years defined")
	}
	for _, year := range tables.Years() {
		if err := tl.validateYear(tables[year]); err != nil {
			return fmt.Errorf("year %d validation failed: %w", year, err)
		}
	}
	return nil
}

// validateYear validates one year's federal, provincial and contribution tables
func (tl *TableLoader) validateYear(yt domain.YearTables) error {
	if err := yt.Federal.Validate(); err != nil {
		return fmt.Errorf("federal brackets: %w", err)
	}

	for _, j := range domain.Jurisdictions {
		schedule, ok := yt.Provincial[j]
		if !ok {
			return fmt.Errorf("provincial brackets missing for %s", j)
		}
		if err := schedule.Validate(); err != nil {
			return fmt.Errorf("provincial brackets for %s: %w", j, err)
		}
	}

	if err := yt.CppQpp.Standard.Validate(); err != nil {
		return fmt.Errorf("CPP rule: %w", err)
	}
	if err := yt.CppQpp.Quebec.Validate(); err != nil {
		return fmt.Errorf("QPP rule: %w", err)
	}

	if err := yt.EiQpip.Standard.EI.Validate(); err != nil {
		return fmt.Errorf("EI rule: %w", err)
	}
	if err := yt.EiQpip.Quebec.EI.Validate(); err != nil {
		return fmt.Errorf("Quebec EI rule: %w", err)
	}
	if err := yt.EiQpip.Quebec.QPIP.Validate(); err != nil {
		return fmt.Errorf("QPIP rule: %w", err)
	}

	return nil
}

package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/cadpay/internal/budget"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// BudgetPlan is the on-disk form of a monthly budget
type BudgetPlan struct {
	Total      decimal.Decimal      `yaml:"total"`
	Categories []BudgetPlanCategory `yaml:"categories"`
}

// BudgetPlanCategory is one category line in a plan file
type BudgetPlanCategory struct {
	Name   string          `yaml:"name"`
	Amount decimal.Decimal `yaml:"amount"`
	Color  string          `yaml:"color"`
}

// LoadPlan reads a budget plan file and replays it through a planner so
// the planner's allocation rules apply to file input too
func LoadPlan(filename string) (*budget.Planner, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ParsePlan(data)
}

// ParsePlan builds a planner from plan YAML
func ParsePlan(data []byte) (*budget.Planner, error) {
	var plan BudgetPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	planner := budget.NewPlanner(decimal.Zero)
	if err := planner.SetTotal(plan.Total); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	for i, c := range plan.Categories {
		if _, err := planner.AddCategory(c.Name, c.Amount, c.Color); err != nil {
			return nil, fmt.Errorf("category %d (%s) validation failed: %w", i, c.Name, err)
		}
	}
	return planner, nil
}

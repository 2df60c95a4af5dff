package main

import (
	"github.com/rgehrsitz/cadpay/internal/budget"
	"github.com/rgehrsitz/cadpay/internal/config"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget [plan-file]",
	Short: "Show how a monthly budget is allocated across categories",
	Long: `Load a budget plan and print each category, the unallocated remainder
and the total. Without a plan file an empty budget of --total is shown.

A plan file looks like:
  total: 3000
  categories:
    - name: Rent
      amount: 1500
    - name: Food
      amount: 400
      color: "#4a90d9"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var planner *budget.Planner
		if len(args) == 1 {
			p, err := config.LoadPlan(args[0])
			if err != nil {
				return err
			}
			planner = p
		} else {
			raw, _ := cmd.Flags().GetString("total")
			total, err := decimal.NewFromString(raw)
			if err != nil {
				return err
			}
			planner = budget.NewPlanner(decimal.Zero)
			if err := planner.SetTotal(total); err != nil {
				return err
			}
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		data, err := f.Budget(planner.Snapshot())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	budgetCmd.Flags().String("total", "0", "monthly budget when no plan file is given")
}

package main

import (
	"fmt"

	"github.com/rgehrsitz/cadpay/internal/breakeven"
	"github.com/rgehrsitz/cadpay/internal/compare"
	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare deductions for one income across jurisdictions",
	Long: `Calculate payroll deductions for the same taxable income in a base
jurisdiction and a set of alternatives, ranked by net income.

Examples:
  cadpay compare --income 85000 -j ON
  cadpay compare --income 60000 -j QC --jurisdictions AB,BC --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("income")
		income, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid income %q: %w", raw, err)
		}
		names, _ := cmd.Flags().GetStringSlice("jurisdictions")
		alternatives, err := parseJurisdictions(names)
		if err != nil {
			return err
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}
		base, year, err := jurisdictionAndYear(engine)
		if err != nil {
			return err
		}

		compSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), compare.CompareOptions{
			Income:        income,
			Year:          year,
			Base:          base,
			Jurisdictions: alternatives,
		})
		if err != nil {
			return err
		}

		switch settings.Format {
		case "json":
			out, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
		case "console":
			fmt.Fprint(cmd.OutOrStdout(), (&compare.TableFormatter{}).Format(compSet))
		default:
			return fmt.Errorf("compare supports console and json output, not %q", settings.Format)
		}
		return nil
	},
}

var breakevenCmd = &cobra.Command{
	Use:   "breakeven",
	Short: "Find the taxable income that yields a target net income",
	Long: `Solve for the annual taxable income whose net income after tax,
CPP/QPP and EI/QPIP reaches a target, in one jurisdiction or all of them.

Examples:
  cadpay breakeven --net 60000 -j BC
  cadpay breakeven --net 60000 --all --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("net")
		target, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid net income %q: %w", raw, err)
		}
		all, _ := cmd.Flags().GetBool("all")

		engine, err := newEngine()
		if err != nil {
			return err
		}
		j, year, err := jurisdictionAndYear(engine)
		if err != nil {
			return err
		}
		if settings.Format != "console" && settings.Format != "json" {
			return fmt.Errorf("breakeven supports console and json output, not %q", settings.Format)
		}

		solver := breakeven.NewDefaultSolver(engine)
		table := &breakeven.TableFormatter{}
		js := &breakeven.JSONFormatter{Pretty: true}

		if all {
			result, err := solver.SolveAll(cmd.Context(), target, year, nil)
			if err != nil {
				return err
			}
			if settings.Format == "json" {
				out, err := js.FormatMulti(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), table.FormatMulti(result))
			return nil
		}

		result, err := solver.Solve(cmd.Context(), breakeven.Request{TargetNet: target, Jurisdiction: j, Year: year})
		if err != nil {
			return err
		}
		if settings.Format == "json" {
			out, err := js.Format(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), table.Format(result))
		return nil
	},
}

func parseJurisdictions(names []string) ([]domain.Jurisdiction, error) {
	out := make([]domain.Jurisdiction, 0, len(names))
	for _, name := range names {
		j, err := domain.ParseJurisdiction(name)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}

func init() {
	compareCmd.Flags().StringP("income", "i", "", "annual taxable income")
	compareCmd.Flags().StringSlice("jurisdictions", nil, "alternatives to compare (default: all others)")
	_ = compareCmd.MarkFlagRequired("income")

	breakevenCmd.Flags().String("net", "", "target annual net income")
	breakevenCmd.Flags().Bool("all", false, "solve for every jurisdiction")
	_ = breakevenCmd.MarkFlagRequired("net")
}

package main

import (
	"fmt"

	"github.com/rgehrsitz/cadpay/internal/calculation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate payroll deductions for an annual taxable income",
	Long: `Calculate federal and provincial tax, CPP/QPP and EI/QPIP for one
annual taxable income.

Examples:
  cadpay calculate --income 60000 --jurisdiction ON
  cadpay calculate --income 85000 -j QC --year 2025 --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("income")
		income, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid income %q: %w", raw, err)
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}
		j, year, err := jurisdictionAndYear(engine)
		if err != nil {
			return err
		}
		f, err := formatter()
		if err != nil {
			return err
		}

		result, err := engine.PayrollDeductions(income, j, year)
		if err != nil {
			return err
		}
		data, err := f.Deductions(result)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Break a wage down into taxable income, deductions and net pay",
	Long: `Convert an hourly or yearly wage, plus optional overtime, into taxable
annual income, run the payroll deductions and show gross and net pay per
hour, day, week, month and year.

Examples:
  cadpay income --gross 32.50 --type hourly -j BC
  cadpay income --gross 72000 --type yearly --overtime-hours 4 --overtime-multiplier 1.5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := calculation.DefaultIncomeRequest()
		fields := []struct {
			flag string
			dst  *decimal.Decimal
		}{
			{"gross", &req.GrossIncome},
			{"hours", &req.HoursPerWeek},
			{"days", &req.DaysPerWeek},
			{"overtime-hours", &req.OvertimeHoursPerWeek},
			{"overtime-multiplier", &req.OvertimeMultiplier},
		}
		for _, fld := range fields {
			raw, _ := cmd.Flags().GetString(fld.flag)
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("invalid --%s %q: %w", fld.flag, raw, err)
			}
			*fld.dst = d
		}
		incomeType, _ := cmd.Flags().GetString("type")
		req.GrossIncomeType = calculation.GrossIncomeType(incomeType)

		engine, err := newEngine()
		if err != nil {
			return err
		}
		req.Jurisdiction, req.Year, err = jurisdictionAndYear(engine)
		if err != nil {
			return err
		}
		f, err := formatter()
		if err != nil {
			return err
		}

		summary, err := engine.Income(req)
		if err != nil {
			return err
		}
		data, err := f.Income(summary)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	calculateCmd.Flags().StringP("income", "i", "", "annual taxable income")
	_ = calculateCmd.MarkFlagRequired("income")

	incomeCmd.Flags().StringP("gross", "g", "", "gross wage, per hour or per year depending on --type")
	incomeCmd.Flags().StringP("type", "t", string(calculation.GrossIncomeHourly), "gross income type: hourly or yearly")
	incomeCmd.Flags().String("hours", "37.5", "working hours per week")
	incomeCmd.Flags().String("days", "5", "working days per week")
	incomeCmd.Flags().String("overtime-hours", "0", "overtime hours per week")
	incomeCmd.Flags().String("overtime-multiplier", "0", "overtime pay multiplier, e.g. 1.5")
	_ = incomeCmd.MarkFlagRequired("gross")
}

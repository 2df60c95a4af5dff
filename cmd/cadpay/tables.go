package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/cadpay/internal/config"
	"github.com/rgehrsitz/cadpay/internal/domain"
	"github.com/rgehrsitz/cadpay/internal/output"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Inspect and validate tax tables",
}

var tablesValidateCmd = &cobra.Command{
	Use:   "validate [tables-file]",
	Short: "Validate a tax table file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := config.NewTableLoader().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		years := make([]string, 0, len(tables))
		for _, y := range tables.Years() {
			years = append(years, y.String())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tax table file %s is valid (years: %s)\n", args[0], strings.Join(years, ", "))
		return nil
	},
}

var tablesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tax years and jurisdictions in the active tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := settings.Tables()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, y := range tables.Years() {
			yt, _ := tables.Year(y)
			fmt.Fprintf(out, "%s  federal brackets: %d\n", y, len(yt.Federal))
			for _, j := range domain.Jurisdictions {
				schedule, ok := yt.Provincial[j]
				if !ok {
					continue
				}
				top := schedule[len(schedule)-1].Rate
				fmt.Fprintf(out, "  %s  %-26s brackets: %d  top rate: %s\n", j, j.Name(), len(schedule), output.FormatPercentage(top))
			}
		}
		return nil
	},
}

func init() {
	tablesCmd.AddCommand(tablesValidateCmd)
	tablesCmd.AddCommand(tablesListCmd)
}

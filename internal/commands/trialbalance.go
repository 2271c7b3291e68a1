package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/export"
	"github.com/tally-dev/tally/internal/model"
)

func newTrialBalanceCommand() *cobra.Command {
	var dir string
	var periodStr string
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "trialbalance",
		Short: "Compute the trial balance for a period (or all-time)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(dir)
			if err != nil {
				return err
			}
			defer env.Close()

			var period model.Period
			if periodStr != "" {
				period, err = model.ParsePeriod(periodStr)
				if err != nil {
					return err
				}
			}

			tb, err := env.report.TrialBalance(period)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asCSV {
				return export.WriteTrialBalance(out, tb)
			}

			fmt.Fprintf(out, "Trial balance for %s (%s)\n\n", env.cfg.Business.Name, tb.Period)
			fmt.Fprintf(out, "%-8s %-30s %14s %14s\n", "code", "account", "debit", "credit")
			for _, row := range tb.Rows {
				fmt.Fprintf(out, "%-8s %-30s %14s %14s\n",
					row.AccountCode, row.AccountName,
					row.Debit.StringFixed(2), row.Credit.StringFixed(2))
			}
			fmt.Fprintf(out, "%-8s %-30s %14s %14s\n", "", "TOTAL",
				tb.TotalDebits.StringFixed(2), tb.TotalCredits.StringFixed(2))

			if !tb.Balanced {
				fmt.Fprintln(out, "\nWARNING: ledger is OUT OF BALANCE — investigate the journal")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVar(&periodStr, "period", "", "accounting period YYYY-MM (default all-time)")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "emit CSV instead of a table")

	return cmd
}

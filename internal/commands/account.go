package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/auditlog"
	"github.com/tally-dev/tally/internal/model"
)

func newAccountCommand() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the chart of accounts",
	}
	accountCmd.AddCommand(newAccountAddCommand())
	accountCmd.AddCommand(newAccountListCommand())
	accountCmd.AddCommand(newAccountRetireCommand())
	return accountCmd
}

func newAccountAddCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "add <code> <name> <type>",
		Short: "Register a new account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(dir)
			if err != nil {
				return err
			}
			defer env.Close()

			code, name, accountType := args[0], args[1], model.AccountType(args[2])
			acct, err := env.registry.Register(code, name, accountType)
			if err != nil {
				return err
			}

			entry := auditlog.Entry{
				Timestamp: time.Now().UTC(),
				Actor:     "cli",
				Action:    "register_account",
				Details:   fmt.Sprintf("%s %s (%s)", acct.Code, acct.Name, acct.Type),
			}
			if err := auditlog.Append(env.root, []auditlog.Entry{entry}); err != nil {
				return fmt.Errorf("writing audit log: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s %s (%s, %s-normal)\n",
				acct.Code, acct.Name, acct.Type, acct.NormalSide)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	return cmd
}

func newAccountListCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(dir)
			if err != nil {
				return err
			}
			defer env.Close()

			accounts, err := env.registry.All()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, a := range accounts {
				status := ""
				if a.Retired {
					status = " (retired)"
				}
				fmt.Fprintf(out, "%-8s %-30s %-10s %s-normal%s\n",
					a.Code, a.Name, a.Type, a.NormalSide, status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	return cmd
}

func newAccountRetireCommand() *cobra.Command {
	var dir string
	var force bool

	cmd := &cobra.Command{
		Use:   "retire <code>",
		Short: "Mark an account inactive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(dir)
			if err != nil {
				return err
			}
			defer env.Close()

			code := args[0]
			if err := env.registry.Retire(code, force); err != nil {
				return err
			}

			entry := auditlog.Entry{
				Timestamp: time.Now().UTC(),
				Actor:     "cli",
				Action:    "retire_account",
				Details:   code,
			}
			if err := auditlog.Append(env.root, []auditlog.Entry{entry}); err != nil {
				return fmt.Errorf("writing audit log: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Retired %s\n", code)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().BoolVar(&force, "force", false, "retire even if the account has postings (administrative)")
	return cmd
}

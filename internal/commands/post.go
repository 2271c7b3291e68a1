package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/auditlog"
	"github.com/tally-dev/tally/internal/journal"
	"github.com/tally-dev/tally/internal/model"
)

func newPostCommand() *cobra.Command {
	var dir string
	var txnID string
	var dateStr string
	var reverses string
	var debits []string
	var credits []string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a balanced transaction to the journal",
		Long: `Post a balanced transaction to the journal.

Entries are given as repeated --debit and --credit flags in code:amount form:

  tally post --debit 1000:500.00 --credit 4000:500.00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(dir)
			if err != nil {
				return err
			}
			defer env.Close()

			postedAt := time.Now().UTC()
			if dateStr != "" {
				postedAt, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", dateStr, err)
				}
			}

			if txnID == "" {
				txnID = uuid.NewString()
			}

			entries, err := parseEntries(debits, credits)
			if err != nil {
				return err
			}

			err = env.journal.Post(journal.PostParams{
				TransactionID: txnID,
				PostedAt:      postedAt,
				Reverses:      reverses,
				Entries:       entries,
			})
			if err != nil {
				return err
			}

			entry := auditlog.Entry{
				Timestamp:     time.Now().UTC(),
				Actor:         "cli",
				Action:        "post_transaction",
				Details:       describeEntries(entries),
				TransactionID: txnID,
			}
			if err := auditlog.Append(env.root, []auditlog.Entry{entry}); err != nil {
				return fmt.Errorf("writing audit log: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Posted %s\n", txnID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVar(&txnID, "id", "", "transaction ID (generated if omitted)")
	cmd.Flags().StringVar(&dateStr, "date", "", "posting date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&reverses, "reverses", "", "ID of the transaction this one offsets")
	cmd.Flags().StringArrayVar(&debits, "debit", nil, "debit entry as code:amount (repeatable)")
	cmd.Flags().StringArrayVar(&credits, "credit", nil, "credit entry as code:amount (repeatable)")

	return cmd
}

// parseEntries converts code:amount flag values into journal entries.
func parseEntries(debits, credits []string) ([]journal.Entry, error) {
	var entries []journal.Entry
	for _, spec := range debits {
		e, err := parseEntry(spec, model.SideDebit)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	for _, spec := range credits {
		e, err := parseEntry(spec, model.SideCredit)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseEntry(spec string, side model.Side) (journal.Entry, error) {
	code, amountStr, ok := strings.Cut(spec, ":")
	if !ok || code == "" || amountStr == "" {
		return journal.Entry{}, fmt.Errorf("invalid entry %q, want code:amount", spec)
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("parsing amount in %q: %w", spec, err)
	}

	return journal.Entry{AccountCode: code, Side: side, Amount: amount}, nil
}

func describeEntries(entries []journal.Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s %s %s", e.Side, e.AccountCode, e.Amount.StringFixed(2))
	}
	return strings.Join(parts, ", ")
}

// Package export renders trial-balance reports to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tally-dev/tally/internal/model"
)

// Header is the CSV header for a trial-balance export.
const Header = "account_code,account_name,debit,credit"

// WriteTrialBalance writes a trial balance as CSV: one row per account plus
// a trailing TOTAL row.
func WriteTrialBalance(w io.Writer, tb *model.TrialBalance) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range tb.Rows {
		record := []string{
			row.AccountCode,
			row.AccountName,
			row.Debit.StringFixed(2),
			row.Credit.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	total := []string{
		"TOTAL",
		"",
		tb.TotalDebits.StringFixed(2),
		tb.TotalCredits.StringFixed(2),
	}
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}

	return cw.Error()
}

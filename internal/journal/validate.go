package journal

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// ValidationError describes a single precondition violation found while
// admitting a transaction. Err is the taxonomy sentinel it wraps.
type ValidationError struct {
	TransactionID string
	AccountCode   string
	Err           error
	Description   string
}

func (e ValidationError) Error() string {
	if e.AccountCode != "" {
		return fmt.Sprintf("[%s] account %s: %s", e.TransactionID, e.AccountCode, e.Description)
	}
	return fmt.Sprintf("[%s] %s", e.TransactionID, e.Description)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// ValidateEntries enforces the journal admission preconditions on a candidate
// transaction: known and active accounts, positive currency-precision amounts,
// valid sides, and exact debit/credit balance. The returned error reports a
// registry read failure, not a validation outcome.
func ValidateEntries(txID string, entries []Entry, accounts AccountDirectory) ([]ValidationError, error) {
	var verrs []ValidationError

	if len(entries) == 0 {
		return []ValidationError{{
			TransactionID: txID,
			Err:           model.ErrUnbalancedTransaction,
			Description:   "transaction has no entries",
		}}, nil
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, e := range entries {
		if !e.Side.Valid() {
			verrs = append(verrs, ValidationError{
				TransactionID: txID,
				AccountCode:   e.AccountCode,
				Err:           model.ErrInvalidSide,
				Description:   fmt.Sprintf("side %q is neither debit nor credit", e.Side),
			})
			continue
		}

		if !e.Amount.IsPositive() {
			verrs = append(verrs, ValidationError{
				TransactionID: txID,
				AccountCode:   e.AccountCode,
				Err:           model.ErrNonPositiveAmount,
				Description:   fmt.Sprintf("amount %s must be positive", e.Amount),
			})
		} else if !centsExact(e.Amount) {
			verrs = append(verrs, ValidationError{
				TransactionID: txID,
				AccountCode:   e.AccountCode,
				Err:           model.ErrInvalidPrecision,
				Description:   fmt.Sprintf("amount %s has more than 2 decimal places", e.Amount),
			})
		}

		acct, err := accounts.Lookup(e.AccountCode)
		switch {
		case errors.Is(err, model.ErrAccountNotFound):
			verrs = append(verrs, ValidationError{
				TransactionID: txID,
				AccountCode:   e.AccountCode,
				Err:           model.ErrAccountNotFound,
				Description:   "unknown account",
			})
		case err != nil:
			return nil, fmt.Errorf("resolving account %s: %w", e.AccountCode, err)
		case acct.Retired:
			verrs = append(verrs, ValidationError{
				TransactionID: txID,
				AccountCode:   e.AccountCode,
				Err:           model.ErrAccountRetired,
				Description:   "account is retired",
			})
		}

		if e.Side == model.SideDebit {
			totalDebit = totalDebit.Add(e.Amount)
		} else {
			totalCredit = totalCredit.Add(e.Amount)
		}
	}

	if !totalDebit.Equal(totalCredit) {
		verrs = append(verrs, ValidationError{
			TransactionID: txID,
			Err:           model.ErrUnbalancedTransaction,
			Description: fmt.Sprintf("debits (%s) != credits (%s)",
				totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
		})
	}

	return verrs, nil
}

// centsExact reports whether d has at most 2 decimal places.
func centsExact(d decimal.Decimal) bool {
	cents := d.Mul(decimal.NewFromInt(100))
	return cents.Equal(cents.Floor())
}

// Package journal maintains the append-only posting journal. Transactions are
// admitted only when every precondition holds; there is no update or delete.
// Corrections are new transactions with swapped sides that reference the
// original via Reverses.
package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// AccountDirectory resolves account codes against the chart of accounts.
type AccountDirectory interface {
	Lookup(code string) (model.Account, error)
}

// Store is the persistence surface the journal needs. AppendTransaction must
// be atomic: the insert-if-absent check on the transaction ID and the posting
// append succeed or fail together, and readers never observe a partial
// transaction.
type Store interface {
	AppendTransaction(txn model.Transaction, postings []model.Posting) error
	ForEachPosting(period model.Period, fn func(model.Posting) error) error
}

// Service provides business logic for the posting journal.
type Service struct {
	store    Store
	accounts AccountDirectory
}

// NewService creates a journal Service.
func NewService(store Store, accounts AccountDirectory) *Service {
	return &Service{store: store, accounts: accounts}
}

// Entry is one side of a transaction to be posted.
type Entry struct {
	AccountCode string
	Side        model.Side
	Amount      decimal.Decimal
}

// PostParams holds parameters for committing one balanced transaction.
type PostParams struct {
	TransactionID string
	PostedAt      time.Time // zero means now
	Reverses      string    // optional ID of the transaction being offset
	Entries       []Entry
}

// Post validates and commits a transaction. All preconditions are checked
// before any state mutation; on success every entry becomes visible at once.
// Posting the same transaction ID twice fails with ErrDuplicateTransaction,
// which an idempotent caller may treat as success.
func (s *Service) Post(params PostParams) error {
	if params.TransactionID == "" {
		return fmt.Errorf("transaction ID must not be empty")
	}

	postedAt := params.PostedAt
	if postedAt.IsZero() {
		postedAt = time.Now().UTC()
	}

	verrs, err := ValidateEntries(params.TransactionID, params.Entries, s.accounts)
	if err != nil {
		return err
	}
	if len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, ve := range verrs {
			errs[i] = ve
		}
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}

	period := model.PeriodOf(postedAt)
	postings := make([]model.Posting, len(params.Entries))
	for i, e := range params.Entries {
		postings[i] = model.Posting{
			TransactionID: params.TransactionID,
			AccountCode:   e.AccountCode,
			Side:          e.Side,
			Amount:        e.Amount,
			PostedAt:      postedAt,
			Period:        period,
		}
	}

	txn := model.Transaction{
		ID:       params.TransactionID,
		Reverses: params.Reverses,
		PostedAt: postedAt,
	}
	if err := s.store.AppendTransaction(txn, postings); err != nil {
		if errors.Is(err, model.ErrDuplicateTransaction) {
			return fmt.Errorf("%w: %s", model.ErrDuplicateTransaction, params.TransactionID)
		}
		return fmt.Errorf("committing transaction %s: %w", params.TransactionID, err)
	}
	return nil
}

// ForEachEntry streams committed postings in scope. Each call re-reads the
// store, so independent callers iterate without shared cursor state.
func (s *Service) ForEachEntry(period model.Period, fn func(model.Posting) error) error {
	return s.store.ForEachPosting(period, fn)
}

// EntriesForPeriod returns all committed postings in scope as a fresh slice.
func (s *Service) EntriesForPeriod(period model.Period) ([]model.Posting, error) {
	var postings []model.Posting
	err := s.ForEachEntry(period, func(p model.Posting) error {
		postings = append(postings, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading journal for %s: %w", period, err)
	}
	return postings, nil
}

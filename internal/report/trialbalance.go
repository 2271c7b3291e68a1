// Package report computes trial-balance reports from the journal and the
// chart of accounts. Reports are always recomputed from current journal
// state; nothing is cached, because freshness dominates the trivial
// recomputation cost at this data scale.
package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// AccountDirectory resolves account codes to accounts.
type AccountDirectory interface {
	Lookup(code string) (model.Account, error)
}

// PostingSource streams committed postings for a scope.
type PostingSource interface {
	ForEachEntry(period model.Period, fn func(model.Posting) error) error
}

// Service is the read-only reporting facade over the journal and registry.
type Service struct {
	accounts AccountDirectory
	journal  PostingSource
}

// NewService creates a reporting Service.
func NewService(accounts AccountDirectory, journal PostingSource) *Service {
	return &Service{accounts: accounts, journal: journal}
}

type accumulator struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

// TrialBalance folds all postings in scope into per-account gross totals.
// The zero Period means all-time. Accounts with no activity in scope are
// omitted; rows are ordered by account code. An out-of-balance result is
// returned as data (Balanced false), never as an error: the journal enforces
// per-transaction balance at commit time, so an imbalance here is an
// integrity bug the caller needs to see the numbers for.
func (s *Service) TrialBalance(period model.Period) (*model.TrialBalance, error) {
	sums := make(map[string]*accumulator)
	err := s.journal.ForEachEntry(period, func(p model.Posting) error {
		acc := sums[p.AccountCode]
		if acc == nil {
			acc = &accumulator{debit: decimal.Zero, credit: decimal.Zero}
			sums[p.AccountCode] = acc
		}
		if p.Side == model.SideDebit {
			acc.debit = acc.debit.Add(p.Amount)
		} else {
			acc.credit = acc.credit.Add(p.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrJournalUnavailable, err)
	}

	codes := make([]string, 0, len(sums))
	for code := range sums {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	tb := &model.TrialBalance{
		Period:       period,
		Rows:         make([]model.TrialBalanceRow, 0, len(codes)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, code := range codes {
		acct, err := s.accounts.Lookup(code)
		if err != nil {
			if errors.Is(err, model.ErrAccountNotFound) {
				// The journal only admits registered codes and accounts are
				// never deleted, so a miss here is a registry read problem.
				return nil, fmt.Errorf("%w: account %s missing", model.ErrRegistryUnavailable, code)
			}
			return nil, fmt.Errorf("%w: %v", model.ErrRegistryUnavailable, err)
		}

		acc := sums[code]
		tb.Rows = append(tb.Rows, model.TrialBalanceRow{
			AccountCode: code,
			AccountName: acct.Name,
			NormalSide:  acct.NormalSide,
			Debit:       acc.debit,
			Credit:      acc.credit,
		})
		tb.TotalDebits = tb.TotalDebits.Add(acc.debit)
		tb.TotalCredits = tb.TotalCredits.Add(acc.credit)
	}

	tb.Balanced = tb.TotalDebits.Equal(tb.TotalCredits)
	return tb, nil
}

// Package storage provides the persistence collaborator for the ledger core.
// The core needs only four operations from it: atomic unique-insert for
// accounts and transactions, append for postings, scan-by-period for postings,
// and point lookup for accounts. Any backend satisfying those is compliant;
// this package ships an in-memory store and a SQLite store.
package storage

import (
	"sort"
	"sync"

	"github.com/tally-dev/tally/internal/model"
)

// Memory is a mutex-guarded in-process store. Insert-if-absent checks run
// under the write lock, so concurrent duplicate inserts cannot both succeed.
// Intended for tests and zero-setup usage.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]model.Account
	txns     map[string]model.Transaction
	postings []model.Posting // append order
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[string]model.Account),
		txns:     make(map[string]model.Transaction),
	}
}

// InsertAccount adds an account, failing if the code is already taken.
func (m *Memory) InsertAccount(a model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.accounts[a.Code]; exists {
		return model.ErrDuplicateAccountCode
	}
	m.accounts[a.Code] = a
	return nil
}

// GetAccount returns the account with the given code.
func (m *Memory) GetAccount(code string) (model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.accounts[code]
	if !ok {
		return model.Account{}, model.ErrAccountNotFound
	}
	return a, nil
}

// UpdateAccount replaces an existing account's attributes.
func (m *Memory) UpdateAccount(a model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[a.Code]; !ok {
		return model.ErrAccountNotFound
	}
	m.accounts[a.Code] = a
	return nil
}

// ListAccounts returns all accounts sorted by code.
func (m *Memory) ListAccounts() ([]model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	accounts := make([]model.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

// AccountHasPostings reports whether any posting references the account.
func (m *Memory) AccountHasPostings(code string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.postings {
		if p.AccountCode == code {
			return true, nil
		}
	}
	return false, nil
}

// AppendTransaction commits a transaction and its postings atomically.
// The insert-if-absent check on the transaction ID and the posting append
// happen under one write lock, so readers never observe a partial transaction.
func (m *Memory) AppendTransaction(txn model.Transaction, postings []model.Posting) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.txns[txn.ID]; exists {
		return model.ErrDuplicateTransaction
	}
	m.txns[txn.ID] = txn
	m.postings = append(m.postings, postings...)
	return nil
}

// ForEachPosting streams postings in append order, restricted to period when
// it is non-zero. The snapshot is taken under the read lock, so fn never sees
// a partially committed transaction.
func (m *Memory) ForEachPosting(period model.Period, fn func(model.Posting) error) error {
	m.mu.RLock()
	snapshot := make([]model.Posting, len(m.postings))
	copy(snapshot, m.postings)
	m.mu.RUnlock()

	for _, p := range snapshot {
		if !period.IsZero() && p.Period != period {
			continue
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

// Package registry manages the chart of accounts: admission of new accounts,
// point lookup and soft retirement. Accounts with postings are never deleted.
package registry

import (
	"errors"
	"fmt"

	"github.com/tally-dev/tally/internal/model"
)

// Store is the persistence surface the registry needs. InsertAccount must be
// an atomic insert-if-absent on the account code.
type Store interface {
	InsertAccount(model.Account) error
	GetAccount(code string) (model.Account, error)
	UpdateAccount(model.Account) error
	ListAccounts() ([]model.Account, error)
	AccountHasPostings(code string) (bool, error)
}

// Service provides business logic for the chart of accounts.
type Service struct {
	store Store
}

// NewService creates a registry Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register admits a new account, deriving its normal balance side from the
// account type. All validation happens before any store mutation.
func (s *Service) Register(code, name string, accountType model.AccountType) (model.Account, error) {
	if code == "" {
		return model.Account{}, fmt.Errorf("account code must not be empty")
	}
	if !accountType.Valid() {
		return model.Account{}, fmt.Errorf("%w: %q", model.ErrInvalidAccountType, accountType)
	}

	acct := model.Account{
		Code:       code,
		Name:       name,
		Type:       accountType,
		NormalSide: accountType.NormalSide(),
	}
	if err := s.store.InsertAccount(acct); err != nil {
		if errors.Is(err, model.ErrDuplicateAccountCode) {
			return model.Account{}, fmt.Errorf("%w: %s", model.ErrDuplicateAccountCode, code)
		}
		return model.Account{}, fmt.Errorf("registering account %s: %w", code, err)
	}
	return acct, nil
}

// Lookup returns the account with the given code.
func (s *Service) Lookup(code string) (model.Account, error) {
	acct, err := s.store.GetAccount(code)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return model.Account{}, fmt.Errorf("%w: %s", model.ErrAccountNotFound, code)
		}
		return model.Account{}, fmt.Errorf("looking up account %s: %w", code, err)
	}
	return acct, nil
}

// All returns every account, active and retired, sorted by code.
func (s *Service) All() ([]model.Account, error) {
	accounts, err := s.store.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return accounts, nil
}

// Retire marks an account inactive. An account with postings cannot be
// retired unless force is set; force is reserved for administrative
// correction flows.
func (s *Service) Retire(code string, force bool) error {
	acct, err := s.Lookup(code)
	if err != nil {
		return err
	}

	if !force {
		has, err := s.store.AccountHasPostings(code)
		if err != nil {
			return fmt.Errorf("checking activity for account %s: %w", code, err)
		}
		if has {
			return fmt.Errorf("%w: %s", model.ErrAccountHasActivity, code)
		}
	}

	acct.Retired = true
	if err := s.store.UpdateAccount(acct); err != nil {
		return fmt.Errorf("retiring account %s: %w", code, err)
	}
	return nil
}

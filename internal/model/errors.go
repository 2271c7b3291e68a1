package model

import "errors"

// Ledger error taxonomy. Validation failures are detected before any state
// mutation; collaborator-unavailability errors propagate unchanged.
var (
	ErrDuplicateAccountCode  = errors.New("duplicate account code")
	ErrInvalidAccountType    = errors.New("invalid account type")
	ErrAccountNotFound       = errors.New("account not found")
	ErrAccountRetired        = errors.New("account retired")
	ErrAccountHasActivity    = errors.New("account has activity")
	ErrNonPositiveAmount     = errors.New("non-positive amount")
	ErrInvalidPrecision      = errors.New("amount exceeds currency precision")
	ErrInvalidSide           = errors.New("invalid posting side")
	ErrUnbalancedTransaction = errors.New("unbalanced transaction")
	ErrDuplicateTransaction  = errors.New("duplicate transaction")
	ErrRegistryUnavailable   = errors.New("registry unavailable")
	ErrJournalUnavailable    = errors.New("journal unavailable")
)

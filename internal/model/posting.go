package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the debit or credit side of a posting.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// Valid reports whether s is debit or credit.
func (s Side) Valid() bool {
	return s == SideDebit || s == SideCredit
}

// Posting is an atomic movement against exactly one account. Postings are
// immutable once committed; corrections are offsetting postings in a new
// transaction, never in-place edits.
type Posting struct {
	TransactionID string
	AccountCode   string
	Side          Side
	Amount        decimal.Decimal // always positive
	PostedAt      time.Time
	Period        Period
}

// Transaction groups the postings of one business event. Its postings must
// balance exactly: sum(debits) == sum(credits). Reverses optionally names the
// transaction this one offsets.
type Transaction struct {
	ID       string
	Reverses string
	PostedAt time.Time
}

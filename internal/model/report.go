package model

import "github.com/shopspring/decimal"

// TrialBalanceRow is one account's gross activity in the requested scope.
// Debit and Credit are raw sums, not netted, so gross activity stays visible.
type TrialBalanceRow struct {
	AccountCode string
	AccountName string
	NormalSide  Side
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Balance returns the netted balance on the account's normal side:
// debit - credit for debit-normal accounts, credit - debit otherwise.
func (r TrialBalanceRow) Balance() decimal.Decimal {
	if r.NormalSide == SideDebit {
		return r.Debit.Sub(r.Credit)
	}
	return r.Credit.Sub(r.Debit)
}

// TrialBalance is a derived, recomputable view over the journal. It is never
// persisted; it is rebuilt on demand from current journal state. Balanced is
// an exact comparison of the grand totals; false indicates a journal-integrity
// bug, surfaced as data so an accountant can see the numbers.
type TrialBalance struct {
	Period       Period
	Rows         []TrialBalanceRow // sorted by AccountCode ascending
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Balanced     bool
}

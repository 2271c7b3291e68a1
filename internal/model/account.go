package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the five recognized account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// NormalSide returns the side on which this account type accumulates value:
// debit for assets and expenses, credit for liabilities, equity and revenue.
func (t AccountType) NormalSide() Side {
	switch t {
	case AccountTypeAsset, AccountTypeExpense:
		return SideDebit
	default:
		return SideCredit
	}
}

// Account is one entry in the chart of accounts. Code is the stable,
// human-assigned identity (e.g. "1000"); NormalSide is derived from Type at
// registration and never changes afterwards.
type Account struct {
	Code       string
	Name       string
	Type       AccountType
	NormalSide Side
	Retired    bool
}

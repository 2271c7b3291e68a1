package registry

import "github.com/tally-dev/tally/internal/model"

// SeedAccount is one row of the default chart of accounts.
type SeedAccount struct {
	Code string
	Name string
	Type model.AccountType
}

// DefaultChart returns the chart of accounts seeded by `tally init`.
func DefaultChart() []SeedAccount {
	return []SeedAccount{
		{Code: "1000", Name: "Cash", Type: model.AccountTypeAsset},
		{Code: "1100", Name: "Accounts Receivable", Type: model.AccountTypeAsset},
		{Code: "1200", Name: "Inventory", Type: model.AccountTypeAsset},
		{Code: "2000", Name: "Accounts Payable", Type: model.AccountTypeLiability},
		{Code: "2100", Name: "Wages Payable", Type: model.AccountTypeLiability},
		{Code: "3000", Name: "Owner's Equity", Type: model.AccountTypeEquity},
		{Code: "4000", Name: "Sales Revenue", Type: model.AccountTypeRevenue},
		{Code: "4100", Name: "Service Revenue", Type: model.AccountTypeRevenue},
		{Code: "5000", Name: "Cost of Goods Sold", Type: model.AccountTypeExpense},
		{Code: "5100", Name: "Payroll Expense", Type: model.AccountTypeExpense},
		{Code: "5200", Name: "Office Supplies", Type: model.AccountTypeExpense},
		{Code: "5300", Name: "Purchasing Expense", Type: model.AccountTypeExpense},
	}
}

// Seed registers the default chart on a fresh ledger.
func (s *Service) Seed() error {
	for _, a := range DefaultChart() {
		if _, err := s.Register(a.Code, a.Name, a.Type); err != nil {
			return err
		}
	}
	return nil
}

package storage

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testAccount(code string) model.Account {
	return model.Account{
		Code:       code,
		Name:       "Cash",
		Type:       model.AccountTypeAsset,
		NormalSide: model.SideDebit,
	}
}

func testTransaction(id string, period model.Period) (model.Transaction, []model.Posting) {
	postedAt := time.Date(period.Year, time.Month(period.Month), 15, 0, 0, 0, 0, time.UTC)
	txn := model.Transaction{ID: id, PostedAt: postedAt}
	postings := []model.Posting{
		{TransactionID: id, AccountCode: "1000", Side: model.SideDebit, Amount: dec("500.00"), PostedAt: postedAt, Period: period},
		{TransactionID: id, AccountCode: "4000", Side: model.SideCredit, Amount: dec("500.00"), PostedAt: postedAt, Period: period},
	}
	return txn, postings
}

func TestMemory_InsertAccount_Duplicate(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.InsertAccount(testAccount("1000")))

	err := store.InsertAccount(testAccount("1000"))
	assert.ErrorIs(t, err, model.ErrDuplicateAccountCode)

	accounts, err := store.ListAccounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestMemory_GetAccount_NotFound(t *testing.T) {
	store := NewMemory()
	_, err := store.GetAccount("9999")
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestMemory_UpdateAccount(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.InsertAccount(testAccount("1000")))

	a, err := store.GetAccount("1000")
	require.NoError(t, err)
	a.Retired = true
	require.NoError(t, store.UpdateAccount(a))

	got, err := store.GetAccount("1000")
	require.NoError(t, err)
	assert.True(t, got.Retired)

	err = store.UpdateAccount(testAccount("9999"))
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestMemory_AppendTransaction_Duplicate(t *testing.T) {
	store := NewMemory()
	txn, postings := testTransaction("T1", model.Period{Year: 2025, Month: 1})
	require.NoError(t, store.AppendTransaction(txn, postings))

	err := store.AppendTransaction(txn, postings)
	assert.ErrorIs(t, err, model.ErrDuplicateTransaction)

	// Losing call must leave no postings behind.
	var count int
	require.NoError(t, store.ForEachPosting(model.Period{}, func(model.Posting) error {
		count++
		return nil
	}))
	assert.Equal(t, 2, count)
}

func TestMemory_ForEachPosting_PeriodScope(t *testing.T) {
	store := NewMemory()
	jan := model.Period{Year: 2025, Month: 1}
	feb := model.Period{Year: 2025, Month: 2}

	txn1, p1 := testTransaction("T1", jan)
	require.NoError(t, store.AppendTransaction(txn1, p1))
	txn2, p2 := testTransaction("T2", feb)
	require.NoError(t, store.AppendTransaction(txn2, p2))

	var ids []string
	require.NoError(t, store.ForEachPosting(jan, func(p model.Posting) error {
		ids = append(ids, p.TransactionID)
		return nil
	}))
	assert.Equal(t, []string{"T1", "T1"}, ids)
}

func TestMemory_AccountHasPostings(t *testing.T) {
	store := NewMemory()
	has, err := store.AccountHasPostings("1000")
	require.NoError(t, err)
	assert.False(t, has)

	txn, postings := testTransaction("T1", model.Period{Year: 2025, Month: 1})
	require.NoError(t, store.AppendTransaction(txn, postings))

	has, err = store.AccountHasPostings("1000")
	require.NoError(t, err)
	assert.True(t, has)
}

package journal

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/model"
)

// mockDirectory implements AccountDirectory for testing.
type mockDirectory struct {
	accounts map[string]model.Account
	failWith error
}

func (m *mockDirectory) Lookup(code string) (model.Account, error) {
	if m.failWith != nil {
		return model.Account{}, m.failWith
	}
	a, ok := m.accounts[code]
	if !ok {
		return model.Account{}, fmt.Errorf("%w: %s", model.ErrAccountNotFound, code)
	}
	return a, nil
}

func newMockDirectory(codes ...string) *mockDirectory {
	m := &mockDirectory{accounts: make(map[string]model.Account)}
	for _, code := range codes {
		m.accounts[code] = model.Account{
			Code:       code,
			Type:       model.AccountTypeAsset,
			NormalSide: model.SideDebit,
		}
	}
	return m
}

func (m *mockDirectory) retire(code string) {
	a := m.accounts[code]
	a.Retired = true
	m.accounts[code] = a
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func balancedEntries(amount string) []Entry {
	return []Entry{
		{AccountCode: "1000", Side: model.SideDebit, Amount: dec(amount)},
		{AccountCode: "4000", Side: model.SideCredit, Amount: dec(amount)},
	}
}

var defaultDirectory = newMockDirectory("1000", "4000")

func TestValidate_Balanced(t *testing.T) {
	verrs, err := ValidateEntries("T1", balancedEntries("100.00"), defaultDirectory)
	require.NoError(t, err)
	assert.Empty(t, verrs)
}

func TestValidate_Unbalanced(t *testing.T) {
	entries := []Entry{
		{AccountCode: "1000", Side: model.SideDebit, Amount: dec("500.00")},
		{AccountCode: "4000", Side: model.SideCredit, Amount: dec("400.00")},
	}
	verrs, err := ValidateEntries("T2", entries, defaultDirectory)
	require.NoError(t, err)
	require.Len(t, verrs, 1)
	assert.ErrorIs(t, verrs[0], model.ErrUnbalancedTransaction)
}

func TestValidate_MultiLegBalance(t *testing.T) {
	// A split: one debit covered by two credits.
	entries := []Entry{
		{AccountCode: "1000", Side: model.SideDebit, Amount: dec("150.00")},
		{AccountCode: "4000", Side: model.SideCredit, Amount: dec("100.00")},
		{AccountCode: "4000", Side: model.SideCredit, Amount: dec("50.00")},
	}
	verrs, err := ValidateEntries("T1", entries, defaultDirectory)
	require.NoError(t, err)
	assert.Empty(t, verrs)
}

func TestValidate_NoEntries(t *testing.T) {
	verrs, err := ValidateEntries("T1", nil, defaultDirectory)
	require.NoError(t, err)
	require.Len(t, verrs, 1)
	assert.ErrorIs(t, verrs[0], model.ErrUnbalancedTransaction)
}

func TestValidate_NonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-10.00"} {
		entries := []Entry{
			{AccountCode: "1000", Side: model.SideDebit, Amount: dec(amount)},
			{AccountCode: "4000", Side: model.SideCredit, Amount: dec(amount)},
		}
		verrs, err := ValidateEntries("T1", entries, defaultDirectory)
		require.NoError(t, err)
		require.NotEmpty(t, verrs, "amount %s", amount)
		assert.ErrorIs(t, verrs[0], model.ErrNonPositiveAmount)
	}
}

func TestValidate_TooManyDecimalPlaces(t *testing.T) {
	entries := []Entry{
		{AccountCode: "1000", Side: model.SideDebit, Amount: dec("10.005")},
		{AccountCode: "4000", Side: model.SideCredit, Amount: dec("10.005")},
	}
	verrs, err := ValidateEntries("T1", entries, defaultDirectory)
	require.NoError(t, err)
	require.NotEmpty(t, verrs)
	assert.ErrorIs(t, verrs[0], model.ErrInvalidPrecision)
}

func TestValidate_UnknownAccount(t *testing.T) {
	entries := []Entry{
		{AccountCode: "1000", Side: model.SideDebit, Amount: dec("25.00")},
		{AccountCode: "9999", Side: model.SideCredit, Amount: dec("25.00")},
	}
	verrs, err := ValidateEntries("T1", entries, defaultDirectory)
	require.NoError(t, err)
	require.Len(t, verrs, 1)
	assert.ErrorIs(t, verrs[0], model.ErrAccountNotFound)
	assert.Equal(t, "9999", verrs[0].AccountCode)
}

func TestValidate_RetiredAccount(t *testing.T) {
	dir := newMockDirectory("1000", "4000")
	dir.retire("4000")

	verrs, err := ValidateEntries("T1", balancedEntries("25.00"), dir)
	require.NoError(t, err)
	require.Len(t, verrs, 1)
	assert.ErrorIs(t, verrs[0], model.ErrAccountRetired)
}

func TestValidate_InvalidSide(t *testing.T) {
	entries := []Entry{
		{AccountCode: "1000", Side: model.Side("both"), Amount: dec("25.00")},
		{AccountCode: "4000", Side: model.SideCredit, Amount: dec("25.00")},
	}
	verrs, err := ValidateEntries("T1", entries, defaultDirectory)
	require.NoError(t, err)
	require.NotEmpty(t, verrs)
	assert.ErrorIs(t, verrs[0], model.ErrInvalidSide)
}

func TestValidate_RandomEntrySets(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		n := 2 + rng.Intn(5)
		entries := make([]Entry, n)
		totalDebit := decimal.Zero
		totalCredit := decimal.Zero
		for j := range entries {
			side := model.SideDebit
			if rng.Intn(2) == 1 {
				side = model.SideCredit
			}
			amount := decimal.NewFromInt(int64(1 + rng.Intn(100000))).Div(decimal.NewFromInt(100))
			code := "1000"
			if rng.Intn(2) == 1 {
				code = "4000"
			}
			entries[j] = Entry{AccountCode: code, Side: side, Amount: amount}
			if side == model.SideDebit {
				totalDebit = totalDebit.Add(amount)
			} else {
				totalCredit = totalCredit.Add(amount)
			}
		}

		verrs, err := ValidateEntries("T-fuzz", entries, defaultDirectory)
		require.NoError(t, err)
		if totalDebit.Equal(totalCredit) {
			assert.Empty(t, verrs, "balanced set %d must be admitted", i)
		} else {
			require.NotEmpty(t, verrs, "unbalanced set %d must be rejected", i)
			assert.ErrorIs(t, verrs[0], model.ErrUnbalancedTransaction)
		}
	}
}

func TestValidate_DirectoryFailure(t *testing.T) {
	dir := newMockDirectory("1000", "4000")
	dir.failWith = fmt.Errorf("registry offline")

	_, err := ValidateEntries("T1", balancedEntries("25.00"), dir)
	assert.Error(t, err)
}

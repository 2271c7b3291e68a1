package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/auditlog"
)

func runTally(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func initLedger(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runTally(t, "init", dir, "--name", "Test Biz")
	require.NoError(t, err)
	return dir
}

func TestInit_CreatesLedger(t *testing.T) {
	dir := t.TempDir()
	out, err := runTally(t, "init", dir, "--name", "Test Biz")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized ledger for Test Biz")

	for _, f := range []string{"tally.yaml", "ledger.db", filepath.Join("logs", "audit-log.csv")} {
		_, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "%s should exist", f)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tally.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Test Biz")
}

func TestInit_RequiresName(t *testing.T) {
	dir := t.TempDir()
	_, err := runTally(t, "init", dir)
	require.Error(t, err)
}

func TestInit_AlreadyInitialized(t *testing.T) {
	dir := initLedger(t)
	_, err := runTally(t, "init", dir, "--name", "Again")
	require.Error(t, err)
}

func TestAccountList_SeededChart(t *testing.T) {
	dir := initLedger(t)

	out, err := runTally(t, "account", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1000")
	assert.Contains(t, out, "Cash")
	assert.Contains(t, out, "debit-normal")
	assert.Contains(t, out, "4000")
	assert.Contains(t, out, "credit-normal")
}

func TestAccountAdd_And_Retire(t *testing.T) {
	dir := initLedger(t)

	out, err := runTally(t, "account", "add", "6000", "Consulting Revenue", "revenue", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Registered 6000")

	// Duplicate code rejected.
	_, err = runTally(t, "account", "add", "6000", "Other", "revenue", "--dir", dir)
	require.Error(t, err)

	out, err = runTally(t, "account", "retire", "6000", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Retired 6000")

	out, err = runTally(t, "account", "list", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "(retired)")
}

func TestPost_And_TrialBalance(t *testing.T) {
	dir := initLedger(t)

	out, err := runTally(t, "post",
		"--dir", dir,
		"--id", "T1",
		"--date", "2025-01-15",
		"--debit", "1000:500.00",
		"--credit", "4000:500.00",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Posted T1")

	out, err = runTally(t, "trialbalance", "--dir", dir, "--period", "2025-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Cash")
	assert.Contains(t, out, "500.00")
	assert.NotContains(t, out, "OUT OF BALANCE")

	// CSV output.
	out, err = runTally(t, "trialbalance", "--dir", dir, "--csv")
	require.NoError(t, err)
	assert.Contains(t, out, "account_code,account_name,debit,credit")
	assert.Contains(t, out, "1000,Cash,500.00,0.00")
	assert.Contains(t, out, "TOTAL,,500.00,500.00")
}

func TestPost_DuplicateTransaction(t *testing.T) {
	dir := initLedger(t)

	args := []string{"post", "--dir", dir, "--id", "T1",
		"--debit", "1000:10.00", "--credit", "4000:10.00"}
	_, err := runTally(t, args...)
	require.NoError(t, err)

	_, err = runTally(t, args...)
	require.Error(t, err)
}

func TestPost_Unbalanced(t *testing.T) {
	dir := initLedger(t)

	_, err := runTally(t, "post", "--dir", dir,
		"--debit", "1000:500.00", "--credit", "4000:400.00")
	require.Error(t, err)

	// Journal unchanged: trial balance stays empty.
	out, err := runTally(t, "trialbalance", "--dir", dir, "--csv")
	require.NoError(t, err)
	assert.NotContains(t, out, "1000,Cash")
}

func TestPost_GeneratesTransactionID(t *testing.T) {
	dir := initLedger(t)

	out, err := runTally(t, "post", "--dir", dir,
		"--debit", "1000:10.00", "--credit", "4000:10.00")
	require.NoError(t, err)
	assert.Contains(t, out, "Posted ")
}

func TestPost_WritesAuditLog(t *testing.T) {
	dir := initLedger(t)

	_, err := runTally(t, "post", "--dir", dir, "--id", "T1",
		"--debit", "1000:10.00", "--credit", "4000:10.00")
	require.NoError(t, err)

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, "post_transaction", last.Action)
	assert.Equal(t, "T1", last.TransactionID)
}

func TestTrialBalance_InvalidPeriod(t *testing.T) {
	dir := initLedger(t)
	_, err := runTally(t, "trialbalance", "--dir", dir, "--period", "January")
	require.Error(t, err)
}

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/journal"
	"github.com/tally-dev/tally/internal/registry"
	"github.com/tally-dev/tally/internal/report"
	"github.com/tally-dev/tally/internal/storage"
)

// ledgerEnv wires the services of an opened ledger directory.
type ledgerEnv struct {
	root     string
	cfg      *config.Config
	store    *storage.SQLite
	registry *registry.Service
	journal  *journal.Service
	report   *report.Service
}

// openLedger loads tally.yaml from dir and opens the ledger database.
func openLedger(dir string) (*ledgerEnv, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, "tally.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading ledger config (run `tally init` first?): %w", err)
	}

	dbPath := cfg.Ledger.DBPath
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(absDir, dbPath)
	}

	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	reg := registry.NewService(store)
	jnl := journal.NewService(store, reg)

	return &ledgerEnv{
		root:     absDir,
		cfg:      cfg,
		store:    store,
		registry: reg,
		journal:  jnl,
		report:   report.NewService(reg, jnl),
	}, nil
}

// Close releases the underlying database.
func (l *ledgerEnv) Close() error {
	return l.store.Close()
}

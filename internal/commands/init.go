package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/auditlog"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/registry"
	"github.com/tally-dev/tally/internal/storage"
)

func newInitCommand() *cobra.Command {
	var name string
	var entityType string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, name, entityType)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", "llc_single_member", "entity type")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name, entityType string) error {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	cfgPath := filepath.Join(dir, "tally.yaml")
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("ledger already initialized at %s", dir)
	}

	cfg := config.Default(name, entityType)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	store, err := storage.OpenSQLite(filepath.Join(dir, cfg.Ledger.DBPath))
	if err != nil {
		return fmt.Errorf("creating ledger database: %w", err)
	}
	defer store.Close()

	// Seed the default chart of accounts.
	reg := registry.NewService(store)
	if err := reg.Seed(); err != nil {
		return fmt.Errorf("seeding chart of accounts: %w", err)
	}

	entry := auditlog.Entry{
		Timestamp: time.Now().UTC(),
		Actor:     "cli",
		Action:    "init",
		Details:   "Initialized ledger for " + name,
	}
	if err := auditlog.Append(dir, []auditlog.Entry{entry}); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized ledger for %s at %s\n", name, dir)
	return nil
}

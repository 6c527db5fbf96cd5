// Command import-legacy loads an export file from the legacy portal into the
// current schema. The export is a single JSON document with "accounts" and
// "transactions" arrays; runs are idempotent.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pixelarcade/platform/internal/infra"
	"github.com/pixelarcade/platform/internal/migration"
)

type exportFile struct {
	Accounts     []migration.LegacyAccount     `json:"accounts"`
	Transactions []migration.LegacyTransaction `json:"transactions"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	var (
		exportPath = flag.String("file", "", "path to the legacy export JSON file")
		verifyOnly = flag.Bool("verify", false, "only verify balances, import nothing")
	)
	flag.Parse()

	if *exportPath == "" {
		return fmt.Errorf("-file is required")
	}

	data, err := os.ReadFile(*exportPath)
	if err != nil {
		return fmt.Errorf("read export file: %w", err)
	}

	var export exportFile
	if err := json.Unmarshal(data, &export); err != nil {
		return fmt.Errorf("parse export file: %w", err)
	}

	ctx := context.Background()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	importer := migration.NewImporter(pool, logger)

	if !*verifyOnly {
		for _, acct := range export.Accounts {
			if _, err := importer.ImportAccount(ctx, acct); err != nil {
				return fmt.Errorf("import account %s: %w", acct.ID, err)
			}
		}

		imported, err := importer.ImportTransactions(ctx, export.Transactions)
		if err != nil {
			return fmt.Errorf("import transactions: %w", err)
		}
		logger.Info("import complete",
			"accounts", len(export.Accounts),
			"transactions_imported", imported,
			"transactions_total", len(export.Transactions))
	}

	mismatches, err := importer.VerifyBalances(ctx, export.Accounts)
	if err != nil {
		return fmt.Errorf("verify balances: %w", err)
	}
	if len(mismatches) > 0 {
		for _, m := range mismatches {
			logger.Error("balance mismatch", "legacy_id", m.LegacyID, "expected", m.Expected, "actual", m.Actual)
		}
		return fmt.Errorf("%d balance mismatches", len(mismatches))
	}

	logger.Info("balances verified", "accounts", len(export.Accounts))
	return nil
}

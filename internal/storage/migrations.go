package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the schema version this build reads and writes.
const ExpectedSchemaVersion = 2

// Migration is a numbered list of DDL statements applied in one transaction.
type Migration struct {
	Description string
	Statements  []string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Sales lines and import batches",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS import_batches (
				id TEXT PRIMARY KEY,
				source TEXT NOT NULL,
				rows INTEGER NOT NULL DEFAULT 0,
				imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS sales (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				hash TEXT UNIQUE NOT NULL,
				date DATETIME NOT NULL,
				customer TEXT NOT NULL,
				item_name TEXT NOT NULL,
				unit TEXT NOT NULL,
				qty INTEGER NOT NULL,
				total_price REAL NOT NULL DEFAULT 0,
				batch_id TEXT NOT NULL REFERENCES import_batches(id) ON DELETE CASCADE,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(date)`,
			`CREATE INDEX IF NOT EXISTS idx_sales_customer ON sales(customer)`,
		},
	},
	{
		Version:     2,
		Description: "Index sales by item key",
		Statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_sales_item ON sales(item_name, unit)`,
		},
	},
}

// Migrate brings the schema up to ExpectedSchemaVersion. Each pending
// migration and its user_version bump commit together.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if current > ExpectedSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, ExpectedSchemaVersion)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := s.apply(ctx, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}
		slog.Debug("Applied migration", "version", m.Version, "description", m.Description)
	}

	return nil
}

func (s *SQLiteStorage) apply(ctx context.Context, m Migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.Statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	// PRAGMA does not accept bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return tx.Commit()
}

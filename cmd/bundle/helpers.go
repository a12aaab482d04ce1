package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/the-bundle-must-flow/internal/common"
	"github.com/Veraticus/the-bundle-must-flow/internal/service"
	"github.com/Veraticus/the-bundle-must-flow/internal/storage"
)

// initStorage opens the configured database and applies migrations.
func initStorage(ctx context.Context) (service.Storage, error) {
	if appConfig == nil {
		return nil, common.ErrMissingConfig
	}

	store, err := storage.NewSQLiteStorage(appConfig.Database.Path)
	if err != nil {
		return nil, common.NewUserError("Failed to open the sales database", err)
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("Opened database", "path", store.Path())
	return store, nil
}

// closeStorage closes store, logging any failure.
func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		slog.Warn("Failed to close database", "error", err)
	}
}

// writeLine writes a line, logging rather than failing on write errors.
func writeLine(w io.Writer, a ...any) {
	if _, err := fmt.Fprintln(w, a...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}

// writef writes formatted output, logging rather than failing on write errors.
func writef(w io.Writer, format string, a ...any) {
	if _, err := fmt.Fprintf(w, format, a...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}

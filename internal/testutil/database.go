// Package testutil provides shared test helpers for the bundle project.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/Veraticus/the-bundle-must-flow/internal/service"
	"github.com/Veraticus/the-bundle-must-flow/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database.
// It automatically handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	// Create in-memory SQLite storage
	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// Run migrations
	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// SeedBaskets stores one sale line per item for each customer basket and
// returns the stored records. All lines share a single import batch.
func (db *TestDB) SeedBaskets(baskets map[string][]string) []model.SaleRecord {
	db.t.Helper()

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	var records []model.SaleRecord
	for customer, items := range baskets {
		for i, item := range items {
			rec := model.SaleRecord{
				Date:       date.AddDate(0, 0, i),
				Customer:   customer,
				ItemName:   item,
				Unit:       "PCS",
				Qty:        1,
				TotalPrice: 1000,
			}
			rec.Hash = rec.GenerateHash()
			records = append(records, rec)
		}
	}

	batch := &model.ImportBatch{
		ID:         fmt.Sprintf("seed-%d", len(records)),
		Source:     "seed",
		ImportedAt: date,
	}
	if _, err := db.Storage.SaveSales(context.Background(), batch, records); err != nil {
		db.t.Fatalf("failed to seed sales: %v", err)
	}
	return records
}

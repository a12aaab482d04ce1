// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/the-bundle-must-flow/internal/basket"
	"github.com/Veraticus/the-bundle-must-flow/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Sales operations
	SaveSales(ctx context.Context, batch *model.ImportBatch, records []model.SaleRecord) (int, error)
	GetSales(ctx context.Context) ([]model.SaleRecord, error)
	CountSales(ctx context.Context) (int, error)
	ClearSales(ctx context.Context) error

	// Import history
	ListImportBatches(ctx context.Context) ([]model.ImportBatch, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Miner finds frequent itemsets in a transaction matrix. Both basket.Mine
// wrapped in MinerFunc and *basket.CachedMiner satisfy it.
type Miner interface {
	Mine(m *model.Matrix, minSupport float64, opts ...basket.MineOption) ([]model.Itemset, error)
}

// MinerFunc adapts a plain mining function to the Miner interface.
type MinerFunc func(m *model.Matrix, minSupport float64, opts ...basket.MineOption) ([]model.Itemset, error)

// Mine calls f.
func (f MinerFunc) Mine(m *model.Matrix, minSupport float64, opts ...basket.MineOption) ([]model.Itemset, error) {
	return f(m, minSupport, opts...)
}

package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/the-bundle-must-flow/internal/basket"
	"github.com/Veraticus/the-bundle-must-flow/internal/common"
	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/Veraticus/the-bundle-must-flow/internal/service"
)

// loadSales returns every stored sale, or a user error when nothing was imported yet.
func loadSales(ctx context.Context, store service.Storage) ([]model.SaleRecord, error) {
	records, err := store.GetSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	if len(records) == 0 {
		return nil, common.NewUserError("No sales imported yet. Run 'bundle import FILE' first", common.ErrNoSales)
	}
	return records, nil
}

// loadMatrix turns the stored sales into a customer by item matrix.
func loadMatrix(ctx context.Context, store service.Storage) (*model.Matrix, error) {
	records, err := loadSales(ctx, store)
	if err != nil {
		return nil, err
	}

	matrix, err := basket.Encode(basket.CountPurchases(records))
	if err != nil {
		return nil, fmt.Errorf("failed to encode transactions: %w", err)
	}
	return matrix, nil
}

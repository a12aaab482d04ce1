package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
)

// SaveSales stores an import batch and its records in one transaction.
// Records whose hash already exists are skipped; the number of newly stored
// records is returned and recorded on the batch.
func (s *SQLiteStorage) SaveSales(ctx context.Context, batch *model.ImportBatch, records []model.SaleRecord) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateBatch(batch); err != nil {
		return 0, err
	}
	if err := validateSales(records); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if batch.ImportedAt.IsZero() {
		batch.ImportedAt = time.Now()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO import_batches (id, source, rows, imported_at) VALUES (?, ?, 0, ?)`,
		batch.ID, batch.Source, batch.ImportedAt,
	); err != nil {
		return 0, fmt.Errorf("failed to save import batch: %w", err)
	}

	inserted, err := s.saveSalesTx(ctx, tx, batch.ID, records)
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE import_batches SET rows = ? WHERE id = ?`, inserted, batch.ID); err != nil {
		return 0, fmt.Errorf("failed to update import batch: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sales: %w", err)
	}

	batch.Rows = inserted
	return inserted, nil
}

func (s *SQLiteStorage) saveSalesTx(ctx context.Context, tx *sql.Tx, batchID string, records []model.SaleRecord) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO sales (
			hash, date, customer, item_name, unit, qty, total_price, batch_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for i := range records {
		rec := &records[i]
		if rec.Hash == "" {
			rec.Hash = rec.GenerateHash()
		}

		res, err := stmt.ExecContext(ctx,
			rec.Hash,
			rec.Date,
			rec.Customer,
			rec.ItemName,
			rec.Unit,
			rec.Qty,
			rec.TotalPrice,
			batchID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to save sale %s: %w", rec.Hash, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n > 0 {
			rec.BatchID = batchID
			inserted++
		}
	}

	return inserted, nil
}

// GetSales returns every stored sale ordered by date and insertion order.
func (s *SQLiteStorage) GetSales(ctx context.Context) ([]model.SaleRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, date, customer, item_name, unit, qty, total_price, batch_id
		FROM sales
		ORDER BY date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.SaleRecord
	for rows.Next() {
		var rec model.SaleRecord
		if err := rows.Scan(
			&rec.Hash,
			&rec.Date,
			&rec.Customer,
			&rec.ItemName,
			&rec.Unit,
			&rec.Qty,
			&rec.TotalPrice,
			&rec.BatchID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	return records, nil
}

// CountSales returns the number of stored sales.
func (s *SQLiteStorage) CountSales(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return count, nil
}

// ListImportBatches returns all import batches, newest first.
func (s *SQLiteStorage) ListImportBatches(ctx context.Context) ([]model.ImportBatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, rows, imported_at
		FROM import_batches
		ORDER BY imported_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query import batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var batches []model.ImportBatch
	for rows.Next() {
		var b model.ImportBatch
		if err := rows.Scan(&b.ID, &b.Source, &b.Rows, &b.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import batch: %w", err)
		}
		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating import batches: %w", err)
	}

	return batches, nil
}

// ClearSales removes every stored sale and import batch.
func (s *SQLiteStorage) ClearSales(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, query := range []string{`DELETE FROM sales`, `DELETE FROM import_batches`} {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to clear sales: %w", err)
		}
	}

	return tx.Commit()
}

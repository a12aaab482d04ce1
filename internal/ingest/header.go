package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
)

// Column names expected in the header row.
const (
	ColumnDate       = "date"
	ColumnCustomer   = "customer"
	ColumnItemName   = "item_name"
	ColumnUnit       = "unit"
	ColumnQty        = "qty"
	ColumnTotalPrice = "total_price"
)

// Columns lists the required columns in canonical order.
var Columns = []string{ColumnDate, ColumnCustomer, ColumnItemName, ColumnUnit, ColumnQty, ColumnTotalPrice}

var (
	// ErrMissingHeader is returned when no row names every required column.
	ErrMissingHeader = errors.New("sales header not found")
	// ErrUnsupportedFormat is returned for files that are neither Excel nor CSV.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// headerIndex maps each required column to its position in a row.
type headerIndex map[string]int

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "_")
}

// findHeader returns the index of the required columns if row is a header row.
func findHeader(row []string) (headerIndex, bool) {
	idx := make(headerIndex, len(Columns))
	for i, cell := range row {
		name := normalizeHeader(cell)
		if _, dup := idx[name]; dup {
			continue
		}
		idx[name] = i
	}
	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			return nil, false
		}
	}
	return idx, true
}

// missingColumns lists the required columns absent from row, for error messages.
func missingColumns(row []string) []string {
	present := make(map[string]bool, len(row))
	for _, cell := range row {
		present[normalizeHeader(cell)] = true
	}
	var missing []string
	for _, col := range Columns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// rowsToRaw converts table rows following a header into raw sales.
// Completely empty rows are skipped; line numbers are 1-based file rows.
func rowsToRaw(rows [][]string, headerRow int, idx headerIndex) []model.RawSale {
	raws := make([]model.RawSale, 0, len(rows)-headerRow-1)
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		cell := func(col string) string {
			pos := idx[col]
			if pos >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[pos])
		}

		raw := model.RawSale{
			Date:       cell(ColumnDate),
			Customer:   cell(ColumnCustomer),
			ItemName:   cell(ColumnItemName),
			Unit:       cell(ColumnUnit),
			Qty:        cell(ColumnQty),
			TotalPrice: cell(ColumnTotalPrice),
			Line:       i + 1,
		}
		for _, v := range raw.Fields() {
			if v == "" {
				raw.Missing++
			}
		}
		if raw.Missing == len(Columns) {
			continue
		}
		raws = append(raws, raw)
	}
	return raws
}

func headerError(source string, firstRow []string) error {
	if firstRow == nil {
		return fmt.Errorf("%w in %s: file is empty", ErrMissingHeader, source)
	}
	return fmt.Errorf("%w in %s: missing columns %s", ErrMissingHeader, source, strings.Join(missingColumns(firstRow), ", "))
}

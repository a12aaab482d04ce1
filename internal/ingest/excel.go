package ingest

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/xuri/excelize/v2"
)

// headerSearchRows bounds how far down a sheet the header row may appear.
const headerSearchRows = 10

// ReadWorkbook reads sales rows from the first sheet of an Excel workbook that
// carries the sales header. Cells are read raw so dates stay Excel serials.
func ReadWorkbook(path string) ([]model.RawSale, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var firstRow []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			slog.Warn("Failed to read sheet", "path", path, "sheet", sheet, "error", err)
			continue
		}
		if len(rows) == 0 {
			continue
		}
		if firstRow == nil {
			firstRow = rows[0]
		}

		for i := 0; i < len(rows) && i < headerSearchRows; i++ {
			idx, ok := findHeader(rows[i])
			if !ok {
				continue
			}
			raws := rowsToRaw(rows, i, idx)
			slog.Debug("Found sales sheet",
				"path", path,
				"sheet", sheet,
				"header_row", i+1,
				"rows", len(raws))
			return raws, nil
		}
	}

	return nil, headerError(path, firstRow)
}

package ingest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows into a temporary workbook and returns its path.
func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadWorkbook(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"Date", "Customer", "Item Name", "Unit", "Qty", "Total Price", "Cashier"},
		{45047, "UMUM/CASH", "GULA PASIR", "KG", 2, 30000, "ani"},
		{"2023-05-02", "TOKO MAJU", "BERAS", "KRG", 1.4, 250000, "ani"},
		{},
		{45048, "TOKO MAJU", "MINYAK", "", 3, "", "budi"},
	})

	raws, err := ReadWorkbook(path)
	require.NoError(t, err)
	require.Len(t, raws, 3)

	assert.Equal(t, "45047", raws[0].Date)
	assert.Equal(t, "UMUM/CASH", raws[0].Customer)
	assert.Equal(t, "GULA PASIR", raws[0].ItemName)
	assert.Equal(t, "2", raws[0].Qty)
	assert.Equal(t, 2, raws[0].Line)
	assert.Equal(t, 0, raws[0].Missing)

	assert.Equal(t, "KRG", raws[1].Unit)
	assert.Equal(t, 2, raws[2].Missing)
	assert.Equal(t, 5, raws[2].Line)

	date, err := ParseDate(raws[0].Date)
	require.NoError(t, err)
	assert.Equal(t, "2023-05-01", date.Format(time.DateOnly))
}

func TestReadWorkbook_HeaderBelowTitle(t *testing.T) {
	path := writeWorkbook(t, "Sales", [][]any{
		{"Monthly sales export"},
		{},
		{"date", "customer", "item_name", "unit", "qty", "total_price"},
		{"2023-05-02", "TOKO MAJU", "BERAS", "SAK", 1, 250000},
	})

	raws, err := ReadWorkbook(path)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "BERAS", raws[0].ItemName)
	assert.Equal(t, 4, raws[0].Line)
}

func TestReadWorkbook_MissingHeader(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"date", "customer", "qty"},
		{"2023-05-02", "TOKO MAJU", 1},
	})

	_, err := ReadWorkbook(path)
	require.ErrorIs(t, err, ErrMissingHeader)
	assert.Contains(t, err.Error(), "item_name")
}

func TestReadWorkbook_NotAWorkbook(t *testing.T) {
	_, err := ReadWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

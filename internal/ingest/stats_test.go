package ingest

import (
	"testing"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestComputeStatistics(t *testing.T) {
	row := model.RawSale{Date: "2023-05-01", Customer: "A", ItemName: "GULA", Unit: "KG", Qty: "1", TotalPrice: "10"}
	missing := model.RawSale{Date: "2023-05-01", Customer: "A", ItemName: "BERAS", Unit: "", Qty: "2", TotalPrice: "", Missing: 2}

	stats := ComputeStatistics([]model.RawSale{row, row, missing, row})

	assert.Equal(t, 6, stats.Columns)
	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, 2, stats.NumericColumns)
	assert.Equal(t, 4, stats.CategoricalColumns)
	assert.Equal(t, 2, stats.MissingCells)
	assert.InDelta(t, 2.0/24.0*100, stats.MissingCellsPercentage, 1e-9)
	assert.Equal(t, 2, stats.DuplicateRows)
	assert.InDelta(t, 50.0, stats.DuplicateRowsPercentage, 1e-9)
	assert.False(t, stats.CleanedPerfectly())
}

func TestComputeStatistics_Clean(t *testing.T) {
	stats := ComputeStatistics([]model.RawSale{
		{Date: "2023-05-01", Customer: "A", ItemName: "GULA", Unit: "KG", Qty: "1", TotalPrice: "10"},
		{Date: "2023-05-02", Customer: "B", ItemName: "GULA", Unit: "KG", Qty: "1", TotalPrice: "10"},
	})
	assert.True(t, stats.CleanedPerfectly())
	assert.Equal(t, 0.0, stats.MissingCellsPercentage)
}

func TestComputeStatistics_Empty(t *testing.T) {
	stats := ComputeStatistics(nil)
	assert.Equal(t, 0, stats.Rows)
	assert.True(t, stats.CleanedPerfectly())
}

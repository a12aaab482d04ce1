package ingest

import (
	"strconv"
	"strings"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
)

// Statistics summarises the quality of an imported table.
type Statistics struct {
	Columns                 int
	Rows                    int
	CategoricalColumns      int
	NumericColumns          int
	MissingCells            int
	MissingCellsPercentage  float64
	DuplicateRows           int
	DuplicateRowsPercentage float64
}

// CleanedPerfectly reports whether the table has neither missing cells nor duplicate rows.
func (s Statistics) CleanedPerfectly() bool {
	return s.MissingCells == 0 && s.DuplicateRows == 0
}

// ComputeStatistics inspects raw rows. A column is numeric when every
// non-empty value in it parses as a number.
func ComputeStatistics(raws []model.RawSale) Statistics {
	stats := Statistics{
		Columns: len(Columns),
		Rows:    len(raws),
	}

	numeric := make([]bool, len(Columns))
	for i := range numeric {
		numeric[i] = len(raws) > 0
	}

	seen := make(map[string]bool, len(raws))
	for _, raw := range raws {
		fields := raw.Fields()
		for i, v := range fields {
			if v == "" {
				stats.MissingCells++
				continue
			}
			if numeric[i] {
				if _, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err != nil {
					numeric[i] = false
				}
			}
		}

		key := strings.Join(fields, "\x1f")
		if seen[key] {
			stats.DuplicateRows++
		}
		seen[key] = true
	}

	for _, isNumeric := range numeric {
		if isNumeric {
			stats.NumericColumns++
		} else {
			stats.CategoricalColumns++
		}
	}

	if stats.Rows > 0 {
		stats.MissingCellsPercentage = float64(stats.MissingCells) / float64(stats.Columns*stats.Rows) * 100
		stats.DuplicateRowsPercentage = float64(stats.DuplicateRows) / float64(stats.Rows) * 100
	}

	return stats
}

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
)

// ReadCSV reads sales rows from CSV data. The first record must be the header.
func ReadCSV(r io.Reader, source string) ([]model.RawSale, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV %s: %w", source, err)
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, headerError(source, nil)
	}

	idx, ok := findHeader(rows[0])
	if !ok {
		return nil, headerError(source, rows[0])
	}

	return rowsToRaw(rows, 0, idx), nil
}

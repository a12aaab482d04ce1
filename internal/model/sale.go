package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// RawSale is one spreadsheet row before cleaning. Every field is kept as
// the text found in the cell; Missing counts the empty cells of the row.
type RawSale struct {
	Date       string
	Customer   string
	ItemName   string
	Unit       string
	Qty        string
	TotalPrice string
	Line       int
	Missing    int
}

// Fields returns the row values in header order.
func (r RawSale) Fields() []string {
	return []string{r.Date, r.Customer, r.ItemName, r.Unit, r.Qty, r.TotalPrice}
}

// SaleRecord is a cleaned sales line item.
type SaleRecord struct {
	Date       time.Time `validate:"required"`
	Customer   string    `validate:"required"`
	ItemName   string    `validate:"required"`
	Unit       string    `validate:"required"`
	BatchID    string
	Hash       string
	Qty        int
	TotalPrice float64
}

// ItemKey returns the item+unit composite key used as the basket item identifier.
func (s *SaleRecord) ItemKey() string {
	return s.ItemName + "-" + s.Unit
}

// GenerateHash creates a unique hash for duplicate detection.
func (s *SaleRecord) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s:%d:%.2f",
		s.Date.Format("2006-01-02"),
		s.Customer,
		s.ItemName,
		s.Unit,
		s.Qty,
		s.TotalPrice)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// ImportBatch records one import of a sales file.
type ImportBatch struct {
	ImportedAt time.Time
	ID         string `validate:"required"`
	Source     string `validate:"required"`
	Rows       int
}

package basket

import (
	"errors"
	"fmt"
)

// Errors returned by the basket pipeline. Absence of frequent itemsets or
// rules is never an error; those calls return an empty slice.
var (
	ErrInvalidCount      = errors.New("invalid purchase count")
	ErrEmptyInput        = errors.New("no transactions")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrUnsupportedMetric = errors.New("unsupported metric")
)

// InvalidCountError reports a purchase count that cannot be encoded.
type InvalidCountError struct {
	Transaction string
	Item        string
	Count       float64
}

func (e *InvalidCountError) Error() string {
	return fmt.Sprintf("%s: transaction %q item %q has count %v", ErrInvalidCount, e.Transaction, e.Item, e.Count)
}

func (e *InvalidCountError) Unwrap() error {
	return ErrInvalidCount
}

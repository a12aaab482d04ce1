package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/go-playground/validator/v10"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidSale  = errors.New("invalid sale record")
	ErrInvalidBatch = errors.New("invalid import batch")
)

// validate checks the struct tags on model types. It caches per-type
// metadata and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateBatch(batch *model.ImportBatch) error {
	if batch == nil {
		return fmt.Errorf("%w: batch", ErrNilParameter)
	}
	return checkStruct(batch, ErrInvalidBatch)
}

func validateSales(records []model.SaleRecord) error {
	if records == nil {
		return fmt.Errorf("%w: records", ErrNilParameter)
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: records", ErrEmptySlice)
	}

	for i := range records {
		if err := validateSale(&records[i]); err != nil {
			return fmt.Errorf("record at index %d: %w", i, err)
		}
	}
	return nil
}

// validateSale requires date, customer, item name and unit. Quantity and
// price are not checked here; zero quantities are dropped during cleaning.
func validateSale(record *model.SaleRecord) error {
	return checkStruct(record, ErrInvalidSale)
}

// checkStruct runs the validator and reports the first failing field under sentinel.
func checkStruct(v any, sentinel error) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: missing %s", sentinel, strings.ToLower(verrs[0].Field()))
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

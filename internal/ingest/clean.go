package ingest

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
)

// DefaultUnitAliases maps unit spellings found in point-of-sale exports to
// their canonical unit.
func DefaultUnitAliases() map[string]string {
	return map[string]string{
		"1/2":  "KG",
		"1/4":  "KG",
		"STG":  "KG",
		"BOK":  "BOX",
		"RTN":  "RTG",
		"TPL":  "TPLS",
		"SLOP": "PAK",
		"SLP":  "PAK",
		"KRG":  "SAK",
		"KLN":  "BTL",
		"LBR":  "LMBR",
	}
}

// DefaultCustomerAliases maps misspelled customer names to the real customer.
func DefaultCustomerAliases() map[string]string {
	return map[string]string{
		"CUSTEMER": "PELANGGAN BAROKAH",
	}
}

// dateLayouts are the textual date formats accepted besides Excel serials.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"01-02-2006",
	"01/02/2006",
	"1/2/2006",
	"02 Jan 2006",
}

// Rejection explains why a raw row did not become a record.
type Rejection struct {
	Reason string
	Line   int
}

// CleanResult is the outcome of cleaning a set of raw rows.
type CleanResult struct {
	Records      []model.SaleRecord
	Rejected     []Rejection
	DroppedZeros int
}

// Cleaner turns raw rows into sale records.
type Cleaner struct {
	unitAliases     map[string]string
	customerAliases map[string]string
	validate        *validator.Validate
}

// NewCleaner creates a cleaner with the given alias maps. Nil maps select the defaults.
func NewCleaner(unitAliases, customerAliases map[string]string) *Cleaner {
	if unitAliases == nil {
		unitAliases = DefaultUnitAliases()
	}
	if customerAliases == nil {
		customerAliases = DefaultCustomerAliases()
	}
	return &Cleaner{
		unitAliases:     upperKeys(unitAliases),
		customerAliases: upperKeys(customerAliases),
		validate:        validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Clean converts raws into records.
//
// Rows with a zero quantity are dropped, quantities are rounded half to even,
// unit and customer aliases are replaced, and every record is validated.
// Rows that cannot be parsed are returned as rejections instead of failing
// the whole file.
func (c *Cleaner) Clean(raws []model.RawSale) *CleanResult {
	result := &CleanResult{
		Records: make([]model.SaleRecord, 0, len(raws)),
	}

	for _, raw := range raws {
		qty, err := parseNumber(raw.Qty)
		if err != nil {
			result.Rejected = append(result.Rejected, Rejection{Line: raw.Line, Reason: fmt.Sprintf("invalid qty %q", raw.Qty)})
			continue
		}
		if qty == 0 {
			result.DroppedZeros++
			continue
		}

		price := 0.0
		if raw.TotalPrice != "" {
			price, err = parseNumber(raw.TotalPrice)
			if err != nil {
				result.Rejected = append(result.Rejected, Rejection{Line: raw.Line, Reason: fmt.Sprintf("invalid total_price %q", raw.TotalPrice)})
				continue
			}
		}

		var date time.Time
		if raw.Date != "" {
			date, err = ParseDate(raw.Date)
			if err != nil {
				result.Rejected = append(result.Rejected, Rejection{Line: raw.Line, Reason: err.Error()})
				continue
			}
		}

		record := model.SaleRecord{
			Date:       date,
			Customer:   c.customer(raw.Customer),
			ItemName:   strings.TrimSpace(raw.ItemName),
			Unit:       c.unit(raw.Unit),
			Qty:        int(math.RoundToEven(qty)),
			TotalPrice: price,
		}

		if err := c.validate.Struct(record); err != nil {
			result.Rejected = append(result.Rejected, Rejection{Line: raw.Line, Reason: validationReason(err)})
			continue
		}

		record.Hash = record.GenerateHash()
		result.Records = append(result.Records, record)
	}

	return result
}

func (c *Cleaner) unit(unit string) string {
	unit = strings.ToUpper(strings.TrimSpace(unit))
	if mapped, ok := c.unitAliases[unit]; ok {
		return mapped
	}
	return unit
}

func (c *Cleaner) customer(name string) string {
	name = strings.TrimSpace(name)
	if mapped, ok := c.customerAliases[strings.ToUpper(name)]; ok {
		return mapped
	}
	return name
}

// ParseDate parses an Excel serial date or one of the accepted text layouts.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date serial %q: %w", value, err)
		}
		return t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// parseNumber parses numbers that may carry thousands separators.
func parseNumber(value string) (float64, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return 0, errors.New("empty number")
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %s", value)
	}
	return f, nil
}

func validationReason(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		names := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			names = append(names, strings.ToLower(fe.Field()))
		}
		return "missing " + strings.Join(names, ", ")
	}
	return err.Error()
}

func upperKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return out
}

package basket

import (
	"fmt"
	"math"
	"sort"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
)

type pairKey struct {
	transaction string
	item        string
}

// CountPurchases groups sales line items by customer and item key, counting
// how many lines each customer bought of each item.
func CountPurchases(records []model.SaleRecord) []model.PurchaseCount {
	counts := make(map[pairKey]int)
	order := make([]pairKey, 0)

	for i := range records {
		key := pairKey{transaction: records[i].Customer, item: records[i].ItemKey()}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	result := make([]model.PurchaseCount, 0, len(order))
	for _, key := range order {
		result = append(result, model.PurchaseCount{
			Transaction: key.transaction,
			Item:        key.item,
			Count:       float64(counts[key]),
		})
	}

	return result
}

// Encode builds the boolean incidence matrix for the given purchase counts.
//
// Counts for the same (transaction, item) pair are summed first. A summed
// count of at least one marks the item as present, zero marks it absent.
// Negative, fractional and NaN counts are rejected with *InvalidCountError.
// Row and column labels are sorted lexicographically.
func Encode(purchases []model.PurchaseCount) (*model.Matrix, error) {
	totals := make(map[pairKey]float64, len(purchases))
	rowSet := make(map[string]struct{})
	colSet := make(map[string]struct{})

	for _, p := range purchases {
		if p.Transaction == "" || p.Item == "" {
			return nil, fmt.Errorf("%w: empty transaction or item key", ErrInvalidParameter)
		}
		if math.IsNaN(p.Count) || math.IsInf(p.Count, 0) || p.Count < 0 || p.Count != math.Trunc(p.Count) {
			return nil, &InvalidCountError{Transaction: p.Transaction, Item: p.Item, Count: p.Count}
		}

		totals[pairKey{transaction: p.Transaction, item: p.Item}] += p.Count
		rowSet[p.Transaction] = struct{}{}
		colSet[p.Item] = struct{}{}
	}

	rows := sortedKeys(rowSet)
	cols := sortedKeys(colSet)

	colIndex := make(map[string]int, len(cols))
	for j, c := range cols {
		colIndex[c] = j
	}
	rowIndex := make(map[string]int, len(rows))
	for i, r := range rows {
		rowIndex[r] = i
	}

	cells := make([][]bool, len(rows))
	for i := range cells {
		cells[i] = make([]bool, len(cols))
	}
	for key, count := range totals {
		if count >= 1 {
			cells[rowIndex[key.transaction]][colIndex[key.item]] = true
		}
	}

	return &model.Matrix{Rows: rows, Columns: cols, Cells: cells}, nil
}

// NewMatrix builds a matrix from explicit per-transaction item lists.
// Transaction labels are generated from the slice position.
func NewMatrix(transactions [][]string) (*model.Matrix, error) {
	purchases := make([]model.PurchaseCount, 0)
	for i, items := range transactions {
		label := fmt.Sprintf("t%06d", i)
		if len(items) == 0 {
			return nil, fmt.Errorf("%w: transaction %d has no items", ErrInvalidParameter, i)
		}
		for _, item := range items {
			purchases = append(purchases, model.PurchaseCount{Transaction: label, Item: item, Count: 1})
		}
	}
	return Encode(purchases)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

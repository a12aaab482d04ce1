package model

import (
	"fmt"
	"strings"
)

// PurchaseCount is a (transaction, item, count) triple fed to the encoder.
type PurchaseCount struct {
	Transaction string
	Item        string
	Count       float64
}

// Matrix is a dense transaction x item incidence table.
// Rows and Columns hold unique labels; Cells[i][j] reports whether
// transaction Rows[i] contains item Columns[j].
type Matrix struct {
	Rows    []string
	Columns []string
	Cells   [][]bool
}

// NumTransactions returns the number of rows.
func (m *Matrix) NumTransactions() int {
	if m == nil {
		return 0
	}
	return len(m.Rows)
}

// Itemset is a set of items together with its support.
type Itemset struct {
	Items   []string
	Support float64
	Count   int
}

// Len returns the number of items in the set.
func (i Itemset) Len() int {
	return len(i.Items)
}

// Key returns a canonical string identifying the item set. Items must be sorted.
func (i Itemset) Key() string {
	return ItemsKey(i.Items)
}

func (i Itemset) String() string {
	return fmt.Sprintf("{%s}: %.4f", strings.Join(i.Items, ", "), i.Support)
}

// ItemsKey joins sorted item identifiers into a lookup key.
func ItemsKey(items []string) string {
	return strings.Join(items, "\x1f")
}

// Metric names a rule interestingness measure.
type Metric string

// Supported rule metrics.
const (
	MetricSupport      Metric = "support"
	MetricConfidence   Metric = "confidence"
	MetricLift         Metric = "lift"
	MetricLeverage     Metric = "leverage"
	MetricConviction   Metric = "conviction"
	MetricZhangsMetric Metric = "zhangs_metric"
)

// Metrics lists every supported metric in display order.
func Metrics() []Metric {
	return []Metric{
		MetricSupport,
		MetricConfidence,
		MetricLift,
		MetricLeverage,
		MetricConviction,
		MetricZhangsMetric,
	}
}

// Rule is an association rule antecedent => consequent.
type Rule struct {
	Antecedent        []string
	Consequent        []string
	AntecedentSupport float64
	ConsequentSupport float64
	Support           float64
	Confidence        float64
	Lift              float64
	Leverage          float64
	Conviction        float64
	ZhangsMetric      float64
}

// Value returns the value of the named metric.
func (r *Rule) Value(metric Metric) (float64, bool) {
	switch metric {
	case MetricSupport:
		return r.Support, true
	case MetricConfidence:
		return r.Confidence, true
	case MetricLift:
		return r.Lift, true
	case MetricLeverage:
		return r.Leverage, true
	case MetricConviction:
		return r.Conviction, true
	case MetricZhangsMetric:
		return r.ZhangsMetric, true
	default:
		return 0, false
	}
}

// BundleSize is the number of distinct items the rule recommends together.
func (r *Rule) BundleSize() int {
	return len(r.Antecedent) + len(r.Consequent)
}

func (r *Rule) String() string {
	return fmt.Sprintf("[%s] => [%s]", strings.Join(r.Antecedent, ", "), strings.Join(r.Consequent, ", "))
}

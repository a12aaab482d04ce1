// Package dashboard computes the descriptive sales figures shown next to the
// bundle recommendations: best selling items, gross merchandise value over
// time and the split between retail and member customers.
package dashboard

import (
	"sort"
	"time"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
)

// DefaultRetailCustomer is the customer name point-of-sale exports use for walk-in sales.
const DefaultRetailCustomer = "UMUM/CASH"

// Customer type labels.
const (
	SegmentRetail = "Retail"
	SegmentMember = "Member"
)

// ProductTotal is the total quantity sold of one item.
type ProductTotal struct {
	Item string
	Qty  int
}

// DailyGMV is the gross merchandise value of one day.
type DailyGMV struct {
	Day   time.Time
	Total float64
}

// Series is a GMV time series for one customer segment.
type Series struct {
	Peak    *DailyGMV
	Trough  *DailyGMV
	Segment string
	Days    []DailyGMV
}

// Share is the percentage of line items per customer segment.
type Share struct {
	RetailLines   int
	MemberLines   int
	RetailPercent float64
	MemberPercent float64
}

// TopProducts returns the n items with the highest total quantity, ties broken
// by item key. n <= 0 returns every item.
func TopProducts(records []model.SaleRecord, n int) []ProductTotal {
	totals := make(map[string]int)
	for i := range records {
		totals[records[i].ItemKey()] += records[i].Qty
	}

	products := make([]ProductTotal, 0, len(totals))
	for item, qty := range totals {
		products = append(products, ProductTotal{Item: item, Qty: qty})
	}
	sort.Slice(products, func(a, b int) bool {
		if products[a].Qty != products[b].Qty {
			return products[a].Qty > products[b].Qty
		}
		return products[a].Item < products[b].Item
	})

	if n > 0 && len(products) > n {
		products = products[:n]
	}
	return products
}

// GMVByDay splits records into retail and member sales and sums total price per day.
// The retail series is first.
func GMVByDay(records []model.SaleRecord, retailCustomer string) []Series {
	retail := make(map[time.Time]float64)
	member := make(map[time.Time]float64)

	for i := range records {
		day := truncateDay(records[i].Date)
		if records[i].Customer == retailCustomer {
			retail[day] += records[i].TotalPrice
		} else {
			member[day] += records[i].TotalPrice
		}
	}

	return []Series{
		newSeries(SegmentRetail, retail),
		newSeries(SegmentMember, member),
	}
}

// CustomerShare returns the share of line items bought by retail and member customers.
func CustomerShare(records []model.SaleRecord, retailCustomer string) Share {
	var share Share
	for i := range records {
		if records[i].Customer == retailCustomer {
			share.RetailLines++
		} else {
			share.MemberLines++
		}
	}

	total := share.RetailLines + share.MemberLines
	if total > 0 {
		share.RetailPercent = float64(share.RetailLines) / float64(total) * 100
		share.MemberPercent = float64(share.MemberLines) / float64(total) * 100
	}
	return share
}

func newSeries(segment string, totals map[time.Time]float64) Series {
	s := Series{Segment: segment, Days: make([]DailyGMV, 0, len(totals))}
	for day, total := range totals {
		s.Days = append(s.Days, DailyGMV{Day: day, Total: total})
	}
	sort.Slice(s.Days, func(a, b int) bool {
		return s.Days[a].Day.Before(s.Days[b].Day)
	})

	// First day wins ties for both extremes.
	for i := range s.Days {
		if s.Peak == nil || s.Days[i].Total > s.Peak.Total {
			s.Peak = &s.Days[i]
		}
		if s.Trough == nil || s.Days[i].Total < s.Trough.Total {
			s.Trough = &s.Days[i]
		}
	}
	return s
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

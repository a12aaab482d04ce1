package cli

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/the-bundle-must-flow/internal/dashboard"
	"github.com/Veraticus/the-bundle-must-flow/internal/ingest"
	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// newTable returns a table in the application's style.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})
}

// RenderStatistics renders the dataset statistics of an uploaded file.
func RenderStatistics(stats ingest.Statistics) string {
	t := newTable("Statistic", "Value").Rows(
		[]string{"Number of columns", FormatCount(stats.Columns)},
		[]string{"Number of rows", FormatCount(stats.Rows)},
		[]string{"Categorical columns", FormatCount(stats.CategoricalColumns)},
		[]string{"Numeric columns", FormatCount(stats.NumericColumns)},
		[]string{"Missing cells", FormatCount(stats.MissingCells)},
		[]string{"Missing cells (%)", fmt.Sprintf("%.1f%%", stats.MissingCellsPercentage)},
		[]string{"Duplicate rows", FormatCount(stats.DuplicateRows)},
		[]string{"Duplicate rows (%)", fmt.Sprintf("%.1f%%", stats.DuplicateRowsPercentage)},
	)
	return t.Render()
}

// RenderBatches renders the import history.
func RenderBatches(batches []model.ImportBatch) string {
	t := newTable("Imported", "Source", "Rows", "Batch")
	for _, b := range batches {
		t.Row(b.ImportedAt.Local().Format("2006-01-02 15:04"), b.Source, FormatCount(b.Rows), b.ID)
	}
	return t.Render()
}

// RenderTopProducts renders the best selling items.
func RenderTopProducts(products []dashboard.ProductTotal) string {
	t := newTable("#", "Item", "Qty")
	for i, p := range products {
		t.Row(strconv.Itoa(i+1), p.Item, FormatCount(p.Qty))
	}
	return t.Render()
}

// RenderGMV renders one line per day and segment, followed by peaks and troughs.
func RenderGMV(series []dashboard.Series) string {
	t := newTable("Segment", "Day", "GMV")
	for _, s := range series {
		for _, d := range s.Days {
			t.Row(s.Segment, FormatDay(d.Day), FormatMoney(d.Total))
		}
	}

	summary := newTable("Segment", "Peak", "Trough")
	for _, s := range series {
		summary.Row(s.Segment, describeDay(s.Peak), describeDay(s.Trough))
	}

	return lipgloss.JoinVertical(lipgloss.Left, t.Render(), summary.Render())
}

func describeDay(d *dashboard.DailyGMV) string {
	if d == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", FormatDay(d.Day), FormatMoney(d.Total))
}

// RenderShare renders the customer segment split.
func RenderShare(share dashboard.Share) string {
	t := newTable("Customer type", "Line items", "Share").Rows(
		[]string{dashboard.SegmentRetail, FormatCount(share.RetailLines), fmt.Sprintf("%.1f%%", share.RetailPercent)},
		[]string{dashboard.SegmentMember, FormatCount(share.MemberLines), fmt.Sprintf("%.1f%%", share.MemberPercent)},
	)
	return t.Render()
}

// RenderItemsets renders frequent itemsets with their support.
func RenderItemsets(sets []model.Itemset) string {
	t := newTable("Items", "Size", "Support", "Count")
	for _, s := range sets {
		t.Row(FormatItems(s.Items), strconv.Itoa(s.Len()), FormatPercent(s.Support), FormatCount(s.Count))
	}
	return t.Render()
}

// RenderRules renders association rules as bundle recommendations.
func RenderRules(rules []model.Rule) string {
	t := newTable("If customer buys", "Recommend", "Bundle size", "Support", "Confidence", "Lift", "Leverage", "Conviction", "Zhang")
	for i := range rules {
		r := &rules[i]
		t.Row(
			FormatItems(r.Antecedent),
			FormatItems(r.Consequent),
			strconv.Itoa(r.BundleSize()),
			FormatMetric(r.Support),
			FormatMetric(r.Confidence),
			FormatMetric(r.Lift),
			FormatMetric(r.Leverage),
			FormatMetric(r.Conviction),
			FormatMetric(r.ZhangsMetric),
		)
	}
	return t.Render()
}

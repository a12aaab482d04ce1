package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	textmessage "golang.org/x/text/message"
)

// printer groups digits in the numbers shown to the user.
var printer = textmessage.NewPrinter(language.English)

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatMoney renders a total price rounded to whole currency units.
func FormatMoney(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// FormatPercent renders a ratio in [0, 1] as a percentage.
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// FormatMetric renders a rule metric. Infinite conviction is shown as ∞.
func FormatMetric(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	case math.IsNaN(v):
		return "-"
	default:
		return fmt.Sprintf("%.4f", v)
	}
}

// FormatItems joins item keys for display.
func FormatItems(items []string) string {
	return strings.Join(items, ", ")
}

// FormatDay renders a calendar day.
func FormatDay(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/the-bundle-must-flow/internal/basket"
	"github.com/Veraticus/the-bundle-must-flow/internal/cli"
	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// View renders the explorer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render(cli.BasketIcon + " Bundle explorer"),
		m.renderThresholds(),
		m.renderSizes(),
		m.renderStatus(),
	}

	if body := m.renderEmpty(); body != "" {
		sections = append(sections, m.theme.Box.Render(body))
	} else {
		sections = append(sections, m.table.View())
	}

	sections = append(sections, m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderThresholds() string {
	return fmt.Sprintf("%s %s   %s %s   %s %s",
		m.theme.Subtitle.Render("Min support"),
		m.theme.Highlighted.Render(cli.FormatPercent(m.minSupport)),
		m.theme.Subtitle.Render("Min confidence"),
		m.theme.Highlighted.Render(cli.FormatPercent(m.minConfidence)),
		m.theme.Subtitle.Render("Sorted by"),
		m.theme.Highlighted.Render(string(m.sortBy)),
	)
}

func (m Model) renderSizes() string {
	if len(m.available) == 0 {
		return m.theme.Subtitle.Render("Antecedent sizes: none")
	}

	parts := make([]string, 0, len(m.available))
	for _, n := range m.available {
		box := "[ ]"
		if m.sizes[n] {
			box = "[x]"
		}
		parts = append(parts, box+" "+strconv.Itoa(n))
	}

	label := "Antecedent sizes"
	if len(m.sizes) == 0 {
		label += " (all)"
	}
	return m.theme.Subtitle.Render(label+": ") + strings.Join(parts, "  ")
}

func (m Model) renderStatus() string {
	switch {
	case m.mining:
		return m.theme.StatusInfo.Render("Mining...")
	case m.lastError != nil:
		return m.theme.StatusError.Render(describeError(m.lastError))
	default:
		return m.theme.StatusInfo.Render(fmt.Sprintf("%s of %s rules, %s itemsets (%s)",
			cli.FormatCount(len(m.visible)),
			cli.FormatCount(len(m.rules)),
			cli.FormatCount(len(m.itemsets)),
			m.elapsed.Round(time.Microsecond),
		))
	}
}

// renderEmpty explains an empty result; it returns "" when there is data to show.
func (m Model) renderEmpty() string {
	if m.mining || m.lastError != nil {
		return ""
	}
	if len(m.itemsets) == 0 {
		return "No frequent itemsets at this support. Lower min support with ←."
	}
	if m.view == ViewRules && len(m.visible) == 0 {
		if len(m.rules) == 0 {
			return "Frequent itemsets found but no rule reaches the " + string(m.config.Metric) + " threshold."
		}
		return "No rules pass the current filters. Lower min confidence with ↓ or press 0."
	}
	return ""
}

func describeError(err error) string {
	switch {
	case errors.Is(err, basket.ErrInvalidParameter):
		return "Invalid parameter: " + err.Error()
	case errors.Is(err, basket.ErrEmptyInput):
		return "No sales data to mine. Import a file first."
	default:
		return "Mining failed: " + err.Error()
	}
}

func (m Model) ruleColumns() []table.Column {
	fixed := 6 + 9 + 11 + 8 + 11
	items := (m.width - fixed - 14) / 2
	if items < 14 {
		items = 14
	}
	return []table.Column{
		{Title: "If customer buys", Width: items},
		{Title: "Recommend", Width: items},
		{Title: "Size", Width: 6},
		{Title: "Support", Width: 9},
		{Title: "Confidence", Width: 11},
		{Title: "Lift", Width: 8},
		{Title: "Conviction", Width: 11},
	}
}

func ruleRows(rules []model.Rule) []table.Row {
	rows := make([]table.Row, len(rules))
	for i := range rules {
		r := &rules[i]
		rows[i] = table.Row{
			cli.FormatItems(r.Antecedent),
			cli.FormatItems(r.Consequent),
			strconv.Itoa(r.BundleSize()),
			cli.FormatPercent(r.Support),
			cli.FormatPercent(r.Confidence),
			fmt.Sprintf("%.2f", r.Lift),
			cli.FormatMetric(r.Conviction),
		}
	}
	return rows
}

func (m Model) itemsetColumns() []table.Column {
	items := m.width - 6 - 9 - 8 - 10
	if items < 20 {
		items = 20
	}
	return []table.Column{
		{Title: "Items", Width: items},
		{Title: "Size", Width: 6},
		{Title: "Support", Width: 9},
		{Title: "Count", Width: 8},
	}
}

func itemsetRows(sets []model.Itemset) []table.Row {
	rows := make([]table.Row, len(sets))
	for i, s := range sets {
		rows[i] = table.Row{
			cli.FormatItems(s.Items),
			strconv.Itoa(s.Len()),
			cli.FormatPercent(s.Support),
			cli.FormatCount(s.Count),
		}
	}
	return rows
}

package tui

import (
	"time"

	"github.com/Veraticus/the-bundle-must-flow/internal/basket"
	tea "github.com/charmbracelet/bubbletea"
)

// mineCmd mines the matrix at minSupport and derives rules from the result.
func (m Model) mineCmd(minSupport float64) tea.Cmd {
	miner := m.config.Miner
	matrix := m.config.Matrix
	metric := m.config.Metric
	threshold := m.config.MinThreshold
	maxLen := m.config.MaxLen

	return func() tea.Msg {
		start := time.Now()
		msg := minedMsg{minSupport: minSupport}

		sets, err := miner.Mine(matrix, minSupport, basket.WithMaxLen(maxLen))
		if err != nil {
			msg.err = err
			return msg
		}

		rules, err := basket.GenerateRules(sets, metric, threshold)
		if err != nil {
			msg.err = err
			return msg
		}

		msg.itemsets = sets
		msg.rules = rules
		msg.elapsed = time.Since(start)
		return msg
	}
}

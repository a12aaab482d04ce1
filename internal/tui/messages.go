package tui

import (
	"time"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
)

// minedMsg carries the result of one mining run.
type minedMsg struct {
	err        error
	itemsets   []model.Itemset
	rules      []model.Rule
	elapsed    time.Duration
	minSupport float64
}

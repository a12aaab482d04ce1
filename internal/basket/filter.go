package basket

import (
	"sort"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
)

// RuleFilter holds independent post-filters over generated rules.
// Zero values disable the corresponding threshold; an empty AntecedentSizes
// accepts every antecedent size.
type RuleFilter struct {
	AntecedentSizes []int
	MinSupport      float64
	MinConfidence   float64
	MinLift         float64
}

// Matches reports whether rule passes every configured filter.
func (f RuleFilter) Matches(rule *model.Rule) bool {
	if rule.Support < f.MinSupport {
		return false
	}
	if rule.Confidence < f.MinConfidence {
		return false
	}
	if f.MinLift > 0 && rule.Lift < f.MinLift {
		return false
	}
	if len(f.AntecedentSizes) == 0 {
		return true
	}
	for _, size := range f.AntecedentSizes {
		if len(rule.Antecedent) == size {
			return true
		}
	}
	return false
}

// Apply returns the rules that pass the filter, preserving order.
func (f RuleFilter) Apply(rules []model.Rule) []model.Rule {
	filtered := make([]model.Rule, 0, len(rules))
	for i := range rules {
		if f.Matches(&rules[i]) {
			filtered = append(filtered, rules[i])
		}
	}
	return filtered
}

// AntecedentSizes returns the distinct antecedent sizes found in rules, ascending.
func AntecedentSizes(rules []model.Rule) []int {
	seen := make(map[int]bool)
	sizes := make([]int, 0)
	for i := range rules {
		n := len(rules[i].Antecedent)
		if !seen[n] {
			seen[n] = true
			sizes = append(sizes, n)
		}
	}
	sort.Ints(sizes)
	return sizes
}

// SortRules orders rules by the given metric, highest first. Ties keep their
// generation order.
func SortRules(rules []model.Rule, metric model.Metric) {
	sort.SliceStable(rules, func(a, b int) bool {
		va, _ := rules[a].Value(metric)
		vb, _ := rules[b].Value(metric)
		return va > vb
	})
}

package basket

import (
	"fmt"
	"math"
	"sort"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
)

// maxRuleItems bounds the itemset size enumerated for rules; 2^k-2
// bipartitions must fit in a uint64 mask.
const maxRuleItems = 62

// ParseMetric converts a metric name into a Metric.
func ParseMetric(name string) (model.Metric, error) {
	for _, m := range model.Metrics() {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMetric, name)
}

// GenerateRules derives association rules from frequent itemsets.
//
// Every itemset with at least two items is split into all 2^k-2 non-trivial
// (antecedent, consequent) bipartitions. All metrics are computed from the
// supports found in itemsets; a rule is kept when its value for metric is at
// least minThreshold. A bipartition whose antecedent or consequent is missing
// from itemsets is skipped. Empty input yields an empty result.
func GenerateRules(itemsets []model.Itemset, metric model.Metric, minThreshold float64) ([]model.Rule, error) {
	if _, err := ParseMetric(string(metric)); err != nil {
		return nil, err
	}
	if math.IsNaN(minThreshold) {
		return nil, fmt.Errorf("%w: min threshold is NaN", ErrInvalidParameter)
	}

	rules := make([]model.Rule, 0)
	if len(itemsets) == 0 {
		return rules, nil
	}

	supports := make(map[string]float64, len(itemsets))
	for _, set := range itemsets {
		supports[model.ItemsKey(sortedCopy(set.Items))] = set.Support
	}

	for _, set := range itemsets {
		items := sortedCopy(set.Items)
		k := len(items)
		if k < 2 {
			continue
		}
		if k > maxRuleItems {
			return nil, fmt.Errorf("%w: itemset of %d items is too large for rule generation", ErrInvalidParameter, k)
		}

		full := uint64(1)<<uint(k) - 1
		for mask := uint64(1); mask < full; mask++ {
			antecedent, consequent := split(items, mask)

			sA, okA := supports[model.ItemsKey(antecedent)]
			sC, okC := supports[model.ItemsKey(consequent)]
			if !okA || !okC {
				continue
			}

			rule := newRule(antecedent, consequent, set.Support, sA, sC)
			value, _ := rule.Value(metric)
			if value >= minThreshold {
				rules = append(rules, rule)
			}
		}
	}

	return rules, nil
}

// newRule computes every metric of antecedent => consequent from supports.
func newRule(antecedent, consequent []string, sAC, sA, sC float64) model.Rule {
	confidence := sAC / sA
	lift := confidence / sC
	leverage := sAC - sA*sC

	conviction := math.Inf(1)
	if confidence < 1 {
		conviction = (1 - sC) / (1 - confidence)
	}

	return model.Rule{
		Antecedent:        antecedent,
		Consequent:        consequent,
		AntecedentSupport: sA,
		ConsequentSupport: sC,
		Support:           sAC,
		Confidence:        confidence,
		Lift:              lift,
		Leverage:          leverage,
		Conviction:        conviction,
		ZhangsMetric:      zhangsMetric(sAC, sA, sC),
	}
}

// zhangsMetric measures association and dissociation on a [-1, 1] scale.
func zhangsMetric(sAC, sA, sC float64) float64 {
	denominator := math.Max(sAC*(1-sA), sA*(sC-sAC))
	if denominator == 0 {
		return 0
	}
	return (sAC - sA*sC) / denominator
}

// split partitions sorted items by mask; bit i set puts items[i] in the antecedent.
func split(items []string, mask uint64) (antecedent, consequent []string) {
	for i, item := range items {
		if mask&(1<<uint(i)) != 0 {
			antecedent = append(antecedent, item)
		} else {
			consequent = append(consequent, item)
		}
	}
	return antecedent, consequent
}

func sortedCopy(items []string) []string {
	out := append([]string(nil), items...)
	sort.Strings(out)
	return out
}

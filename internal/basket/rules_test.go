package basket

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRules_Scenario(t *testing.T) {
	sets, err := Mine(scenarioMatrix(t), 0.5)
	require.NoError(t, err)

	rules, err := GenerateRules(sets, model.MetricConfidence, 0)
	require.NoError(t, err)
	require.Len(t, rules, 4)

	byName := make(map[string]model.Rule)
	for _, r := range rules {
		byName[r.String()] = r
	}

	ab := byName["[A] => [B]"]
	assert.InDelta(t, 0.5, ab.Support, 1e-12)
	assert.InDelta(t, 0.75, ab.AntecedentSupport, 1e-12)
	assert.InDelta(t, 0.75, ab.ConsequentSupport, 1e-12)
	assert.InDelta(t, 2.0/3.0, ab.Confidence, 1e-12)
	assert.InDelta(t, (2.0/3.0)/0.75, ab.Lift, 1e-12)
	assert.InDelta(t, 0.5-0.75*0.75, ab.Leverage, 1e-12)
	assert.InDelta(t, (1-0.75)/(1-2.0/3.0), ab.Conviction, 1e-12)

	cb := byName["[C] => [B]"]
	assert.Equal(t, 1.0, cb.Confidence)
	assert.True(t, math.IsInf(cb.Conviction, 1))
	assert.InDelta(t, 1/0.75, cb.Lift, 1e-12)
	assert.InDelta(t, 0.5, cb.ZhangsMetric, 1e-12)
}

func TestGenerateRules_ThresholdFilters(t *testing.T) {
	sets, err := Mine(scenarioMatrix(t), 0.5)
	require.NoError(t, err)

	rules, err := GenerateRules(sets, model.MetricConfidence, 1)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, []string{"C"}, rules[0].Antecedent)
	assert.Equal(t, []string{"B"}, rules[0].Consequent)

	rules, err = GenerateRules(sets, model.MetricConviction, 1e9)
	require.NoError(t, err)
	require.Len(t, rules, 1, "infinite conviction passes any finite threshold")

	rules, err = GenerateRules(sets, model.MetricLift, 1.0)
	require.NoError(t, err)
	for _, r := range rules {
		assert.GreaterOrEqual(t, r.Lift, 1.0)
	}

	rules, err = GenerateRules(sets, model.MetricLeverage, 0.5)
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestGenerateRules_AllBipartitions(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := randomMatrix(rng, 30, 6, 0.6)

	sets, err := Mine(m, 0.1)
	require.NoError(t, err)

	want := 0
	for _, s := range sets {
		if s.Len() >= 2 {
			want += (1 << s.Len()) - 2
		}
	}
	require.Positive(t, want)

	rules, err := GenerateRules(sets, model.MetricConfidence, 0)
	require.NoError(t, err)
	assert.Len(t, rules, want)

	seen := make(map[string]bool)
	for _, r := range rules {
		require.NotEmpty(t, r.Antecedent)
		require.NotEmpty(t, r.Consequent)
		for _, a := range r.Antecedent {
			assert.NotContains(t, r.Consequent, a)
		}
		key := r.String()
		assert.False(t, seen[key], "duplicate rule %s", key)
		seen[key] = true
	}
}

func TestGenerateRules_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	m := randomMatrix(rng, 50, 7, 0.5)
	sets, err := Mine(m, 0.1)
	require.NoError(t, err)

	first, err := GenerateRules(sets, model.MetricLift, 1)
	require.NoError(t, err)
	second, err := GenerateRules(sets, model.MetricLift, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateRules_EmptyItemsets(t *testing.T) {
	rules, err := GenerateRules(nil, model.MetricLift, 1)
	require.NoError(t, err)
	assert.NotNil(t, rules)
	assert.Empty(t, rules)
}

func TestGenerateRules_UnsupportedMetric(t *testing.T) {
	_, err := GenerateRules(nil, model.Metric("coolness"), 1)
	assert.ErrorIs(t, err, ErrUnsupportedMetric)
}

func TestGenerateRules_NaNThreshold(t *testing.T) {
	_, err := GenerateRules(nil, model.MetricLift, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGenerateRules_SkipsMissingSubsets(t *testing.T) {
	sets := []model.Itemset{
		{Items: []string{"A"}, Support: 0.6},
		{Items: []string{"A", "B"}, Support: 0.4},
	}

	rules, err := GenerateRules(sets, model.MetricConfidence, 0)
	require.NoError(t, err)
	assert.Empty(t, rules, "B support unknown, so neither direction can be scored")
}

func TestGenerateRules_UnsortedInputItems(t *testing.T) {
	sets := []model.Itemset{
		{Items: []string{"A"}, Support: 0.5},
		{Items: []string{"B"}, Support: 0.5},
		{Items: []string{"B", "A"}, Support: 0.5},
	}

	rules, err := GenerateRules(sets, model.MetricConfidence, 0)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, []string{"A"}, rules[0].Antecedent)
	assert.Equal(t, []string{"B"}, rules[1].Antecedent)
}

func TestParseMetric(t *testing.T) {
	for _, m := range model.Metrics() {
		got, err := ParseMetric(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	_, err := ParseMetric("Lift")
	assert.ErrorIs(t, err, ErrUnsupportedMetric)
}

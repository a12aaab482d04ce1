package basket

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioMatrix(t *testing.T) *model.Matrix {
	t.Helper()
	m, err := NewMatrix([][]string{
		{"A", "B"},
		{"A", "B", "C"},
		{"A"},
		{"B", "C"},
	})
	require.NoError(t, err)
	return m
}

func TestMine_Scenario(t *testing.T) {
	sets, err := Mine(scenarioMatrix(t), 0.5)
	require.NoError(t, err)

	want := []model.Itemset{
		{Items: []string{"A"}, Support: 0.75, Count: 3},
		{Items: []string{"B"}, Support: 0.75, Count: 3},
		{Items: []string{"C"}, Support: 0.5, Count: 2},
		{Items: []string{"A", "B"}, Support: 0.5, Count: 2},
		{Items: []string{"B", "C"}, Support: 0.5, Count: 2},
	}
	assert.Equal(t, want, sets)
}

func TestMine_InvalidParameters(t *testing.T) {
	m := scenarioMatrix(t)

	for _, support := range []float64{1.1, 0, -0.2, math.NaN()} {
		t.Run(fmt.Sprintf("support %v", support), func(t *testing.T) {
			sets, err := Mine(m, support)
			assert.ErrorIs(t, err, ErrInvalidParameter)
			assert.Nil(t, sets)
		})
	}

	_, err := Mine(m, 0.5, WithMaxLen(-1))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestMine_EmptyInput(t *testing.T) {
	_, err := Mine(&model.Matrix{}, 0.5)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Mine(nil, 0.5)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestMine_MalformedMatrix(t *testing.T) {
	m := &model.Matrix{
		Rows:    []string{"t1", "t2"},
		Columns: []string{"A"},
		Cells:   [][]bool{{true}},
	}
	_, err := Mine(m, 0.5)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestMine_NothingFrequent(t *testing.T) {
	m, err := NewMatrix([][]string{{"A"}, {"B"}, {"C"}, {"D"}})
	require.NoError(t, err)

	sets, err := Mine(m, 0.5)
	require.NoError(t, err)
	assert.NotNil(t, sets)
	assert.Empty(t, sets)
}

func TestMine_FullSupport(t *testing.T) {
	m, err := NewMatrix([][]string{{"A", "B"}, {"A", "B"}, {"A", "B", "C"}})
	require.NoError(t, err)

	sets, err := Mine(m, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.Itemset{
		{Items: []string{"A"}, Support: 1, Count: 3},
		{Items: []string{"B"}, Support: 1, Count: 3},
		{Items: []string{"A", "B"}, Support: 1, Count: 3},
	}, sets)
}

func TestMine_RowsWithoutItems(t *testing.T) {
	m := &model.Matrix{
		Rows:    []string{"t1", "t2", "t3", "t4"},
		Columns: []string{"A", "B"},
		Cells: [][]bool{
			{true, true},
			{true, false},
			{false, false},
			{false, false},
		},
	}

	sets, err := Mine(m, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []model.Itemset{{Items: []string{"A"}, Support: 0.5, Count: 2}}, sets)
}

func TestMine_MaxLen(t *testing.T) {
	m, err := NewMatrix([][]string{{"A", "B", "C"}, {"A", "B", "C"}, {"A", "B"}})
	require.NoError(t, err)

	sets, err := Mine(m, 0.5, WithMaxLen(2))
	require.NoError(t, err)
	for _, s := range sets {
		assert.LessOrEqual(t, s.Len(), 2)
	}
	assert.Len(t, sets, 6)

	all, err := Mine(m, 0.5)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestMine_SupportThresholdIsInclusive(t *testing.T) {
	// 3 of 10 transactions: 0.3*10 is not exactly 3 in floating point.
	rows := make([][]string, 10)
	for i := range rows {
		rows[i] = []string{"B"}
	}
	rows[0] = []string{"A", "B"}
	rows[1] = []string{"A", "B"}
	rows[2] = []string{"A", "B"}

	m, err := NewMatrix(rows)
	require.NoError(t, err)

	sets, err := Mine(m, 0.3)
	require.NoError(t, err)
	keys := itemsetKeys(sets)
	assert.Contains(t, keys, "A")
	assert.Contains(t, keys, model.ItemsKey([]string{"A", "B"}))
}

func TestMine_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 40; trial++ {
		nRows := 1 + rng.Intn(30)
		nCols := 1 + rng.Intn(7)
		density := 0.2 + rng.Float64()*0.6
		m := randomMatrix(rng, nRows, nCols, density)
		minSupport := []float64{0.05, 0.1, 0.2, 0.34, 0.5, 0.75, 1}[rng.Intn(7)]

		t.Run(fmt.Sprintf("trial %d", trial), func(t *testing.T) {
			got, err := Mine(m, minSupport)
			require.NoError(t, err)

			want := bruteForce(m, minSupport)
			assert.Equal(t, want, got)
		})
	}
}

func TestMine_AntiMonotone(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := randomMatrix(rng, 40, 8, 0.5)

	sets, err := Mine(m, 0.1)
	require.NoError(t, err)

	support := make(map[string]float64, len(sets))
	for _, s := range sets {
		support[s.Key()] = s.Support
	}

	for _, s := range sets {
		require.GreaterOrEqual(t, s.Support, 0.1)
		// Every proper subset obtained by dropping one item must be present
		// with at least the same support.
		for drop := range s.Items {
			if s.Len() == 1 {
				break
			}
			subset := make([]string, 0, s.Len()-1)
			subset = append(subset, s.Items[:drop]...)
			subset = append(subset, s.Items[drop+1:]...)
			sub, ok := support[model.ItemsKey(subset)]
			require.True(t, ok, "subset %v of %v missing", subset, s.Items)
			assert.GreaterOrEqual(t, sub, s.Support)
		}
	}
}

func TestMine_NeverEmitsInfrequentItems(t *testing.T) {
	m, err := NewMatrix([][]string{{"A", "Z"}, {"A", "B"}, {"A", "B"}, {"B"}})
	require.NoError(t, err)

	sets, err := Mine(m, 0.5)
	require.NoError(t, err)
	for _, s := range sets {
		assert.NotContains(t, s.Items, "Z")
	}
}

func TestMine_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	m := randomMatrix(rng, 60, 9, 0.4)

	first, err := Mine(m, 0.08)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Mine(m, 0.08)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestMinimumCount(t *testing.T) {
	tests := []struct {
		support float64
		total   int
		want    int
	}{
		{support: 0.5, total: 4, want: 2},
		{support: 0.3, total: 10, want: 3},
		{support: 1, total: 7, want: 7},
		{support: 0.01, total: 7, want: 1},
		{support: 0.34, total: 3, want: 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, minimumCount(tt.support, tt.total), "support %v of %d", tt.support, tt.total)
	}
}

func randomMatrix(rng *rand.Rand, nRows, nCols int, density float64) *model.Matrix {
	m := &model.Matrix{
		Rows:    make([]string, nRows),
		Columns: make([]string, nCols),
		Cells:   make([][]bool, nRows),
	}
	for j := range m.Columns {
		m.Columns[j] = fmt.Sprintf("item-%c", 'a'+j)
	}
	for i := range m.Rows {
		m.Rows[i] = fmt.Sprintf("customer-%03d", i)
		m.Cells[i] = make([]bool, nCols)
		for j := range m.Cells[i] {
			m.Cells[i][j] = rng.Float64() < density
		}
	}
	return m
}

// bruteForce enumerates every column subset and keeps the frequent ones.
func bruteForce(m *model.Matrix, minSupport float64) []model.Itemset {
	total := len(m.Rows)
	result := make([]model.Itemset, 0)

	for mask := 1; mask < 1<<len(m.Columns); mask++ {
		count := 0
		for _, row := range m.Cells {
			all := true
			for j := range m.Columns {
				if mask&(1<<j) != 0 && !row[j] {
					all = false
					break
				}
			}
			if all {
				count++
			}
		}

		support := float64(count) / float64(total)
		if count == 0 || support < minSupport {
			continue
		}

		items := make([]string, 0)
		for j, col := range m.Columns {
			if mask&(1<<j) != 0 {
				items = append(items, col)
			}
		}
		sort.Strings(items)
		result = append(result, model.Itemset{Items: items, Support: support, Count: count})
	}

	sortItemsets(result)
	return result
}

func itemsetKeys(sets []model.Itemset) []string {
	keys := make([]string, len(sets))
	for i, s := range sets {
		keys[i] = s.Key()
	}
	return keys
}

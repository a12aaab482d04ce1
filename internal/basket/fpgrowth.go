package basket

import (
	"fmt"
	"math"
	"sort"

	"github.com/Veraticus/the-bundle-must-flow/internal/model"
)

// MineOption configures a mining run.
type MineOption func(*mineConfig)

type mineConfig struct {
	maxLen int
}

// WithMaxLen limits the size of the returned itemsets. Zero means no limit.
func WithMaxLen(n int) MineOption {
	return func(c *mineConfig) {
		c.maxLen = n
	}
}

// fpNode is a node of an FP-tree. Items are identified by their rank in the
// global frequency order.
type fpNode struct {
	parent   *fpNode
	children map[int]*fpNode
	item     int
	count    int
}

// fpTree is a prefix tree of transactions whose items are sorted by rank.
// header[rank] lists every node carrying that item.
type fpTree struct {
	root   *fpNode
	header map[int][]*fpNode
	ranks  []int
}

func newFPTree() *fpTree {
	return &fpTree{
		root:   &fpNode{item: -1, children: make(map[int]*fpNode)},
		header: make(map[int][]*fpNode),
	}
}

// insert adds a rank-ordered path with the given multiplicity.
func (t *fpTree) insert(path []int, count int) {
	node := t.root
	for _, item := range path {
		child, ok := node.children[item]
		if !ok {
			child = &fpNode{parent: node, children: make(map[int]*fpNode), item: item}
			node.children[item] = child
			if _, known := t.header[item]; !known {
				t.ranks = append(t.ranks, item)
			}
			t.header[item] = append(t.header[item], child)
		}
		child.count += count
		node = child
	}
}

// support returns the total count of an item in the tree.
func (t *fpTree) support(item int) int {
	total := 0
	for _, n := range t.header[item] {
		total += n.count
	}
	return total
}

type miner struct {
	emit     func(items []int, count int)
	minCount int
	maxLen   int
}

// Mine returns every itemset whose support in the matrix is at least minSupport.
//
// minSupport must lie in (0, 1]. Items that are infrequent on their own are
// pruned before the FP-tree is built; no superset of them can be frequent.
// Items are ordered by descending frequency with ties broken by item name, and
// the result is sorted by itemset length and then lexicographically, so equal
// input always yields identical output. An empty result is not an error.
func Mine(m *model.Matrix, minSupport float64, opts ...MineOption) ([]model.Itemset, error) {
	cfg := mineConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if math.IsNaN(minSupport) || minSupport <= 0 || minSupport > 1 {
		return nil, fmt.Errorf("%w: min support %v must be in (0, 1]", ErrInvalidParameter, minSupport)
	}
	if cfg.maxLen < 0 {
		return nil, fmt.Errorf("%w: max length %d must not be negative", ErrInvalidParameter, cfg.maxLen)
	}
	if m == nil || len(m.Rows) == 0 {
		return nil, ErrEmptyInput
	}
	if err := checkShape(m); err != nil {
		return nil, err
	}

	total := len(m.Rows)
	minCount := minimumCount(minSupport, total)

	// Global item counts and pruning of infrequent single items.
	counts := make([]int, len(m.Columns))
	for _, row := range m.Cells {
		for j, present := range row {
			if present {
				counts[j]++
			}
		}
	}

	frequent := make([]int, 0, len(m.Columns))
	for j, c := range counts {
		if c >= minCount {
			frequent = append(frequent, j)
		}
	}
	sort.SliceStable(frequent, func(a, b int) bool {
		ca, cb := counts[frequent[a]], counts[frequent[b]]
		if ca != cb {
			return ca > cb
		}
		return m.Columns[frequent[a]] < m.Columns[frequent[b]]
	})

	// rankOf maps a column index to its position in the frequency order.
	rankOf := make(map[int]int, len(frequent))
	names := make([]string, len(frequent))
	for rank, col := range frequent {
		rankOf[col] = rank
		names[rank] = m.Columns[col]
	}

	tree := newFPTree()
	path := make([]int, 0, len(frequent))
	for _, row := range m.Cells {
		path = path[:0]
		for j, present := range row {
			if !present {
				continue
			}
			if rank, ok := rankOf[j]; ok {
				path = append(path, rank)
			}
		}
		if len(path) == 0 {
			continue
		}
		sort.Ints(path)
		tree.insert(path, 1)
	}

	result := make([]model.Itemset, 0)
	mn := &miner{
		minCount: minCount,
		maxLen:   cfg.maxLen,
		emit: func(items []int, count int) {
			set := make([]string, len(items))
			for i, rank := range items {
				set[i] = names[rank]
			}
			sort.Strings(set)
			result = append(result, model.Itemset{
				Items:   set,
				Support: float64(count) / float64(total),
				Count:   count,
			})
		},
	}
	mn.mine(tree, nil)

	sortItemsets(result)
	return result, nil
}

// mine walks the header of tree from the least frequent item upwards, emits
// suffix+item and recurses into the conditional tree of that item.
func (mn *miner) mine(tree *fpTree, suffix []int) {
	ranks := append([]int(nil), tree.ranks...)
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	for _, item := range ranks {
		count := tree.support(item)
		if count < mn.minCount {
			continue
		}

		itemset := make([]int, 0, len(suffix)+1)
		itemset = append(itemset, item)
		itemset = append(itemset, suffix...)
		mn.emit(itemset, count)

		if mn.maxLen > 0 && len(itemset) >= mn.maxLen {
			continue
		}

		cond := mn.conditionalTree(tree, item)
		if len(cond.ranks) > 0 {
			mn.mine(cond, itemset)
		}
	}
}

// conditionalTree builds the FP-tree of the prefix paths leading to item,
// keeping only the items that stay frequent within those paths.
func (mn *miner) conditionalTree(tree *fpTree, item int) *fpTree {
	type prefixPath struct {
		items []int
		count int
	}

	base := make([]prefixPath, 0, len(tree.header[item]))
	local := make(map[int]int)
	for _, node := range tree.header[item] {
		var items []int
		for p := node.parent; p != nil && p.item >= 0; p = p.parent {
			items = append(items, p.item)
			local[p.item] += node.count
		}
		if len(items) == 0 {
			continue
		}
		base = append(base, prefixPath{items: items, count: node.count})
	}

	cond := newFPTree()
	path := make([]int, 0)
	for _, pp := range base {
		path = path[:0]
		for _, it := range pp.items {
			if local[it] >= mn.minCount {
				path = append(path, it)
			}
		}
		if len(path) == 0 {
			continue
		}
		sort.Ints(path)
		cond.insert(path, pp.count)
	}

	return cond
}

// minimumCount converts a support ratio into the smallest transaction count
// whose ratio count/total is at least minSupport.
func minimumCount(minSupport float64, total int) int {
	c := int(math.Ceil(minSupport * float64(total)))
	for c > 1 && float64(c-1)/float64(total) >= minSupport {
		c--
	}
	for float64(c)/float64(total) < minSupport {
		c++
	}
	if c < 1 {
		c = 1
	}
	return c
}

func checkShape(m *model.Matrix) error {
	if len(m.Cells) != len(m.Rows) {
		return fmt.Errorf("%w: matrix has %d rows but %d cell rows", ErrInvalidParameter, len(m.Rows), len(m.Cells))
	}
	for i, row := range m.Cells {
		if len(row) != len(m.Columns) {
			return fmt.Errorf("%w: row %q has %d cells, want %d", ErrInvalidParameter, m.Rows[i], len(row), len(m.Columns))
		}
	}
	return nil
}

// sortItemsets orders itemsets by length, then by their sorted item lists.
func sortItemsets(sets []model.Itemset) {
	sort.Slice(sets, func(a, b int) bool {
		ia, ib := sets[a].Items, sets[b].Items
		if len(ia) != len(ib) {
			return len(ia) < len(ib)
		}
		for k := range ia {
			if ia[k] != ib[k] {
				return ia[k] < ib[k]
			}
		}
		return false
	})
}

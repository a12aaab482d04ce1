package tui

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/Veraticus/the-bundle-must-flow/internal/basket"
	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/Veraticus/the-bundle-must-flow/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// View represents the current view mode.
type View int

const (
	ViewRules View = iota
	ViewItemsets
)

// Model holds the explorer state.
type Model struct {
	lastError     error
	sizes         map[int]bool
	theme         themes.Theme
	help          help.Model
	keymap        KeyMap
	itemsets      []model.Itemset
	rules         []model.Rule
	visible       []model.Rule
	available     []int
	table         table.Model
	config        Config
	sortBy        model.Metric
	minSupport    float64
	minConfidence float64
	elapsed       time.Duration
	width         int
	height        int
	view          View
	mining        bool
	quitting      bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	keymap := DefaultKeyMap()

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	t := table.New(
		table.WithFocused(true),
		table.WithKeyMap(keymap.tableKeyMap()),
	)
	styles := table.DefaultStyles()
	styles.Header = cfg.Theme.TableHeader
	styles.Selected = cfg.Theme.TableSelected
	t.SetStyles(styles)

	m := Model{
		config:        cfg,
		theme:         cfg.Theme,
		keymap:        keymap,
		help:          h,
		table:         t,
		sizes:         make(map[int]bool),
		sortBy:        cfg.SortBy,
		minSupport:    cfg.MinSupport,
		minConfidence: cfg.MinConfidence,
		width:         cfg.Width,
		height:        cfg.Height,
		view:          ViewRules,
		mining:        true,
	}
	m.handleResize()
	m.refresh()
	return m
}

// Init starts the first mining run.
func (m Model) Init() tea.Cmd {
	return m.mineCmd(m.minSupport)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		m.refresh()
		return m, nil

	case minedMsg:
		// A newer run is pending; its result will replace this one.
		if msg.minSupport != m.minSupport {
			return m, nil
		}
		m.mining = false
		m.lastError = msg.err
		m.itemsets = msg.itemsets
		m.rules = msg.rules
		m.elapsed = msg.elapsed
		m.available = basket.AntecedentSizes(m.rules)
		m.pruneSizes()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()
		return m, nil

	case key.Matches(msg, m.keymap.SupportUp):
		return m.setSupport(m.minSupport + m.config.SupportStep)

	case key.Matches(msg, m.keymap.SupportDown):
		return m.setSupport(m.minSupport - m.config.SupportStep)

	case key.Matches(msg, m.keymap.ConfidenceUp):
		m.minConfidence = clamp(m.minConfidence+m.config.ConfidenceStep, 0, 1)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.ConfidenceDown):
		m.minConfidence = clamp(m.minConfidence-m.config.ConfidenceStep, 0, 1)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.ToggleSize):
		if n, err := strconv.Atoi(msg.String()); err == nil {
			m.sizes = toggled(m.sizes, n)
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.ResetSizes):
		m.sizes = make(map[int]bool)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.CycleSort):
		m.sortBy = nextMetric(m.sortBy)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keymap.ToggleView):
		if m.view == ViewRules {
			m.view = ViewItemsets
		} else {
			m.view = ViewRules
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// setSupport changes min support and re-mines when the value moved.
func (m Model) setSupport(v float64) (tea.Model, tea.Cmd) {
	v = clamp(v, m.config.SupportStep, 1)
	if v == m.minSupport {
		return m, nil
	}
	m.minSupport = v
	m.mining = true
	return m, m.mineCmd(v)
}

// SelectedSizes returns the antecedent sizes currently toggled on, ascending.
func (m Model) SelectedSizes() []int {
	sizes := make([]int, 0, len(m.sizes))
	for n := range m.sizes {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)
	return sizes
}

// VisibleRules returns the rules that pass the current filters.
func (m Model) VisibleRules() []model.Rule {
	return m.visible
}

// Thresholds returns the current min support and min confidence.
func (m Model) Thresholds() (minSupport, minConfidence float64) {
	return m.minSupport, m.minConfidence
}

// toggled returns a copy of sizes with n flipped.
func toggled(sizes map[int]bool, n int) map[int]bool {
	out := make(map[int]bool, len(sizes)+1)
	for k := range sizes {
		out[k] = true
	}
	if sizes[n] {
		delete(out, n)
	} else {
		out[n] = true
	}
	return out
}

// pruneSizes drops toggled sizes no rule has any more.
func (m *Model) pruneSizes() {
	present := make(map[int]bool, len(m.available))
	for _, n := range m.available {
		present[n] = true
	}
	kept := make(map[int]bool, len(m.sizes))
	for n := range m.sizes {
		if present[n] {
			kept[n] = true
		}
	}
	m.sizes = kept
}

// refresh reapplies the rule filter and rebuilds the table.
func (m *Model) refresh() {
	filter := basket.RuleFilter{
		AntecedentSizes: m.SelectedSizes(),
		MinSupport:      m.minSupport,
		MinConfidence:   m.minConfidence,
	}
	m.visible = filter.Apply(m.rules)
	basket.SortRules(m.visible, m.sortBy)

	m.table.SetRows(nil)
	switch m.view {
	case ViewItemsets:
		m.table.SetColumns(m.itemsetColumns())
		m.table.SetRows(itemsetRows(m.itemsets))
	default:
		m.table.SetColumns(m.ruleColumns())
		m.table.SetRows(ruleRows(m.visible))
	}
}

// handleResize fits the table into the space left by header and help.
func (m *Model) handleResize() {
	reserved := 8
	if m.help.ShowAll {
		reserved += 4
	}
	height := m.height - reserved
	if height < 3 {
		height = 3
	}
	m.table.SetHeight(height)
	m.table.SetWidth(m.width)
	m.help.Width = m.width
}

func clamp(v, lo, hi float64) float64 {
	v = math.Round(v*1e4) / 1e4
	return math.Max(lo, math.Min(hi, v))
}

func nextMetric(current model.Metric) model.Metric {
	metrics := model.Metrics()
	for i, mt := range metrics {
		if mt == current {
			return metrics[(i+1)%len(metrics)]
		}
	}
	return metrics[0]
}

package tui

import (
	"github.com/Veraticus/the-bundle-must-flow/internal/model"
	"github.com/Veraticus/the-bundle-must-flow/internal/service"
	"github.com/Veraticus/the-bundle-must-flow/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	Miner          service.Miner
	Matrix         *model.Matrix
	Metric         model.Metric
	SortBy         model.Metric
	MinThreshold   float64
	MinSupport     float64
	MinConfidence  float64
	SupportStep    float64
	ConfidenceStep float64
	MaxLen         int
	Width          int
	Height         int
	ShowHelp       bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		Metric:         model.MetricLift,
		SortBy:         model.MetricLift,
		MinThreshold:   1.0,
		MinSupport:     0.2,
		MinConfidence:  0.6,
		SupportStep:    0.01,
		ConfidenceStep: 0.05,
		Width:          120,
		Height:         30,
		ShowHelp:       false,
	}
}

// WithData sets the matrix to explore and the miner used on it.
func WithData(matrix *model.Matrix, miner service.Miner) Option {
	return func(c *Config) {
		c.Matrix = matrix
		c.Miner = miner
	}
}

// WithTheme sets the color theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithThresholds sets the starting min support and min confidence.
func WithThresholds(minSupport, minConfidence float64) Option {
	return func(c *Config) {
		c.MinSupport = minSupport
		c.MinConfidence = minConfidence
	}
}

// WithRuleMetric sets the metric and threshold rules are generated with.
func WithRuleMetric(metric model.Metric, minThreshold float64) Option {
	return func(c *Config) {
		c.Metric = metric
		c.SortBy = metric
		c.MinThreshold = minThreshold
	}
}

// WithMaxLen limits the size of mined itemsets.
func WithMaxLen(n int) Option {
	return func(c *Config) {
		c.MaxLen = n
	}
}

// WithHelp shows the full help from the start.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}

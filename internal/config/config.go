package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/the-bundle-must-flow/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the decoded application configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Bundle    BundleConfig    `mapstructure:"bundle"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// IngestConfig controls how uploaded sales files are cleaned.
// Alias maps extend the built-in defaults; keys are matched case-insensitively.
type IngestConfig struct {
	UnitAliases     map[string]string `mapstructure:"unit_aliases"`
	CustomerAliases map[string]string `mapstructure:"customer_aliases"`
	RetailCustomer  string            `mapstructure:"retail_customer" validate:"required"`
	Workers         int               `mapstructure:"workers" validate:"gte=1,lte=32"`
}

// BundleConfig holds the default mining and rule parameters.
type BundleConfig struct {
	Metric        string        `mapstructure:"metric" validate:"oneof=support confidence lift leverage conviction zhangs_metric"`
	MinSupport    float64       `mapstructure:"min_support" validate:"gt=0,lte=1"`
	MinConfidence float64       `mapstructure:"min_confidence" validate:"gte=0,lte=1"`
	MinThreshold  float64       `mapstructure:"min_threshold"`
	MaxLen        int           `mapstructure:"max_len" validate:"gte=0"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`
}

// DashboardConfig holds presentation defaults.
type DashboardConfig struct {
	TopProducts int `mapstructure:"top_products" validate:"gte=1"`
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", Dir+"/bundle.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("ingest.retail_customer", "UMUM/CASH")
	v.SetDefault("ingest.workers", 4)

	v.SetDefault("bundle.min_support", 0.2)
	v.SetDefault("bundle.min_confidence", 0.6)
	v.SetDefault("bundle.metric", "lift")
	v.SetDefault("bundle.min_threshold", 1.0)
	v.SetDefault("bundle.max_len", 0)
	v.SetDefault("bundle.cache_ttl", 15*time.Minute)

	v.SetDefault("dashboard.top_products", 15)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	cfg.Database.Path = ExpandPath(cfg.Database.Path)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidConfig, describe(err))
	}

	return &cfg, nil
}

// describe turns validator errors into a short list of offending keys.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}

// Package config defines ironbook's runtime configuration. Config is
// loaded from a YAML file with env var overrides under the IRONBOOK_
// prefix, following 0xtitan6-polymarket-mm's internal/config/config.go
// viper wiring.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level configuration for one ironbook instance.
type Config struct {
	Listen    ListenConfig    `mapstructure:"listen"`
	Book      BookConfig      `mapstructure:"book"`
	TradeLog  TradeLogConfig  `mapstructure:"trade_log"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ListenConfig controls the HTTP API bind address.
type ListenConfig struct {
	Addr string `mapstructure:"addr"`
}

// BookConfig tunes the matching engine for the single instrument this
// instance serves.
type BookConfig struct {
	STPPolicy       string `mapstructure:"stp_policy"` // one of: cancel_both, cancel_incoming, cancel_resting
	SnapshotDepth   int    `mapstructure:"snapshot_depth"`
	TradeIDSeed     uint64 `mapstructure:"trade_id_seed"`
}

// TradeLogConfig controls the binary trade log sink.
type TradeLogConfig struct {
	Path          string        `mapstructure:"path"`
	QueueDepth    int           `mapstructure:"queue_depth"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// MetricsConfig controls the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads config from path (if non-empty) with IRONBOOK_-prefixed env
// var overrides, and fills in defaults for anything left unset.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("IRONBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen.addr", ":8080")
	v.SetDefault("book.stp_policy", "cancel_both")
	v.SetDefault("book.snapshot_depth", 5)
	v.SetDefault("book.trade_id_seed", 1)
	v.SetDefault("trade_log.path", "trades.bin")
	v.SetDefault("trade_log.queue_depth", 4096)
	v.SetDefault("trade_log.flush_interval", time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &cfg, nil
}

// Validate checks value ranges and known-enum fields.
func (c *Config) Validate() error {
	if c.Listen.Addr == "" {
		return fmt.Errorf("listen.addr is required")
	}
	switch c.Book.STPPolicy {
	case "cancel_both", "cancel_incoming", "cancel_resting":
	default:
		return fmt.Errorf("book.stp_policy must be one of cancel_both, cancel_incoming, cancel_resting, got %q", c.Book.STPPolicy)
	}
	if c.Book.SnapshotDepth <= 0 {
		return fmt.Errorf("book.snapshot_depth must be > 0")
	}
	if c.TradeLog.Path == "" {
		return fmt.Errorf("trade_log.path is required")
	}
	if c.TradeLog.QueueDepth <= 0 {
		return fmt.Errorf("trade_log.queue_depth must be > 0")
	}
	if c.TradeLog.FlushInterval <= 0 {
		return fmt.Errorf("trade_log.flush_interval must be > 0")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

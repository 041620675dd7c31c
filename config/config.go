// Package config loads and validates engine configuration. Recognized
// fields are enumerated explicitly; unknown or malformed fields are
// rejected at load time.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete engine configuration.
type Config struct {
	LogLevel string         `json:"log_level" yaml:"log_level"`
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// BacktestConfig holds the strategy and window parameters for a run.
type BacktestConfig struct {
	Symbol         string  `json:"symbol" yaml:"symbol"`
	Timeframe      string  `json:"timeframe" yaml:"timeframe"`
	StartDate      string  `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate        string  `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`

	SMA       bool `json:"sma" yaml:"sma"`
	SMAPeriod int  `json:"sma_period" yaml:"sma_period"`
	RSI       bool `json:"rsi" yaml:"rsi"`
	RSIPeriod int  `json:"rsi_period" yaml:"rsi_period"`
	MACD      bool `json:"macd" yaml:"macd"`
}

// JournalConfig selects where backtest runs are persisted.
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file. Unknown
// fields are an error in either format.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	b := c.Backtest
	if b.Symbol == "" {
		return fmt.Errorf("backtest.symbol is required")
	}
	if b.Timeframe == "" {
		return fmt.Errorf("backtest.timeframe is required")
	}
	if b.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	if !b.SMA && !b.RSI && !b.MACD {
		return fmt.Errorf("backtest: at least one of sma, rsi, macd must be enabled")
	}
	if b.SMA && b.SMAPeriod <= 0 {
		return fmt.Errorf("backtest.sma_period must be positive")
	}
	if b.RSI && b.RSIPeriod <= 0 {
		return fmt.Errorf("backtest.rsi_period must be positive")
	}

	for name, v := range map[string]string{"start_date": b.StartDate, "end_date": b.EndDate} {
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return fmt.Errorf("backtest.%s: want YYYY-MM-DD, got %q", name, v)
		}
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.Dir == "" {
			return fmt.Errorf("journal.dir required for csv journal")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite journal")
		}
	default:
		return fmt.Errorf("journal.type must be none, csv or sqlite, got %q", c.Journal.Type)
	}

	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Backtest: BacktestConfig{
			Symbol:         "BTCUSDT",
			Timeframe:      "1h",
			InitialCapital: 10_000,
			SMA:            true,
			SMAPeriod:      20,
			RSIPeriod:      14,
		},
		Journal: JournalConfig{Type: "none"},
	}
}

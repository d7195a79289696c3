// Package config loads the host settings: a JSON file, then environment
// overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"citysim/internal/sim"
	"citysim/internal/terrain"
)

// Config holds all host configuration.
type Config struct {
	ServerAddr     string `json:"server_addr"`
	TickIntervalMs int    `json:"tick_interval_ms"`
	TicksPerFrame  int    `json:"ticks_per_frame"`

	Seed         int64 `json:"seed"`
	Level        int   `json:"level"`
	NoDisasters  bool  `json:"no_disasters"`
	StartingFund int   `json:"starting_funds"`
	TaxRate      int   `json:"tax_rate"`
	AutoBulldoze bool  `json:"auto_bulldoze"`
	Scenario     int   `json:"scenario"`
	StartYear    int   `json:"start_year"`

	Terrain *terrain.Options `json:"terrain,omitempty"`

	Locale    string `json:"locale"`
	LocaleDir string `json:"locale_dir"`
	LogLevel  string `json:"log_level"`
}

var (
	ErrInvalidLevel    = errors.New("config: level must be 0, 1 or 2")
	ErrInvalidTax      = errors.New("config: tax_rate must be between 0 and 20")
	ErrInvalidInterval = errors.New("config: tick_interval_ms and ticks_per_frame must be positive")
	ErrInvalidLogLevel = errors.New("config: unknown log_level")
)

// Default returns the settings used when no file is given.
func Default() *Config {
	t := terrain.DefaultOptions()
	return &Config{
		ServerAddr:     ":8080",
		TickIntervalMs: 100,
		TicksPerFrame:  1,
		TaxRate:        7,
		StartYear:      1900,
		Terrain:        &t,
		Locale:         "en_US",
		LocaleDir:      "locales",
		LogLevel:       "info",
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path or a missing file means defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("SERVER_ADDR"); ok && v != "" {
		c.ServerAddr = v
	}
	if v, ok := lookup("CITYSIM_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CITYSIM_SEED: %w", err)
		}
		c.Seed = n
	}
	if v, ok := lookup("CITYSIM_LEVEL"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CITYSIM_LEVEL: %w", err)
		}
		c.Level = n
	}
	if v, ok := lookup("CITYSIM_NO_DISASTERS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CITYSIM_NO_DISASTERS: %w", err)
		}
		c.NoDisasters = b
	}
	if v, ok := lookup("CITYSIM_LOCALE"); ok && v != "" {
		c.Locale = v
	}
	if v, ok := lookup("CITYSIM_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks the ranges the simulation accepts.
func (c *Config) Validate() error {
	if c.Level < 0 || c.Level > 2 {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, c.Level)
	}
	if c.TaxRate < 0 || c.TaxRate > 20 {
		return fmt.Errorf("%w: %d", ErrInvalidTax, c.TaxRate)
	}
	if c.TickIntervalMs <= 0 || c.TicksPerFrame <= 0 {
		return ErrInvalidInterval
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// TickInterval is the pause between frames.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return l, nil
}

// SimOptions converts the settings into city options.
func (c *Config) SimOptions() sim.Options {
	o := sim.DefaultOptions()
	o.Seed = c.Seed
	o.Level = c.Level
	o.NoDisasters = c.NoDisasters
	o.Funds = c.StartingFund
	o.Tax = c.TaxRate
	o.AutoBulldoze = c.AutoBulldoze
	o.Scenario = c.Scenario
	o.StartYear = c.StartYear
	o.Terrain = c.Terrain
	return o
}

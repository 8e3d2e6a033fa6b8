// Package config loads the forecasting configuration: the category to
// data-source mapping, model settings, cache backend, and logging. It
// replaces ambient global state with an explicit structure passed into the
// pipeline at call time.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Horizon bounds accepted from callers.
const (
	MinHorizon = 1
	MaxHorizon = 36
)

type Config struct {
	Categories map[string]Category `yaml:"categories"`
	Model      Model               `yaml:"model"`
	Cache      Cache               `yaml:"cache"`
	Logging    Logging             `yaml:"logging"`
}

// Category maps a product category to its data source.
type Category struct {
	File        string `yaml:"file"`
	DateColumn  string `yaml:"date_column"`  // optional, detected by header token when empty
	ValueColumn string `yaml:"value_column"` // optional, first non-date column when empty
}

type Model struct {
	Trend          string `yaml:"trend"`
	Seasonal       string `yaml:"seasonal"`
	Period         int    `yaml:"period"`
	DefaultHorizon int    `yaml:"default_horizon"`
}

type Cache struct {
	Backend    string        `yaml:"backend"` // memory or redis
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	Redis      Redis         `yaml:"redis"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides Redis connection
// settings from the environment.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if addr := os.Getenv("GOFORECAST_REDIS_ADDR"); addr != "" {
		c.Cache.Redis.Addr = addr
	}
	if password := os.Getenv("GOFORECAST_REDIS_PASSWORD"); password != "" {
		c.Cache.Redis.Password = password
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Model.Trend == "" {
		c.Model.Trend = "multiplicative"
	}
	if c.Model.Seasonal == "" {
		c.Model.Seasonal = "multiplicative"
	}
	if c.Model.Period == 0 {
		c.Model.Period = 12
	}
	if c.Model.DefaultHorizon == 0 {
		c.Model.DefaultHorizon = 12
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "goforecast"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	for name, cat := range c.Categories {
		if cat.File == "" {
			return fmt.Errorf("category %q: file is required", name)
		}
	}

	if c.Model.Trend != "additive" && c.Model.Trend != "multiplicative" {
		return fmt.Errorf("model.trend must be additive or multiplicative, got %q", c.Model.Trend)
	}
	if c.Model.Seasonal != "additive" && c.Model.Seasonal != "multiplicative" {
		return fmt.Errorf("model.seasonal must be additive or multiplicative, got %q", c.Model.Seasonal)
	}
	if c.Model.Period < 2 {
		return fmt.Errorf("model.period must be at least 2, got %d", c.Model.Period)
	}
	if c.Model.DefaultHorizon < MinHorizon || c.Model.DefaultHorizon > MaxHorizon {
		return fmt.Errorf("model.default_horizon must be in [%d,%d], got %d", MinHorizon, MaxHorizon, c.Model.DefaultHorizon)
	}

	switch c.Cache.Backend {
	case "memory":
	case "redis":
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend must be memory or redis, got %q", c.Cache.Backend)
	}

	return nil
}

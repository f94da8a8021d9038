// Package config loads the exchange and simulation configuration from YAML,
// with environment fallback for the database URL.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Symbols       []string `yaml:"symbols"`
	EngineCount   int      `yaml:"engine_count"`
	QueueCapacity int      `yaml:"queue_capacity"`
	HTTPAddr      string   `yaml:"http_addr"`
	DatabaseURL   string   `yaml:"database_url"`
	Sim           Sim      `yaml:"sim"`
}

type Sim struct {
	Rounds       int   `yaml:"rounds"`
	OrdersPerBot int   `yaml:"orders_per_bot"`
	Seed         int64 `yaml:"seed"`
	Bots         []Bot `yaml:"bots"`
}

type Bot struct {
	Kind   string  `yaml:"kind"` // gaussian | market_maker | spoofer | trade_messenger
	Symbol string  `yaml:"symbol"`
	Side   string  `yaml:"side"` // B | S
	Shares int64   `yaml:"shares"`
	Mean   float64 `yaml:"mean"`
	Stddev float64 `yaml:"stddev"`
	Center float64 `yaml:"center"`
	Spread float64 `yaml:"spread"`
	Price  float64 `yaml:"price"`
}

func Default() Config {
	return Config{
		Symbols:       []string{"SPY", "AAPL", "MSFT", "AMZN"},
		EngineCount:   2,
		QueueCapacity: 128,
		HTTPAddr:      ":8080",
		Sim: Sim{
			Rounds:       100,
			OrdersPerBot: 4,
			Seed:         1,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults
// as-is. DATABASE_URL in the environment overrides the file value.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("config: at least one symbol required")
	}
	if c.EngineCount < 1 {
		return fmt.Errorf("config: engine_count must be >= 1, got %d", c.EngineCount)
	}
	seen := make(map[string]struct{}, len(c.Symbols))
	for _, s := range c.Symbols {
		if s == "" || len(s) > 6 {
			return fmt.Errorf("config: symbol %q must be 1-6 characters", s)
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("config: duplicate symbol %q", s)
		}
		seen[s] = struct{}{}
	}
	for i, b := range c.Sim.Bots {
		switch b.Kind {
		case "gaussian", "market_maker", "spoofer", "trade_messenger":
		default:
			return fmt.Errorf("config: bot %d: unknown kind %q", i, b.Kind)
		}
		if _, known := seen[b.Symbol]; !known {
			return fmt.Errorf("config: bot %d: symbol %q not in universe", i, b.Symbol)
		}
	}
	return nil
}

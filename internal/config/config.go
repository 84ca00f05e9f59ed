package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/dfcarvalho/caixa-escolar/internal/ledger"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"caixa-escolar"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Data struct {
		RegistryPath string `envconfig:"REGISTRY_CSV" default:"data/final_dataset.csv"`
		LedgerPath   string `envconfig:"LEDGER_CSV" default:"data/cashflow.csv"`
	}

	Aggregation struct {
		// Mode decides whether forecast exits count as invested.
		Mode string `envconfig:"AGGREGATION_MODE" default:"paid"`
		TopN int    `envconfig:"TOP_SCHOOLS" default:"10"`
	}

	View struct {
		PageSize int `envconfig:"PAGE_SIZE" default:"15"`
	}
}

// Mode returns the parsed aggregation mode. Only valid after Load.
func (c *Config) Mode() ledger.Mode {
	m, _ := ledger.ParseMode(c.Aggregation.Mode)
	return m
}

// Load reads configuration from the environment and rejects invalid values
// before any computation starts.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := ledger.ParseMode(c.Aggregation.Mode); err != nil {
		return err
	}

	if c.View.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.View.PageSize)
	}

	if c.Aggregation.TopN <= 0 {
		return fmt.Errorf("top schools count must be positive, got %d", c.Aggregation.TopN)
	}

	return nil
}

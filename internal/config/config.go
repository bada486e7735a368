package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level biguard.yaml configuration.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Backend  BackendConfig  `yaml:"backend"`
	Sync     SyncConfig     `yaml:"sync"`
}

// ProviderConfig holds the bank-link provider credentials and environment.
type ProviderConfig struct {
	BaseURL     string `yaml:"base_url"`
	ClientID    string `yaml:"client_id"`
	Secret      string `yaml:"secret"`
	Environment string `yaml:"environment"` // "sandbox" or "production"
}

// BackendConfig points at the aggregation backend API.
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SyncConfig controls transaction sync behavior.
type SyncConfig struct {
	PageSize int `yaml:"page_size"`
}

// Load reads a biguard.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default(clientID, secret string) *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL:     "https://sandbox.plaid.com",
			ClientID:    clientID,
			Secret:      secret,
			Environment: "sandbox",
		},
		Backend: BackendConfig{
			BaseURL:        "http://localhost:5000",
			TimeoutSeconds: 30,
		},
		Sync: SyncConfig{
			PageSize: 100,
		},
	}
}

func (c *Config) applyDefaults() {
	if c.Backend.TimeoutSeconds == 0 {
		c.Backend.TimeoutSeconds = 30
	}
	if c.Sync.PageSize == 0 {
		c.Sync.PageSize = 100
	}
	if c.Provider.Environment == "" {
		c.Provider.Environment = "sandbox"
	}
}

func (c *Config) validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	switch c.Provider.Environment {
	case "sandbox", "production":
	default:
		return fmt.Errorf("provider.environment must be sandbox or production, got %q", c.Provider.Environment)
	}
	return nil
}

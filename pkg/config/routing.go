package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zen-systems/tiergate/pkg/router"
)

// RoutingConfig holds the cognitive routing configuration.
type RoutingConfig struct {
	Oracle          OracleConfig        `yaml:"oracle,omitempty"`
	Tiers           map[string][]string `yaml:"tiers,omitempty"`
	DefaultProvider string              `yaml:"default_provider,omitempty"`
	ProbeCandidates bool                `yaml:"probe_candidates,omitempty"`
}

// OracleConfig configures the local classification endpoint. All fields are
// optional; a zero base URL, model, or timeout falls back to the oracle
// package defaults, while a zero cache TTL leaves caching off.
type OracleConfig struct {
	BaseURL    string `yaml:"base_url,omitempty"`
	Model      string `yaml:"model,omitempty"`
	TimeoutMs  int    `yaml:"timeout_ms,omitempty"`
	CacheTTLMs int    `yaml:"cache_ttl_ms,omitempty"`
	Debug      bool   `yaml:"debug,omitempty"`
}

// Timeout returns the oracle request deadline.
func (o OracleConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutMs) * time.Millisecond
}

// CacheTTL returns the classification cache lifetime; zero disables caching.
func (o OracleConfig) CacheTTL() time.Duration {
	return time.Duration(o.CacheTTLMs) * time.Millisecond
}

// LoadRoutingConfig reads routing configuration from a YAML file.
func LoadRoutingConfig(path string) (*RoutingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg RoutingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyRoutingDefaults(&cfg)
	if err := cfg.Table().Validate(); err != nil {
		return nil, fmt.Errorf("invalid tier table: %w", err)
	}
	return &cfg, nil
}

// DefaultRoutingConfig returns the built-in routing configuration.
func DefaultRoutingConfig() *RoutingConfig {
	cfg := &RoutingConfig{}
	applyRoutingDefaults(cfg)
	return cfg
}

// Table converts the configured tier lists into a candidate table. Tiers not
// present in the config keep their defaults.
func (c *RoutingConfig) Table() router.CandidateTable {
	table := router.DefaultTable()
	for name, candidates := range c.Tiers {
		if len(candidates) == 0 {
			continue
		}
		switch name {
		case "reflex":
			table[router.TierReflex] = candidates
		case "standard":
			table[router.TierStandard] = candidates
		case "deep":
			table[router.TierDeep] = candidates
		}
	}
	return table
}

func applyRoutingDefaults(cfg *RoutingConfig) {
	if cfg == nil {
		return
	}
	if cfg.Oracle.TimeoutMs == 0 {
		cfg.Oracle.TimeoutMs = 800
	}
	if cfg.DefaultProvider == "" {
		cfg.DefaultProvider = router.DefaultProvider
	}
	if cfg.Tiers == nil {
		cfg.Tiers = make(map[string][]string)
		for tier, candidates := range router.DefaultTable() {
			cfg.Tiers[tier.String()] = candidates
		}
	}
}

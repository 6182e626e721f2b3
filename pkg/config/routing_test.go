package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zen-systems/tiergate/pkg/router"
)

func TestLoadRoutingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routing.yaml")
	data := []byte(`oracle:
  base_url: http://localhost:9999/v1
  model: tiny-grader
  timeout_ms: 500
tiers:
  reflex:
    - ollama:phi3:mini
  deep:
    - claude-3-opus-20240229
default_provider: openrouter
`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadRoutingConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Oracle.BaseURL != "http://localhost:9999/v1" || cfg.Oracle.Model != "tiny-grader" {
		t.Fatalf("unexpected oracle config: %+v", cfg.Oracle)
	}
	if cfg.Oracle.Timeout() != 500*time.Millisecond {
		t.Fatalf("unexpected timeout: %v", cfg.Oracle.Timeout())
	}
	if cfg.DefaultProvider != "openrouter" {
		t.Fatalf("unexpected default provider: %q", cfg.DefaultProvider)
	}

	table := cfg.Table()
	if table[router.TierReflex][0] != "ollama:phi3:mini" {
		t.Fatalf("reflex override not applied: %v", table[router.TierReflex])
	}
	// Standard not configured: keeps the built-in candidates.
	if len(table[router.TierStandard]) == 0 {
		t.Fatal("expected default standard candidates")
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("table invalid: %v", err)
	}
}

func TestLoadRoutingConfigRejectsEmptyCandidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routing.yaml")
	data := []byte("tiers:\n  standard:\n    - \"\"\n")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadRoutingConfig(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDefaultRoutingConfig(t *testing.T) {
	cfg := DefaultRoutingConfig()
	if cfg.Oracle.TimeoutMs != 800 {
		t.Fatalf("unexpected timeout default: %d", cfg.Oracle.TimeoutMs)
	}
	if cfg.Oracle.CacheTTL() != 0 {
		t.Fatalf("caching should be off by default, got ttl %v", cfg.Oracle.CacheTTL())
	}
	if cfg.DefaultProvider != router.DefaultProvider {
		t.Fatalf("unexpected default provider: %q", cfg.DefaultProvider)
	}
	if err := cfg.Table().Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}
}

func TestCacheTTLOptIn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routing.yaml")

	// Absent and explicit zero both leave the cache off.
	for _, data := range []string{
		"oracle:\n  model: tiny-grader\n",
		"oracle:\n  cache_ttl_ms: 0\n",
	} {
		if err := os.WriteFile(path, []byte(data), 0600); err != nil {
			t.Fatalf("write: %v", err)
		}
		cfg, err := LoadRoutingConfig(path)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg.Oracle.CacheTTL() != 0 {
			t.Fatalf("cache should stay disabled for %q, got ttl %v", data, cfg.Oracle.CacheTTL())
		}
	}

	if err := os.WriteFile(path, []byte("oracle:\n  cache_ttl_ms: 5000\n"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadRoutingConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Oracle.CacheTTL() != 5*time.Second {
		t.Fatalf("unexpected cache ttl: %v", cfg.Oracle.CacheTTL())
	}
}

func TestCatalogValidateRoutingConfig(t *testing.T) {
	catalog := DefaultCatalog()
	if errs := catalog.ValidateRoutingConfig(DefaultRoutingConfig()); len(errs) != 0 {
		t.Fatalf("default config should validate: %v", errs)
	}

	cfg := DefaultRoutingConfig()
	cfg.Tiers["standard"] = []string{"openai:gpt-9000"}
	if errs := catalog.ValidateRoutingConfig(cfg); len(errs) == 0 {
		t.Fatal("expected validation error for unknown openai model")
	}

	// openrouter ids are free-form and skip validation.
	cfg.Tiers["standard"] = []string{"openrouter:some/arbitrary-model"}
	if errs := catalog.ValidateRoutingConfig(cfg); len(errs) != 0 {
		t.Fatalf("openrouter ids should pass: %v", errs)
	}
}

func TestCatalogResolve(t *testing.T) {
	catalog := DefaultCatalog()
	if got := catalog.Resolve("deep"); got != "claude-3-opus-20240229" {
		t.Fatalf("alias not resolved: %q", got)
	}
	if got := catalog.Resolve("gpt-4o"); got != "gpt-4o" {
		t.Fatalf("canonical name changed: %q", got)
	}
}

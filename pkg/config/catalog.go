package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/zen-systems/tiergate/pkg/router"
)

// ModelCatalog manages model alias resolution and per-provider validation.
type ModelCatalog struct {
	Aliases   map[string]string   `yaml:"aliases"`
	Providers map[string][]string `yaml:"providers"`
}

// LoadCatalog reads a model catalog from a YAML file.
func LoadCatalog(path string) (*ModelCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var catalog ModelCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}

	if catalog.Aliases == nil {
		catalog.Aliases = make(map[string]string)
	}
	if catalog.Providers == nil {
		catalog.Providers = make(map[string][]string)
	}

	return &catalog, nil
}

// LoadCatalogWithFallback loads the catalog from the user config dir, falling
// back to the built-in defaults when no file exists.
func LoadCatalogWithFallback() (*ModelCatalog, error) {
	home, err := os.UserHomeDir()
	if err == nil {
		userPath := filepath.Join(home, ".tiergate", "models.yaml")
		if _, err := os.Stat(userPath); err == nil {
			return LoadCatalog(userPath)
		}
	}
	return DefaultCatalog(), nil
}

// Resolve returns the canonical model name for an alias.
// If the input is not an alias, it returns the input unchanged.
func (c *ModelCatalog) Resolve(modelOrAlias string) string {
	if c == nil || c.Aliases == nil {
		return modelOrAlias
	}
	if canonical, ok := c.Aliases[modelOrAlias]; ok {
		return canonical
	}
	return modelOrAlias
}

// ValidateModel checks if a model exists in the provider's list. Providers
// with no list (openrouter and ollama pass through arbitrary ids) are not
// validated.
func (c *ModelCatalog) ValidateModel(provider, model string) error {
	if c == nil || c.Providers == nil {
		return nil
	}

	models, ok := c.Providers[provider]
	if !ok {
		return nil
	}

	for _, m := range models {
		if m == model {
			return nil
		}
	}

	return fmt.Errorf("model %q not in %s provider list", model, provider)
}

// ListProviders returns a sorted list of provider names.
func (c *ModelCatalog) ListProviders() []string {
	if c == nil || c.Providers == nil {
		return nil
	}
	providers := make([]string, 0, len(c.Providers))
	for p := range c.Providers {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	return providers
}

// ProviderModels returns the models for a given provider.
func (c *ModelCatalog) ProviderModels(provider string) []string {
	if c == nil || c.Providers == nil {
		return nil
	}
	return c.Providers[provider]
}

// ValidateRoutingConfig checks every candidate in the routing config's tier
// table against the catalog. Returns a slice of validation errors (empty if
// all valid).
func (c *ModelCatalog) ValidateRoutingConfig(cfg *RoutingConfig) []error {
	if c == nil || cfg == nil {
		return nil
	}

	var errs []error
	table := cfg.Table()
	for _, tier := range router.Tiers() {
		for _, id := range table[tier] {
			provider, model := router.SplitModelID(id, cfg.DefaultProvider)
			model = c.Resolve(model)
			if err := c.ValidateModel(provider, model); err != nil {
				errs = append(errs, fmt.Errorf("tier %s: %w", tier, err))
			}
		}
	}
	return errs
}

// DefaultCatalog returns the built-in model catalog.
func DefaultCatalog() *ModelCatalog {
	return &ModelCatalog{
		Aliases: map[string]string{
			"fast":    "gpt-4o-mini",
			"smart":   "gpt-4o",
			"quality": "claude-3-5-sonnet-20240620",
			"deep":    "claude-3-opus-20240229",
			"reason":  "deepseek-reasoner",
		},
		Providers: map[string][]string{
			"anthropic": {"claude-3-5-sonnet-20240620", "claude-3-opus-20240229"},
			"openai":    {"gpt-4o", "gpt-4o-mini", "o1-preview"},
			"google":    {"gemini-1.5-pro", "gemini-1.5-flash"},
			"deepseek":  {"deepseek-chat", "deepseek-reasoner"},
		},
	}
}

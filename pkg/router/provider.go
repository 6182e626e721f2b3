package router

import "strings"

// DefaultProvider is assumed for bare model names with no recognized prefix.
const DefaultProvider = "openai"

// bare-name prefixes that imply a provider.
var providerPrefixes = []struct {
	prefix   string
	provider string
}{
	{"claude", "anthropic"},
	{"gemini", "google"},
	{"deepseek", "deepseek"},
}

// SplitModelID parses a composite model id into (provider, model). Ids with a
// colon split on the first one; the remainder may itself contain colons (e.g.
// an Ollama tag like "qwen2.5:1.5b"). Bare names infer the provider from a
// small prefix set, defaulting to defaultProvider.
func SplitModelID(id, defaultProvider string) (provider, model string) {
	if defaultProvider == "" {
		defaultProvider = DefaultProvider
	}
	if i := strings.Index(id, ":"); i >= 0 {
		return id[:i], id[i+1:]
	}
	for _, p := range providerPrefixes {
		if strings.HasPrefix(id, p.prefix) {
			return p.provider, id
		}
	}
	return defaultProvider, id
}

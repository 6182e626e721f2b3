package adapter

import (
	"fmt"
	"net/http"
)

const openrouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterAdapter creates a new OpenRouter adapter. OpenRouter fronts
// many upstream vendors behind an OpenAI-compatible API; model ids are
// free-form "vendor/model" strings.
func NewOpenRouterAdapter(apiKey string) (Adapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	return &compatAdapter{
		name:    "openrouter",
		apiKey:  apiKey,
		baseURL: openrouterBaseURL,
		models: []string{
			"groq/llama-3-8b-8192",
			"meta-llama/llama-3-70b-instruct",
		},
		httpClient: &http.Client{},
	}, nil
}

package adapter

import (
	"fmt"
	"net/http"
)

const deepseekBaseURL = "https://api.deepseek.com/v1"

// NewDeepSeekAdapter creates a new DeepSeek adapter.
// DeepSeek uses an OpenAI-compatible API format.
func NewDeepSeekAdapter(apiKey string) (Adapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("deepseek API key is required")
	}

	return &compatAdapter{
		name:    "deepseek",
		apiKey:  apiKey,
		baseURL: deepseekBaseURL,
		models: []string{
			"deepseek-chat",
			"deepseek-reasoner",
		},
		httpClient: &http.Client{},
	}, nil
}

package adapter

import "net/http"

const ollamaBaseURL = "http://127.0.0.1:11434/v1"

// NewOllamaAdapter creates an adapter for a local Ollama server. No API key
// is needed; baseURL overrides the default loopback address when non-empty.
func NewOllamaAdapter(baseURL string) Adapter {
	if baseURL == "" {
		baseURL = ollamaBaseURL
	}

	return &compatAdapter{
		name:    "ollama",
		baseURL: baseURL,
		models: []string{
			"qwen2.5:1.5b",
			"llama3.2:1b",
		},
		httpClient: &http.Client{},
	}
}

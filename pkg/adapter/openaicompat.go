package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/zen-systems/tiergate/pkg/artifact"
)

// compatAdapter is a generic client for OpenAI-compatible chat-completion
// APIs. DeepSeek, OpenRouter, and local Ollama servers all speak this shape.
type compatAdapter struct {
	name       string
	apiKey     string
	baseURL    string
	models     []string
	httpClient *http.Client
}

type compatRequest struct {
	Model       string          `json:"model"`
	Messages    []compatMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
}

type compatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type compatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// Name returns the adapter identifier.
func (a *compatAdapter) Name() string {
	return a.name
}

// Models returns the list of supported models.
func (a *compatAdapter) Models() []string {
	return a.models
}

// Generate sends a prompt to the endpoint and returns the response.
func (a *compatAdapter) Generate(ctx context.Context, model string, prompt string) (*Response, error) {
	reqBody := compatRequest{
		Model: model,
		Messages: []compatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: 4096,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s API request failed: %w", a.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var compatResp compatResponse
	if err := json.Unmarshal(body, &compatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if compatResp.Error != nil {
		return nil, &AdapterError{
			Status: resp.StatusCode,
			Err: fmt.Errorf("%s API error: %s (type: %s, code: %s)",
				a.name, compatResp.Error.Message, compatResp.Error.Type, compatResp.Error.Code),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &AdapterError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s API returned status %d: %s", a.name, resp.StatusCode, string(body)),
		}
	}

	if len(compatResp.Choices) == 0 {
		return nil, fmt.Errorf("%s returned no choices", a.name)
	}

	art := artifact.New(compatResp.Choices[0].Message.Content, a.name, model, prompt)
	usage := &Usage{
		PromptTokens:     compatResp.Usage.PromptTokens,
		CompletionTokens: compatResp.Usage.CompletionTokens,
		TotalTokens:      compatResp.Usage.TotalTokens,
	}
	return &Response{Artifact: art, Usage: usage}, nil
}

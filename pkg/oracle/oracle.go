package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/zen-systems/tiergate/pkg/judgment"
)

const (
	// DefaultBaseURL points at a local Ollama-style OpenAI-compatible server.
	DefaultBaseURL = "http://127.0.0.1:11434/v1"
	// DefaultModel is the small local model used for grading.
	DefaultModel = "qwen2.5:1.5b"
	// DefaultTimeout bounds one classification round trip.
	DefaultTimeout = 800 * time.Millisecond

	classifyTemperature = 0.1
)

// Classifier grades a prompt. A nil result means "no opinion": the model was
// unreachable, too slow, or returned something that failed validation.
type Classifier interface {
	Classify(ctx context.Context, prompt string) *judgment.Judgment
}

// Oracle asks a small local model to grade prompt difficulty over an
// OpenAI-compatible chat-completions endpoint. Classification is an
// optimization, not a correctness requirement, so every failure converges to
// nil rather than an error.
type Oracle struct {
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	debug      bool
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithBaseURL overrides the inference endpoint base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *Oracle) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithModel overrides the classifier model id.
func WithModel(model string) Option {
	return func(o *Oracle) {
		if model != "" {
			o.model = model
		}
	}
}

// WithTimeout overrides the per-request deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Oracle) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithDebug enables failure logging.
func WithDebug(debug bool) Option {
	return func(o *Oracle) {
		o.debug = debug
	}
}

// New creates an Oracle. All options have defaults; New never fails.
func New(opts ...Option) *Oracle {
	o := &Oracle{
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// chat-completions wire shapes, same layout the provider adapters speak.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Classify grades a prompt. It never returns an error: transport failures,
// timeouts, non-2xx statuses, and malformed or schema-invalid replies all
// yield nil so the caller routes on the fail-open default.
func (o *Oracle) Classify(ctx context.Context, prompt string) *judgment.Judgment {
	j, err := o.classify(ctx, prompt)
	if err != nil {
		if o.debug {
			log.Printf("[oracle] classification unavailable: %v", err)
		}
		return nil
	}
	return j
}

func (o *Oracle) classify(ctx context.Context, prompt string) (*judgment.Judgment, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	reqBody := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: classifyRubric},
			{Role: "user", Content: prompt},
		},
		Temperature:    classifyTemperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("oracle returned no choices")
	}

	return judgment.Parse(chatResp.Choices[0].Message.Content)
}

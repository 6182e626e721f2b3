package adapter

import (
	"context"
	"fmt"

	"github.com/zen-systems/tiergate/pkg/artifact"
)

const stubModel = "stub-standard"

// MockAdapter answers prompts with canned text. It stands in for a real
// provider in tests and offline runs of the gateway.
type MockAdapter struct {
	responses       map[string]string
	defaultResponse string
	Usage           *Usage
}

// NewMockAdapter creates a mock adapter that echoes prompts back.
func NewMockAdapter() *MockAdapter {
	return NewMockAdapterWithResponses(make(map[string]string), "")
}

// NewMockAdapterWithResponses creates a mock adapter with per-prompt canned
// answers. Prompts without an entry get defaultResponse plus the prompt.
func NewMockAdapterWithResponses(responses map[string]string, defaultResponse string) *MockAdapter {
	if defaultResponse == "" {
		defaultResponse = "canned reply for:"
	}
	return &MockAdapter{responses: responses, defaultResponse: defaultResponse}
}

// Name returns the adapter identifier.
func (a *MockAdapter) Name() string {
	return "mock"
}

// Models returns one stub model per routing tier.
func (a *MockAdapter) Models() []string {
	return []string{"stub-reflex", stubModel, "stub-deep"}
}

// Generate returns a deterministic artifact for the prompt.
func (a *MockAdapter) Generate(_ context.Context, model string, prompt string) (*Response, error) {
	if model == "" {
		model = stubModel
	}
	content, ok := a.responses[prompt]
	if !ok {
		content = fmt.Sprintf("%s %s", a.defaultResponse, prompt)
	}
	art := artifact.New(content, a.Name(), model, prompt)
	return &Response{Artifact: art, Usage: a.Usage}, nil
}

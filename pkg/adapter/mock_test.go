package adapter

import (
	"context"
	"testing"
)

func TestMockAdapterCannedAndFallback(t *testing.T) {
	a := NewMockAdapterWithResponses(map[string]string{"ping": "pong"}, "")

	resp, err := a.Generate(context.Background(), "", "ping")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Artifact.Content != "pong" {
		t.Fatalf("canned response not used: %q", resp.Artifact.Content)
	}
	if resp.Artifact.Model != stubModel {
		t.Fatalf("empty model should default to %q, got %q", stubModel, resp.Artifact.Model)
	}

	resp, err = a.Generate(context.Background(), "stub-deep", "unmapped prompt")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Artifact.Content != "canned reply for: unmapped prompt" {
		t.Fatalf("unexpected fallback: %q", resp.Artifact.Content)
	}
	if resp.Artifact.Model != "stub-deep" {
		t.Fatalf("model not preserved: %q", resp.Artifact.Model)
	}
}

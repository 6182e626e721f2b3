package router

import (
	"context"
	"testing"
	"time"

	"github.com/zen-systems/tiergate/pkg/judgment"
	"github.com/zen-systems/tiergate/pkg/oracle"
)

type stubClassifier struct {
	result *judgment.Judgment
}

func (s *stubClassifier) Classify(_ context.Context, _ string) *judgment.Judgment {
	return s.result
}

var _ oracle.Classifier = (*stubClassifier)(nil)

func TestRouteClassifiedReflex(t *testing.T) {
	classifier := &stubClassifier{result: &judgment.Judgment{
		Complexity:        2,
		ReasoningRequired: false,
		Domain:            judgment.DomainConversation,
		SuggestedTier:     judgment.HintReflex,
	}}
	r := New(classifier, NewResolver(nil))

	res := r.Route(context.Background(), "Hello, how are you?")
	if res.Tier != TierReflex {
		t.Fatalf("expected reflex tier, got %s", res.Tier)
	}
	if res.Judgment == nil {
		t.Fatal("expected non-nil judgment")
	}
	resolver := NewResolver(nil)
	found := false
	for _, c := range resolver.Candidates(TierReflex) {
		if c == res.ModelID {
			found = true
		}
	}
	if !found {
		t.Fatalf("model id %q not in reflex candidates", res.ModelID)
	}
	if res.Provider == "" || res.Model == "" {
		t.Fatalf("incomplete result: %+v", res)
	}
}

func TestRouteFailOpen(t *testing.T) {
	r := New(&stubClassifier{result: nil}, NewResolver(nil))

	res := r.Route(context.Background(), "anything at all")
	if res.Tier != TierStandard {
		t.Fatalf("expected standard tier on fail-open, got %s", res.Tier)
	}
	if res.Judgment != nil {
		t.Fatalf("expected nil judgment, got %+v", res.Judgment)
	}
	if res.Provider != "openai" || res.Model != "gpt-4o" {
		t.Fatalf("unexpected fail-open route: %+v", res)
	}
}

func TestRouteUnreachableOracleEndToEnd(t *testing.T) {
	o := oracle.New(
		oracle.WithBaseURL("http://127.0.0.1:1/v1"),
		oracle.WithTimeout(200*time.Millisecond),
	)
	r := New(o, NewResolver(nil))

	start := time.Now()
	res := r.Route(context.Background(), "write me a sorting function")
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("route took too long: %v", elapsed)
	}
	if res.Tier != TierStandard || res.Judgment != nil {
		t.Fatalf("expected fail-open standard route, got %+v", res)
	}
}

func TestRouteProviderParsing(t *testing.T) {
	classifier := &stubClassifier{result: &judgment.Judgment{
		Complexity:    3,
		Domain:        judgment.DomainConversation,
		SuggestedTier: judgment.HintReflex,
	}}
	table := CandidateTable{
		TierReflex:   {"openrouter:groq/llama-3-8b-8192"},
		TierStandard: {"gpt-4o"},
		TierDeep:     {"claude-3-opus-20240229"},
	}
	r := New(classifier, NewResolver(table))

	res := r.Route(context.Background(), "hi")
	if res.Provider != "openrouter" || res.Model != "groq/llama-3-8b-8192" {
		t.Fatalf("unexpected split: %+v", res)
	}
}

func TestRouteConcurrentCalls(t *testing.T) {
	r := New(&stubClassifier{result: nil}, NewResolver(nil))
	done := make(chan Result, 16)
	for i := 0; i < 16; i++ {
		go func() {
			done <- r.Route(context.Background(), "concurrent prompt")
		}()
	}
	for i := 0; i < 16; i++ {
		res := <-done
		if res.Tier != TierStandard {
			t.Fatalf("unexpected tier: %s", res.Tier)
		}
	}
}

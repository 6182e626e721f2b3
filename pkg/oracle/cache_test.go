package oracle

import (
	"context"
	"testing"
	"time"

	"github.com/zen-systems/tiergate/pkg/judgment"
)

type countingClassifier struct {
	calls  int
	result *judgment.Judgment
}

func (c *countingClassifier) Classify(_ context.Context, _ string) *judgment.Judgment {
	c.calls++
	return c.result
}

func TestCachedClassifierHit(t *testing.T) {
	inner := &countingClassifier{result: &judgment.Judgment{
		Complexity:    3,
		Domain:        judgment.DomainConversation,
		SuggestedTier: judgment.HintReflex,
	}}
	cached, err := NewCachedClassifier(inner, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer cached.Close()

	first := cached.Classify(context.Background(), "hello")
	if first == nil {
		t.Fatal("expected judgment")
	}
	second := cached.Classify(context.Background(), "hello")
	if second != first {
		t.Fatal("expected cached judgment on repeat prompt")
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", inner.calls)
	}
}

func TestCachedClassifierDoesNotCacheNil(t *testing.T) {
	inner := &countingClassifier{result: nil}
	cached, err := NewCachedClassifier(inner, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer cached.Close()

	if j := cached.Classify(context.Background(), "hello"); j != nil {
		t.Fatalf("expected nil, got %+v", j)
	}
	if j := cached.Classify(context.Background(), "hello"); j != nil {
		t.Fatalf("expected nil, got %+v", j)
	}
	if inner.calls != 2 {
		t.Fatalf("expected failures to bypass cache, got %d calls", inner.calls)
	}
}

func TestCachedClassifierDistinctPrompts(t *testing.T) {
	inner := &countingClassifier{result: &judgment.Judgment{
		Complexity:    5,
		Domain:        judgment.DomainCoding,
		SuggestedTier: judgment.HintStandard,
	}}
	cached, err := NewCachedClassifier(inner, time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	defer cached.Close()

	cached.Classify(context.Background(), "prompt one")
	cached.Classify(context.Background(), "prompt two")
	if inner.calls != 2 {
		t.Fatalf("expected 2 inner calls, got %d", inner.calls)
	}
}

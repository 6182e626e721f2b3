package router

import (
	"context"
	"testing"
)

func TestProbedResolverFirstLiveCandidate(t *testing.T) {
	table := CandidateTable{
		TierReflex:   {"ollama:tiny", "openrouter:fallback", "gpt-4o-mini"},
		TierStandard: {"gpt-4o"},
		TierDeep:     {"claude-3-opus-20240229"},
	}
	probe := func(_ context.Context, id string) bool {
		return id == "openrouter:fallback"
	}
	p := NewProbedResolver(NewResolver(table), probe)

	if got := p.ResolveModel(context.Background(), TierReflex); got != "openrouter:fallback" {
		t.Fatalf("expected first live candidate, got %q", got)
	}
}

func TestProbedResolverFallsBackWhenNothingLive(t *testing.T) {
	probe := func(_ context.Context, _ string) bool { return false }
	p := NewProbedResolver(NewResolver(nil), probe)

	inner := NewResolver(nil)
	want := inner.ResolveModel(context.Background(), TierDeep)
	if got := p.ResolveModel(context.Background(), TierDeep); got != want {
		t.Fatalf("expected fallback to first candidate %q, got %q", want, got)
	}
}

func TestProbedResolverNilProbePassThrough(t *testing.T) {
	p := NewProbedResolver(NewResolver(nil), nil)
	inner := NewResolver(nil)
	for _, tier := range Tiers() {
		want := inner.ResolveModel(context.Background(), tier)
		if got := p.ResolveModel(context.Background(), tier); got != want {
			t.Fatalf("tier %s: expected %q, got %q", tier, want, got)
		}
	}
}

func TestProbedResolverDelegatesDecideTier(t *testing.T) {
	p := NewProbedResolver(NewResolver(nil), nil)
	if tier := p.DecideTier(nil); tier != TierStandard {
		t.Fatalf("expected standard, got %s", tier)
	}
}

package router

import (
	"context"

	"github.com/zen-systems/tiergate/pkg/judgment"
)

// AvailabilityFunc reports whether a model id is currently usable. It should
// be fast; the prober calls it once per candidate in priority order.
type AvailabilityFunc func(ctx context.Context, modelID string) bool

// ProbedResolver decorates a Resolver with an availability check: instead of
// committing to the first candidate, it walks the tier's list in priority
// order and returns the first candidate that probes live. When nothing probes
// live it falls back to the first candidate, preserving the never-fails
// contract of the inner resolver.
type ProbedResolver struct {
	inner *Resolver
	probe AvailabilityFunc
}

// NewProbedResolver wraps inner with an availability probe. A nil probe
// makes the decorator a pass-through.
func NewProbedResolver(inner *Resolver, probe AvailabilityFunc) *ProbedResolver {
	return &ProbedResolver{inner: inner, probe: probe}
}

// DecideTier delegates to the inner resolver.
func (p *ProbedResolver) DecideTier(j *judgment.Judgment) Tier {
	return p.inner.DecideTier(j)
}

// ResolveModel returns the first live candidate for the tier, or the first
// candidate outright when the probe finds nothing.
func (p *ProbedResolver) ResolveModel(ctx context.Context, tier Tier) string {
	candidates := p.inner.Candidates(tier)
	if p.probe == nil {
		return candidates[0]
	}
	for _, id := range candidates {
		if p.probe(ctx, id) {
			return id
		}
	}
	return candidates[0]
}

package router

import (
	"context"
	"fmt"

	"github.com/zen-systems/tiergate/pkg/judgment"
)

// CandidateTable maps each tier to its priority-ordered model candidates.
// First entry wins; the ordering encodes cost and availability preference
// (free/local models before paid APIs within a tier). Configuration data,
// immutable after construction.
type CandidateTable map[Tier][]string

// Validate checks that every tier has at least one candidate.
func (ct CandidateTable) Validate() error {
	for _, tier := range Tiers() {
		if len(ct[tier]) == 0 {
			return fmt.Errorf("tier %s has no model candidates", tier)
		}
		for i, id := range ct[tier] {
			if id == "" {
				return fmt.Errorf("tier %s candidate %d is empty", tier, i)
			}
		}
	}
	return nil
}

// DefaultTable returns the built-in candidate table.
func DefaultTable() CandidateTable {
	return CandidateTable{
		TierReflex: {
			"ollama:qwen2.5:1.5b",
			"openrouter:groq/llama-3-8b-8192",
			"gpt-4o-mini",
		},
		TierStandard: {
			"gpt-4o",
			"claude-3-5-sonnet-20240620",
			"gemini-1.5-pro",
		},
		TierDeep: {
			"claude-3-opus-20240229",
			"openai:o1-preview",
			"deepseek:deepseek-reasoner",
		},
	}
}

// Resolver turns a judgment (or its absence) into a tier and a tier into a
// concrete model id. Both decisions are total: there is no error to report.
type Resolver struct {
	table CandidateTable
}

// NewResolver creates a resolver over the given candidate table. Tiers left
// empty fall back to the default table so ResolveModel stays total.
func NewResolver(table CandidateTable) *Resolver {
	merged := DefaultTable()
	for tier, candidates := range table {
		if len(candidates) > 0 {
			merged[tier] = candidates
		}
	}
	return &Resolver{table: merged}
}

// DecideTier maps a judgment to a tier. A nil judgment means classification
// was unavailable and routes to TierStandard, the fail-open middle ground.
// An unrecognized hint is treated the same as an explicit "standard".
func (r *Resolver) DecideTier(j *judgment.Judgment) Tier {
	if j == nil {
		return TierStandard
	}
	switch j.SuggestedTier {
	case judgment.HintReflex:
		return TierReflex
	case judgment.HintDeep:
		return TierDeep
	default:
		return TierStandard
	}
}

// ResolveModel returns the tier's most preferred candidate. Deterministic:
// repeated calls return the same id absent table changes. The context is
// unused here; it exists so availability-probing resolvers can share the
// signature.
func (r *Resolver) ResolveModel(_ context.Context, tier Tier) string {
	return r.table[tier][0]
}

// Candidates returns the tier's candidate list in priority order.
func (r *Resolver) Candidates(tier Tier) []string {
	out := make([]string, len(r.table[tier]))
	copy(out, r.table[tier])
	return out
}

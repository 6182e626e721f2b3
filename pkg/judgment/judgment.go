package judgment

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Domain is the closed set of prompt domains the oracle may report.
type Domain string

const (
	DomainCoding       Domain = "coding"
	DomainCreative     Domain = "creative"
	DomainLogic        Domain = "logic"
	DomainConversation Domain = "conversation"
	DomainKnowledge    Domain = "knowledge"
)

// Tier hint literals the oracle may suggest.
const (
	HintReflex   = "reflex"
	HintStandard = "standard"
	HintDeep     = "deep"
)

// Judgment is the oracle's verdict on one prompt. It is constructed fresh per
// request, never persisted, and immutable once produced.
type Judgment struct {
	Complexity        int    `json:"complexity"`
	ReasoningRequired bool   `json:"reasoning_required"`
	Domain            Domain `json:"domain"`
	SuggestedTier     string `json:"suggested_tier"`
}

// Validate checks the judgment against the contract: complexity in [1,10],
// domain and suggested_tier drawn from their closed enumerations. Anything
// outside is a validation failure, not a silent default.
func (j *Judgment) Validate() error {
	if j.Complexity < 1 || j.Complexity > 10 {
		return fmt.Errorf("complexity %d out of range [1,10]", j.Complexity)
	}
	switch j.Domain {
	case DomainCoding, DomainCreative, DomainLogic, DomainConversation, DomainKnowledge:
	default:
		return fmt.Errorf("unknown domain %q", j.Domain)
	}
	switch j.SuggestedTier {
	case HintReflex, HintStandard, HintDeep:
	default:
		return fmt.Errorf("unknown suggested_tier %q", j.SuggestedTier)
	}
	return nil
}

// Parse decodes a model response body into a validated Judgment. Small local
// models wrap JSON in markdown fences often enough that we strip them first.
// No partial recovery: invalid JSON or a schema violation is an error.
func Parse(content string) (*Judgment, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Distinguish an absent suggested_tier from an invalid one up front.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("invalid judgment JSON: %w", err)
	}
	if _, ok := raw["suggested_tier"]; !ok {
		return nil, fmt.Errorf("missing suggested_tier")
	}

	var j Judgment
	if err := json.Unmarshal([]byte(content), &j); err != nil {
		return nil, fmt.Errorf("invalid judgment JSON: %w", err)
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return &j, nil
}

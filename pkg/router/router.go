package router

import (
	"context"

	"github.com/zen-systems/tiergate/pkg/judgment"
	"github.com/zen-systems/tiergate/pkg/oracle"
)

// Result is the output of one routing call. Judgment is nil exactly when
// classification failed or timed out and the fail-open path was taken.
type Result struct {
	Provider string             `json:"provider"`
	Model    string             `json:"model"`
	ModelID  string             `json:"model_id"`
	Tier     Tier               `json:"tier"`
	Judgment *judgment.Judgment `json:"judgment"`
}

// ModelResolver resolves a tier to a concrete model id. *Resolver and
// *ProbedResolver both satisfy it.
type ModelResolver interface {
	DecideTier(j *judgment.Judgment) Tier
	ResolveModel(ctx context.Context, tier Tier) string
}

// CognitiveRouter orchestrates classification and tier resolution for one
// prompt at a time. Both sub-components are read-only after construction, so
// concurrent Route calls share no mutable state. Construct once at process
// start and pass the reference around.
type CognitiveRouter struct {
	classifier      oracle.Classifier
	resolver        ModelResolver
	defaultProvider string
}

// RouterOption configures a CognitiveRouter.
type RouterOption func(*CognitiveRouter)

// WithDefaultProvider overrides the provider assumed for unprefixed bare
// model names.
func WithDefaultProvider(provider string) RouterOption {
	return func(r *CognitiveRouter) {
		if provider != "" {
			r.defaultProvider = provider
		}
	}
}

// New creates a CognitiveRouter from its two sub-components.
func New(classifier oracle.Classifier, resolver ModelResolver, opts ...RouterOption) *CognitiveRouter {
	r := &CognitiveRouter{
		classifier:      classifier,
		resolver:        resolver,
		defaultProvider: DefaultProvider,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route classifies the prompt, decides a tier, resolves a model id, and
// parses it into a (provider, model) pair. It never fails: a classification
// failure surfaces only as a nil Judgment and a STANDARD-tier route.
func (r *CognitiveRouter) Route(ctx context.Context, prompt string) Result {
	j := r.classifier.Classify(ctx, prompt)
	tier := r.resolver.DecideTier(j)
	modelID := r.resolver.ResolveModel(ctx, tier)
	provider, model := SplitModelID(modelID, r.defaultProvider)

	return Result{
		Provider: provider,
		Model:    model,
		ModelID:  modelID,
		Tier:     tier,
		Judgment: j,
	}
}

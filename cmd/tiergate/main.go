package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zen-systems/tiergate/pkg/adapter"
	"github.com/zen-systems/tiergate/pkg/config"
	"github.com/zen-systems/tiergate/pkg/httpapi"
	"github.com/zen-systems/tiergate/pkg/journal"
	"github.com/zen-systems/tiergate/pkg/oracle"
	"github.com/zen-systems/tiergate/pkg/router"
)

var (
	configFile string
	debugFlag  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tiergate",
		Short: "Cognitive routing gateway for LLM prompts",
		Long: `Tiergate routes chat prompts to one of three model tiers. A small local
	model grades each prompt's complexity; the grade picks a tier and the
	tier resolves to a concrete provider and model from a priority-ordered
	candidate table. When the grader is unavailable, routing fails open to
	the standard tier.`,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to routing config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	rootCmd.AddCommand(routeCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(tiersCmd())
	rootCmd.AddCommand(modelsCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func routeCmd() *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "route [prompt]",
		Short: "Print the routing decision for a prompt without dispatching it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			r := buildRouter(cfg)
			result := r.Route(cmd.Context(), args[0])

			if jsonFlag {
				out, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "tier:\t%s\n", result.Tier)
			fmt.Fprintf(w, "provider:\t%s\n", result.Provider)
			fmt.Fprintf(w, "model:\t%s\n", result.Model)
			if result.Judgment != nil {
				fmt.Fprintf(w, "complexity:\t%d\n", result.Judgment.Complexity)
				fmt.Fprintf(w, "domain:\t%s\n", result.Judgment.Domain)
				fmt.Fprintf(w, "reasoning:\t%v\n", result.Judgment.ReasoningRequired)
			} else {
				fmt.Fprintf(w, "judgment:\t(unavailable, fail-open)\n")
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "print the decision as JSON")
	return cmd
}

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Route a prompt and send it to the chosen provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			adapters := createAdapters(cfg)
			r := buildRouter(cfg)

			start := time.Now()
			result := r.Route(cmd.Context(), prompt)

			a, ok := adapters[result.Provider]
			if !ok {
				return fmt.Errorf("provider %q not configured (missing API key?)", result.Provider)
			}

			resp, err := adapter.Dispatch(cmd.Context(), a, result.Model, prompt)
			if err != nil {
				return fmt.Errorf("dispatch failed: %w", err)
			}
			art := resp.Artifact.WithTier(result.Tier.String())

			if debugFlag {
				fmt.Fprintf(os.Stderr, "[tiergate] tier=%s provider=%s model=%s classified=%v artifact=%s\n",
					result.Tier, result.Provider, result.Model, result.Judgment != nil, art.ID)
			}
			fmt.Println(art.Content)

			recordDecision(cfg.JournalDir(), prompt, result, time.Since(start))
			return nil
		},
	}
	return cmd
}

func tiersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Print the tier candidate table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			table := cfg.RoutingConfig.Table()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIER\tPRIORITY\tMODEL ID\tPROVIDER")
			for _, tier := range router.Tiers() {
				for i, id := range table[tier] {
					provider, _ := router.SplitModelID(id, cfg.RoutingConfig.DefaultProvider)
					fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", tier, i+1, id, provider)
				}
			}
			return w.Flush()
		},
	}
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List known models per provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := config.LoadCatalogWithFallback()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tMODEL")
			for _, provider := range catalog.ListProviders() {
				for _, model := range catalog.ProviderModels(provider) {
					fmt.Fprintf(w, "%s\t%s\n", provider, model)
				}
			}
			return w.Flush()
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the routing config against the model catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := cfg.RoutingConfig.Table().Validate(); err != nil {
				return fmt.Errorf("tier table invalid: %w", err)
			}

			catalog, err := config.LoadCatalogWithFallback()
			if err != nil {
				return err
			}
			if errs := catalog.ValidateRoutingConfig(cfg.RoutingConfig); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(os.Stderr, "invalid: %v\n", e)
				}
				return fmt.Errorf("%d validation error(s)", len(errs))
			}

			fmt.Println("routing config valid")
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent routing decisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			j, err := journal.New(cfg.JournalDir())
			if err != nil {
				return err
			}
			entries, err := j.Tail(n)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tTIER\tPROVIDER\tMODEL\tCLASSIFIED")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n",
					e.Time.Format("2006-01-02 15:04:05"), e.Tier, e.Provider, e.Model, e.Classified)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&n, "count", "n", 20, "number of entries to show")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the routing HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := slog.New(slog.NewTextHandler(os.Stderr, nil))

			opts := []httpapi.ServerOption{
				httpapi.WithAdapters(createAdapters(cfg)),
				httpapi.WithLogger(log),
			}
			if j, err := journal.New(cfg.JournalDir()); err == nil {
				opts = append(opts, httpapi.WithJournal(j))
			} else {
				log.Warn("journal disabled", "error", err)
			}

			server := httpapi.NewServer(buildRouter(cfg), cfg.RoutingConfig.Table(), opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("listening", "addr", addr)
			return server.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8800", "listen address")
	return cmd
}

// recordDecision appends one journal entry for a completed ask. Journal
// failures never fail the command.
func recordDecision(dir, prompt string, result router.Result, latency time.Duration) {
	j, err := journal.New(dir)
	if err != nil {
		return
	}
	_ = j.Append(journal.Entry{
		PromptHash: journal.HashPrompt(prompt),
		Tier:       result.Tier.String(),
		Provider:   result.Provider,
		Model:      result.Model,
		Classified: result.Judgment != nil,
		LatencyMs:  latency.Milliseconds(),
	})
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadWithRoutingFile(configFile)
	}
	return config.Load()
}

// buildRouter wires the classifier and resolver once per invocation.
func buildRouter(cfg *config.Config) *router.CognitiveRouter {
	rc := cfg.RoutingConfig

	var classifier oracle.Classifier = oracle.New(
		oracle.WithBaseURL(rc.Oracle.BaseURL),
		oracle.WithModel(rc.Oracle.Model),
		oracle.WithTimeout(rc.Oracle.Timeout()),
		oracle.WithDebug(debugFlag || rc.Oracle.Debug),
	)
	if ttl := rc.Oracle.CacheTTL(); ttl > 0 {
		if cached, err := oracle.NewCachedClassifier(classifier, ttl); err == nil {
			classifier = cached
		}
	}

	resolver := router.NewResolver(rc.Table())
	var modelResolver router.ModelResolver = resolver
	if rc.ProbeCandidates {
		modelResolver = router.NewProbedResolver(resolver, keyProbe(cfg, rc.DefaultProvider))
	}

	return router.New(classifier, modelResolver,
		router.WithDefaultProvider(rc.DefaultProvider))
}

// keyProbe treats a candidate as available when its provider has credentials
// configured. Candidates whose provider has no API key are skipped in favor
// of the next one in the tier.
func keyProbe(cfg *config.Config, defaultProvider string) router.AvailabilityFunc {
	return func(_ context.Context, modelID string) bool {
		provider, _ := router.SplitModelID(modelID, defaultProvider)
		return cfg.HasProvider(provider)
	}
}

func createAdapters(cfg *config.Config) map[string]adapter.Adapter {
	adapters := make(map[string]adapter.Adapter)

	if a, err := adapter.NewAnthropicAdapter(cfg.AnthropicAPIKey); err == nil {
		adapters["anthropic"] = a
	}
	if a, err := adapter.NewOpenAIAdapter(cfg.OpenAIAPIKey); err == nil {
		adapters["openai"] = a
	}
	if a, err := adapter.NewGoogleAdapter(cfg.GoogleAPIKey); err == nil {
		adapters["google"] = a
	}
	if a, err := adapter.NewDeepSeekAdapter(cfg.DeepSeekAPIKey); err == nil {
		adapters["deepseek"] = a
	}
	if a, err := adapter.NewOpenRouterAdapter(cfg.OpenRouterAPIKey); err == nil {
		adapters["openrouter"] = a
	}
	adapters["ollama"] = adapter.NewOllamaAdapter("")

	return adapters
}

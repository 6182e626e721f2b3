package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/zen-systems/tiergate/pkg/adapter"
	"github.com/zen-systems/tiergate/pkg/artifact"
	"github.com/zen-systems/tiergate/pkg/journal"
	"github.com/zen-systems/tiergate/pkg/router"
)

const maxBodyBytes = 1 << 20

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type askResponse struct {
	Content  string             `json:"content"`
	Routing  router.Result      `json:"routing"`
	Artifact *artifact.Artifact `json:"artifact"`
	Usage    *adapter.Usage     `json:"usage,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	req, ok := readPrompt(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result := s.router.Route(r.Context(), req.Prompt)
	s.record(req.Prompt, result, time.Since(start))

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	req, ok := readPrompt(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result := s.router.Route(r.Context(), req.Prompt)
	s.record(req.Prompt, result, time.Since(start))

	a, ok := s.adapters[result.Provider]
	if !ok {
		writeError(w, http.StatusBadGateway, "provider "+result.Provider+" not configured")
		return
	}

	resp, err := adapter.Dispatch(r.Context(), a, result.Model, req.Prompt)
	if err != nil {
		s.log.Error("dispatch failed", "provider", result.Provider, "model", result.Model, "error", err)
		writeError(w, http.StatusBadGateway, "dispatch failed: "+err.Error())
		return
	}

	art := resp.Artifact.WithTier(result.Tier.String())
	writeJSON(w, http.StatusOK, askResponse{
		Content:  art.Content,
		Routing:  result,
		Artifact: art,
		Usage:    resp.Usage,
	})
}

func (s *Server) handleTiers(w http.ResponseWriter, _ *http.Request) {
	tiers := make(map[string][]string, len(s.table))
	for _, tier := range router.Tiers() {
		tiers[tier.String()] = s.table[tier]
	}
	writeJSON(w, http.StatusOK, tiers)
}

func (s *Server) record(prompt string, result router.Result, latency time.Duration) {
	if s.journal == nil {
		return
	}
	err := s.journal.Append(journal.Entry{
		PromptHash: journal.HashPrompt(prompt),
		Tier:       result.Tier.String(),
		Provider:   result.Provider,
		Model:      result.Model,
		Classified: result.Judgment != nil,
		LatencyMs:  latency.Milliseconds(),
	})
	if err != nil {
		s.log.Error("failed to append journal entry", "error", err)
	}
}

func readPrompt(w http.ResponseWriter, r *http.Request) (promptRequest, bool) {
	var req promptRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

package journal

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is one recorded routing decision. The prompt itself is never stored,
// only its hash.
type Entry struct {
	Time       time.Time `json:"time"`
	PromptHash string    `json:"prompt_hash"`
	Tier       string    `json:"tier"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	Classified bool      `json:"classified"`
	LatencyMs  int64     `json:"latency_ms"`
}

// Journal is an append-only JSONL log of routing decisions.
type Journal struct {
	path string
	mu   sync.Mutex
}

// New creates a journal under basePath, defaulting to ~/.tiergate/journal.
func New(basePath string) (*Journal, error) {
	if basePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		basePath = filepath.Join(home, ".tiergate", "journal")
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}

	return &Journal{path: filepath.Join(basePath, "decisions.jsonl")}, nil
}

// Append records one routing decision.
func (j *Journal) Append(e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

// Tail returns the most recent n entries, oldest first. Lines that fail to
// parse are skipped.
func (j *Journal) Tail(n int) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// HashPrompt returns the stable hash used for the prompt_hash field.
func HashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])[:16]
}

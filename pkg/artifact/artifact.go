package artifact

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// Artifact represents an immutable output from one dispatched prompt.
type Artifact struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Provider  string            `json:"provider"`
	Model     string            `json:"model"`
	Prompt    string            `json:"prompt"`
	Tier      string            `json:"tier,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	Hash      string            `json:"hash"`
}

// New creates a new Artifact with computed hash.
func New(content, provider, model, prompt string) *Artifact {
	a := &Artifact{
		ID:        generateID(),
		Content:   content,
		Provider:  provider,
		Model:     model,
		Prompt:    prompt,
		Metadata:  make(map[string]string),
		CreatedAt: time.Now().UTC(),
	}
	a.Hash = a.computeHash()
	return a
}

// WithTier returns a copy of the artifact tagged with the routing tier that
// produced it.
func (a *Artifact) WithTier(tier string) *Artifact {
	out := *a
	out.Tier = tier
	out.Metadata = copyMetadata(a.Metadata)
	return &out
}

func (a *Artifact) computeHash() string {
	h := sha256.New()
	h.Write([]byte(a.Content))
	h.Write([]byte(a.Provider))
	h.Write([]byte(a.Model))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func generateID() string {
	h := sha256.New()
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(time.Now().UnixNano()))
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil))[:12]
}

func copyMetadata(m map[string]string) map[string]string {
	newM := make(map[string]string, len(m))
	for k, v := range m {
		newM[k] = v
	}
	return newM
}

package adapter

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/zen-systems/tiergate/pkg/artifact"
)

type flakyAdapter struct {
	failures int
	calls    int
	err      error
}

func (a *flakyAdapter) Generate(_ context.Context, model string, prompt string) (*Response, error) {
	a.calls++
	if a.calls <= a.failures {
		return nil, a.err
	}
	return &Response{Artifact: artifact.New("ok", "flaky", model, prompt)}, nil
}

func (a *flakyAdapter) Name() string { return "flaky" }

func (a *flakyAdapter) Models() []string { return []string{"mock-1"} }

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline", context.DeadlineExceeded, true},
		{"canceled", context.Canceled, false},
		{"rate limited", &AdapterError{Status: 429}, true},
		{"server error", &AdapterError{Status: 503}, true},
		{"bad request", &AdapterError{Status: 400}, false},
		{"temporary", &AdapterError{Status: 400, Temporary: true}, true},
		{"plain", errors.New("boom"), false},
		{"wrapped adapter error", fmt.Errorf("outer: %w", &AdapterError{Status: 500}), true},
	}
	for _, tc := range cases {
		if got := IsTransient(tc.err); got != tc.want {
			t.Errorf("%s: IsTransient = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDispatchRetriesTransient(t *testing.T) {
	a := &flakyAdapter{failures: 2, err: &AdapterError{Status: 503}}
	resp, err := Dispatch(context.Background(), a, "mock-1", "hello")
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp.Artifact.Content != "ok" {
		t.Fatalf("unexpected content: %q", resp.Artifact.Content)
	}
	if a.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", a.calls)
	}
}

func TestDispatchStopsOnPermanentError(t *testing.T) {
	a := &flakyAdapter{failures: 10, err: &AdapterError{Status: 401}}
	if _, err := Dispatch(context.Background(), a, "mock-1", "hello"); err == nil {
		t.Fatal("expected error")
	}
	if a.calls != 1 {
		t.Fatalf("expected 1 call, got %d", a.calls)
	}
}

func TestDispatchExhaustsRetries(t *testing.T) {
	a := &flakyAdapter{failures: 10, err: &AdapterError{Status: 503}}
	if _, err := Dispatch(context.Background(), a, "mock-1", "hello"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if a.calls != dispatchRetries+1 {
		t.Fatalf("expected %d calls, got %d", dispatchRetries+1, a.calls)
	}
}

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// AdapterError wraps provider errors with status metadata.
type AdapterError struct {
	Status    int
	Temporary bool
	Err       error
}

func (e *AdapterError) Error() string {
	if e == nil {
		return "adapter error"
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("adapter error (status=%d)", e.Status)
}

func (e *AdapterError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsTransient reports whether an error is safe to retry.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var adapterErr *AdapterError
	if errors.As(err, &adapterErr) {
		if adapterErr.Temporary {
			return true
		}
		if adapterErr.Status == 429 || (adapterErr.Status >= 500 && adapterErr.Status <= 599) {
			return true
		}
	}
	return false
}

const (
	dispatchRetries = 2
	dispatchBackoff = 200 * time.Millisecond
)

// Dispatch sends a prompt through the adapter, retrying transient failures
// with linear backoff. Non-transient errors return immediately.
func Dispatch(ctx context.Context, a Adapter, model, prompt string) (*Response, error) {
	var lastErr error
	for attempt := 0; attempt <= dispatchRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * dispatchBackoff):
			}
		}
		resp, err := a.Generate(ctx, model, prompt)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !IsTransient(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("dispatch to %s failed after %d attempts: %w", a.Name(), dispatchRetries+1, lastErr)
}

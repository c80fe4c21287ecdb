package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrTimeout means the call outlived its deadline and was abandoned.
	ErrTimeout = errors.New("ai: request timed out")
	// ErrTransport means the request never got an HTTP answer.
	ErrTransport = errors.New("ai: transport failure")
	// ErrUnavailable means the provider was not called (circuit open) or
	// answered 2xx with something unusable.
	ErrUnavailable = errors.New("ai: provider unavailable")
)

// StatusError is a non-2xx answer from the provider.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s status %d: %s", e.Provider, e.Code, e.Body)
}

// classify wraps a failed round trip in ErrTimeout or ErrTransport.
func classify(ctx context.Context, provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, provider, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, provider, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrTransport, provider, err)
}

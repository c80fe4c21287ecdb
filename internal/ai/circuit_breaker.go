package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

type CircuitBreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

func NewCircuitBreaker(p Provider) *CircuitBreakerProvider {

	settings := gobreaker.Settings{
		Name:         "ai-provider-" + p.Name(),
		MaxRequests:  3,
		Interval:     0,
		Timeout:      30 * time.Second,
		IsSuccessful: countsAsSuccess,
	}

	return &CircuitBreakerProvider{
		provider: p,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

func (c *CircuitBreakerProvider) Name() string { return c.provider.Name() }

func (c *CircuitBreakerProvider) State() gobreaker.State { return c.cb.State() }

func (c *CircuitBreakerProvider) Review(
	ctx context.Context,
	r ReviewRequest,
) (ReviewResponse, error) {

	out, err := c.cb.Execute(func() (interface{}, error) {
		return c.provider.Review(ctx, r)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ReviewResponse{}, fmt.Errorf("%w: %s: %v", ErrUnavailable, c.provider.Name(), err)
	}
	if err != nil {
		return ReviewResponse{}, err
	}

	resp, ok := out.(ReviewResponse)
	if !ok {
		return ReviewResponse{}, fmt.Errorf("unexpected circuit breaker response type")
	}

	return resp, nil
}

// countsAsSuccess keeps caller-side 4xx answers from tripping the breaker;
// the provider is healthy, the request was not.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 400 && se.Code < 500 && se.Code != http.StatusTooManyRequests
	}
	return false
}

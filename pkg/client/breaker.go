package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

type circuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

// Caller errors (4xx) do not count against the breaker; only transport
// failures and 5xx responses trip it.
func newCircuitBreaker(name string, timeout time.Duration, maxFailures uint32) *circuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError
		},
	}
	return &circuitBreaker{breaker: gobreaker.NewCircuitBreaker(settings)}
}

func (b *circuitBreaker) execute(fn func() error) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("breaker (%s): %w", b.breaker.Name(), err)
	}
	return err
}

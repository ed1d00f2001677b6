package httpx

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// CircuitBreaker shields a remote dependency: after maxFailures
// consecutive errors the circuit opens and calls fail fast until the
// timeout lets a probe through.
type CircuitBreaker interface {
	Execute(fn func() error) error
	Open() bool
}

type breakerWrapper struct {
	inner *gobreaker.CircuitBreaker
}

func NewCircuitBreaker(name string, timeout time.Duration, maxFailures uint32) CircuitBreaker {
	return &breakerWrapper{
		inner: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 5,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
		}),
	}
}

func (b *breakerWrapper) Execute(fn func() error) error {
	_, err := b.inner.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	if err != nil {
		return fmt.Errorf("breaker (%s): %w", b.inner.Name(), err)
	}
	return nil
}

func (b *breakerWrapper) Open() bool {
	return b.inner.State() == gobreaker.StateOpen
}

// IsBreakerOpen reports whether an error came from an open or
// exhausted breaker rather than from the wrapped call itself.
func IsBreakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

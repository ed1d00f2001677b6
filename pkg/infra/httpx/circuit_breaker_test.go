package httpx

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker(t *testing.T) {
	t.Run("Passes Through A Successful Call", func(t *testing.T) {
		cb := NewCircuitBreaker("ok", 30*time.Second, 3)
		assert.NoError(t, cb.Execute(func() error { return nil }))
	})

	t.Run("Wraps A Failing Call With The Breaker Name", func(t *testing.T) {
		cb := NewCircuitBreaker("llm-refinement", 30*time.Second, 3)
		cause := errors.New("provider exploded")

		err := cb.Execute(func() error { return cause })

		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "llm-refinement")
	})

	t.Run("Opens After Consecutive Failures", func(t *testing.T) {
		cb := NewCircuitBreaker("opens", 100*time.Millisecond, 1)

		require.Error(t, cb.Execute(func() error { return errors.New("first") }))
		require.True(t, cb.Open())

		err := cb.Execute(func() error { return errors.New("never runs") })
		assert.True(t, IsBreakerOpen(err))
	})

	t.Run("Recovers After The Timeout", func(t *testing.T) {
		cb := NewCircuitBreaker("recovers", 50*time.Millisecond, 1)
		require.Error(t, cb.Execute(func() error { return errors.New("trip") }))

		time.Sleep(100 * time.Millisecond)

		assert.NoError(t, cb.Execute(func() error { return nil }))
		assert.False(t, cb.Open())
	})

	t.Run("Plain Errors Are Not Breaker Errors", func(t *testing.T) {
		assert.False(t, IsBreakerOpen(errors.New("provider exploded")))
	})
}

//go:build unit

package ratelimit_test

import (
	"testing"
	"time"

	"roombook/internal/infra/ratelimit"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/config"

	"github.com/stretchr/testify/assert"
)

func newStore(t *testing.T) (*ratelimit.MemoryStore, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	cfg := config.RateLimitConfig{MaxAttempts: 3, Window: 15 * time.Minute}
	return ratelimit.NewMemoryStore(cfg, clk), clk
}

func TestMemoryStore(t *testing.T) {
	const key = "otp_request:alice@example.com"

	t.Run("fresh key is not limited", func(t *testing.T) {
		store, _ := newStore(t)

		status := store.Check(key)
		assert.False(t, status.Limited)
		assert.Equal(t, 3, status.RemainingAttempts)
	})

	t.Run("blocks after max attempts within the window", func(t *testing.T) {
		store, _ := newStore(t)

		for i := 0; i < 3; i++ {
			assert.False(t, store.Check(key).Limited)
			store.Record(key)
		}

		status := store.Check(key)
		assert.True(t, status.Limited)
		assert.Equal(t, 0, status.RemainingAttempts)
		assert.Greater(t, status.ResetIn, time.Duration(0))
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		store, clk := newStore(t)

		for i := 0; i < 3; i++ {
			store.Record(key)
		}
		assert.True(t, store.Check(key).Limited)

		clk.Add(15*time.Minute + time.Second)

		status := store.Check(key)
		assert.False(t, status.Limited)
		assert.Equal(t, 3, status.RemainingAttempts)
	})

	t.Run("clear removes the key immediately", func(t *testing.T) {
		store, _ := newStore(t)

		for i := 0; i < 3; i++ {
			store.Record(key)
		}
		store.Clear(key)

		assert.False(t, store.Check(key).Limited)
	})

	t.Run("keys are independent", func(t *testing.T) {
		store, _ := newStore(t)

		for i := 0; i < 3; i++ {
			store.Record(key)
		}

		assert.False(t, store.Check("otp_request:bob@example.com").Limited)
	})

	t.Run("sweep drops only expired entries", func(t *testing.T) {
		store, clk := newStore(t)

		store.Record("old")
		clk.Add(10 * time.Minute)
		store.Record("fresh")
		clk.Add(6 * time.Minute) // "old" is now past the 15m window

		assert.Equal(t, 1, store.Sweep())
		assert.False(t, store.Check("old").Limited)
	})
}

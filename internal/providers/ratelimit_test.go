package providers

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiterAllowsBurst(t *testing.T) {
	rl := NewRateLimiter(60)

	for i := 0; i < 60; i++ {
		if err := rl.Wait(t.Context()); err != nil {
			t.Fatalf("Wait() error on request %d: %v", i, err)
		}
	}

	status := rl.Status()
	if status.TotalConsumed != 60 {
		t.Fatalf("TotalConsumed = %d", status.TotalConsumed)
	}
	if status.TokensLimit != 60 {
		t.Fatalf("TokensLimit = %d", status.TokensLimit)
	}
}

func TestRateLimiterBlocksWhenDrained(t *testing.T) {
	rl := NewRateLimiter(60)
	for i := 0; i < 60; i++ {
		if err := rl.Wait(t.Context()); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Wait() error = %v, want deadline exceeded", err)
	}
}

func TestRateLimiterDefaultsWhenUnset(t *testing.T) {
	rl := NewRateLimiter(0)
	if rl.Status().TokensLimit != 60 {
		t.Fatalf("TokensLimit = %d", rl.Status().TokensLimit)
	}
}

package resilience

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_AllowWithinBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RatePerMinute: 60, Burst: 3})
	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Fatalf("call %d should be within burst", i+1)
		}
	}
	if rl.Allow() {
		t.Error("fourth immediate call should be throttled")
	}
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	// 600/min = 10/sec, so one token refills within ~100ms.
	rl := NewRateLimiter(RateLimiterConfig{RatePerMinute: 600, Burst: 1})
	if !rl.Allow() {
		t.Fatal("first call should pass")
	}
	if rl.Allow() {
		t.Fatal("bucket should be empty")
	}
	time.Sleep(150 * time.Millisecond)
	if !rl.Allow() {
		t.Error("token should have refilled")
	}
}

func TestRateLimiter_WaitHonorsDeadline(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RatePerMinute: 1, Burst: 1})
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); err == nil {
		t.Error("expected error when wait exceeds deadline")
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{})
	// Default 10/min with burst 10.
	for i := 0; i < 10; i++ {
		if !rl.Allow() {
			t.Fatalf("call %d should be within default burst", i+1)
		}
	}
	if rl.Allow() {
		t.Error("eleventh call should be throttled")
	}
}

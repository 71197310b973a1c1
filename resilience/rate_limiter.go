package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned when a wait would exceed the context deadline.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiterConfig configures a token bucket rate limiter.
type RateLimiterConfig struct {
	// Name identifies this limiter for logging.
	Name string
	// RatePerMinute is the sustained number of calls allowed per minute.
	RatePerMinute int
	// Burst is the bucket capacity. Defaults to RatePerMinute.
	Burst int
}

// RateLimiter is a token bucket limiter local to one client. It throttles
// this process's calls to a provider; it does not coordinate across
// processes or enforce the provider's actual limits.
type RateLimiter struct {
	ratePerSec float64
	burst      float64

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter from config.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RatePerMinute
	}
	return &RateLimiter{
		ratePerSec: float64(cfg.RatePerMinute) / 60.0,
		burst:      float64(cfg.Burst),
		tokens:     float64(cfg.Burst),
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or the context is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		if rl.Allow() {
			return nil
		}
		wait := rl.nextTokenIn()
		if deadline, ok := ctx.Deadline(); ok && time.Now().Add(wait).After(deadline) {
			return ErrRateLimited
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Allow consumes a token if one is available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// nextTokenIn estimates how long until a token becomes available.
func (rl *RateLimiter) nextTokenIn() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.tokens >= 1 {
		return 0
	}
	missing := 1 - rl.tokens
	return time.Duration(missing / rl.ratePerSec * float64(time.Second))
}

// refill adds tokens for the elapsed time. Caller holds the lock.
func (rl *RateLimiter) refill() {
	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.lastRefill = now

	rl.tokens += elapsed * rl.ratePerSec
	if rl.tokens > rl.burst {
		rl.tokens = rl.burst
	}
}

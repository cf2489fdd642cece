package client

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRateLimiterStopped is returned by Wait after Stop
var ErrRateLimiterStopped = errors.New("rate limiter stopped")

// RateLimiter controls request rate. A nil *RateLimiter never blocks.
type RateLimiter struct {
	ticker   *time.Ticker
	requests chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a rate limiter allowing requestsPerMinute calls.
// Returns nil when requestsPerMinute is not positive.
func NewRateLimiter(requestsPerMinute float64) *RateLimiter {
	if requestsPerMinute <= 0 {
		return nil
	}

	interval := time.Duration(float64(time.Minute) / requestsPerMinute)

	rl := &RateLimiter{
		ticker:   time.NewTicker(interval),
		requests: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	// First request goes through immediately
	rl.requests <- struct{}{}

	go func() {
		for {
			select {
			case <-rl.ticker.C:
				select {
				case rl.requests <- struct{}{}:
				default:
				}
			case <-rl.done:
				return
			}
		}
	}()

	return rl
}

// Wait blocks until rate limit allows next request
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil {
		return nil
	}

	select {
	case <-rl.requests:
		return nil
	case <-rl.done:
		return ErrRateLimiterStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop stops the rate limiter. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	if rl == nil {
		return
	}
	rl.stopOnce.Do(func() {
		rl.ticker.Stop()
		close(rl.done)
	})
}

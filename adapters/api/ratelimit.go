package api

import (
	"context"
	"time"
)

// RateLimiter is a token bucket refilled once per second, sized to the
// upstream API's allowed request rate.
type RateLimiter struct {
	tokens chan struct{}
	ticker *time.Ticker
	done   chan struct{}
}

// NewRateLimiter creates a limiter allowing requestsPerSecond requests.
func NewRateLimiter(requestsPerSecond int) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	rl := &RateLimiter{
		tokens: make(chan struct{}, requestsPerSecond),
		ticker: time.NewTicker(time.Second),
		done:   make(chan struct{}),
	}
	for i := 0; i < requestsPerSecond; i++ {
		rl.tokens <- struct{}{}
	}
	go rl.refill()
	return rl
}

func (rl *RateLimiter) refill() {
	for {
		select {
		case <-rl.ticker.C:
			for i := 0; i < cap(rl.tokens); i++ {
				select {
				case rl.tokens <- struct{}{}:
				default:
				}
			}
		case <-rl.done:
			return
		}
	}
}

// Wait blocks until a token is available or the context ends.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	select {
	case <-rl.tokens:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop releases the refill goroutine. The limiter must not be used after.
func (rl *RateLimiter) Stop() {
	rl.ticker.Stop()
	close(rl.done)
}

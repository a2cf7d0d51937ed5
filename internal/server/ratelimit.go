package server

import (
	"fmt"
	"sync"
	"time"
)

// RateLimitError is returned when a client exceeds its request budget.
type RateLimitError struct {
	Limit int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded: %d requests per minute", e.Limit)
}

// RateLimiter enforces a per-client requests-per-minute budget using a
// sliding one-minute window.
type RateLimiter struct {
	mu                sync.Mutex
	requestsPerMinute int
	clients           map[string]*clientWindow
}

type clientWindow struct {
	count       int
	windowStart time.Time
}

// NewRateLimiter creates a rate limiter. A limit of 0 or less disables it;
// NewRateLimiter then returns nil, which callers treat as "no limiting".
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	return &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		clients:           make(map[string]*clientWindow),
	}
}

// Allow reports whether a request from the given client is within budget,
// consuming one slot when it is.
func (rl *RateLimiter) Allow(clientID string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.clients[clientID]
	if !ok || now.Sub(w.windowStart) >= time.Minute {
		rl.clients[clientID] = &clientWindow{count: 1, windowStart: now}
		return nil
	}
	if w.count >= rl.requestsPerMinute {
		return &RateLimitError{Limit: rl.requestsPerMinute}
	}
	w.count++
	return nil
}

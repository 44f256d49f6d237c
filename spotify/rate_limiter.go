package spotify

import (
	"sync"
	"time"
)

const (
	RateLimitWindow = 30 * time.Second
	WindowRequests  = 60
)

// RateLimiter paces Web API calls with a fixed window budget. The Web API
// throttles on a rolling 30-second window; staying under WindowRequests per
// window keeps bulk mirroring from tripping 429 responses.
type RateLimiter struct {
	mu          sync.Mutex
	windowStart time.Time
	remaining   int
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		windowStart: time.Now(),
		remaining:   WindowRequests,
	}
}

// Wait blocks until a request slot is available, then consumes it.
func (rl *RateLimiter) Wait() {
	rl.mu.Lock()
	now := time.Now()
	if now.Sub(rl.windowStart) >= RateLimitWindow {
		rl.windowStart = now
		rl.remaining = WindowRequests
	}

	if rl.remaining <= 0 {
		sleep := rl.windowStart.Add(RateLimitWindow).Sub(now)
		rl.mu.Unlock()
		if sleep > 0 {
			time.Sleep(sleep)
		}
		rl.mu.Lock()
		rl.windowStart = time.Now()
		rl.remaining = WindowRequests
	}

	rl.remaining--
	rl.mu.Unlock()
}

// Remaining reports the slots left in the current window.
func (rl *RateLimiter) Remaining() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if time.Since(rl.windowStart) >= RateLimitWindow {
		return WindowRequests
	}
	return rl.remaining
}

package gosocial

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket guarding calls to the generation backend.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	capacity   float64
	perSecond  float64
	lastRefill time.Time
}

// RateLimitConfig configures the rate limiter.
type RateLimitConfig struct {
	RequestsPerMinute int // Sustained rate (default 30)
	BurstSize         int // Bucket capacity (default: RequestsPerMinute)
}

// NewRateLimiter creates a limiter with a full bucket.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	rpm := float64(cfg.RequestsPerMinute)
	if rpm <= 0 {
		rpm = 30
	}
	burst := float64(cfg.BurstSize)
	if burst <= 0 {
		burst = rpm
	}
	return &RateLimiter{
		tokens:     burst,
		capacity:   burst,
		perSecond:  rpm / 60.0,
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		wait, ok := r.reserve()
		if ok {
			return nil
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

// TryAcquire takes a token if one is available.
func (r *RateLimiter) TryAcquire() bool {
	_, ok := r.reserve()
	return ok
}

// Available returns the current number of tokens.
func (r *RateLimiter) Available() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refill(time.Now())
	return r.tokens
}

// reserve takes a token, or reports how long until one is due.
func (r *RateLimiter) reserve() (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refill(time.Now())
	if r.tokens >= 1 {
		r.tokens--
		return 0, true
	}
	missing := 1 - r.tokens
	return time.Duration(missing / r.perSecond * float64(time.Second)), false
}

// refill must be called with mu held.
func (r *RateLimiter) refill(now time.Time) {
	r.tokens += now.Sub(r.lastRefill).Seconds() * r.perSecond
	if r.tokens > r.capacity {
		r.tokens = r.capacity
	}
	r.lastRefill = now
}

// RateLimitedGenerator wraps a Generator with rate limiting.
type RateLimitedGenerator struct {
	next    Generator
	limiter *RateLimiter
}

// NewRateLimitedGenerator wraps next.
func NewRateLimitedGenerator(next Generator, cfg RateLimitConfig) *RateLimitedGenerator {
	return &RateLimitedGenerator{next: next, limiter: NewRateLimiter(cfg)}
}

// Generate implements Generator.
func (g *RateLimitedGenerator) Generate(ctx context.Context, req PromptRequest) (*GenerationResult, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, &GenerationError{Message: "rate limit wait cancelled", Cause: err}
	}
	return g.next.Generate(ctx, req)
}

// Limiter returns the underlying limiter.
func (g *RateLimitedGenerator) Limiter() *RateLimiter {
	return g.limiter
}

package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Policy controls retry behaviour: exponential backoff between attempts
// with proportional jitter.
type Policy struct {
	// Attempts is the total number of tries including the first. 1 disables
	// retries. Zero or negative selects the default of 3.
	Attempts int

	// BaseDelay is the sleep before the second attempt; each further retry
	// doubles it. Default 500ms.
	BaseDelay time.Duration

	// CapDelay bounds the computed sleep. Default 30s.
	CapDelay time.Duration

	// Jitter spreads each sleep by the given fraction in both directions,
	// so 0.25 means anywhere within ±25%. Default 0.25; negative disables.
	Jitter float64

	// Classify overrides IsTransient as the retry gate when set.
	Classify func(err error) bool

	// OnRetry runs before each sleep with the attempt just failed (1-based)
	// and its error.
	OnRetry func(attempt int, err error)
}

// DefaultPolicy suits interactive API calls: three attempts, sub-second
// initial backoff.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:  3,
		BaseDelay: 500 * time.Millisecond,
		CapDelay:  30 * time.Second,
		Jitter:    0.25,
	}
}

func (p Policy) withDefaults() Policy {
	if p.Attempts <= 0 {
		p.Attempts = 3
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = 500 * time.Millisecond
	}
	if p.CapDelay <= 0 {
		p.CapDelay = 30 * time.Second
	}
	if p.Jitter == 0 {
		p.Jitter = 0.25
	}
	return p
}

// sleep returns the backoff before retry number n (0-based).
func (p Policy) sleep(n int) time.Duration {
	d := float64(p.BaseDelay) * math.Pow(2, float64(n))
	if d > float64(p.CapDelay) {
		d = float64(p.CapDelay)
	}
	if p.Jitter > 0 {
		d += d * p.Jitter * (rand.Float64()*2 - 1)
	}
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}

// Do runs fn until it succeeds, fails permanently, or the policy is
// exhausted. Context cancellation stops retrying immediately and returns
// fn's last error.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	_, err := DoVal(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// DoVal is Do for functions that return a value alongside the error.
func DoVal[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	p = p.withDefaults()
	gate := p.Classify
	if gate == nil {
		gate = IsTransient
	}

	var zero T
	var lastErr error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil || !gate(err) || attempt == p.Attempts-1 {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, err)
		}

		timer := time.NewTimer(p.sleep(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}
	return zero, lastErr
}

// LogRetries returns an OnRetry hook that records each retry against the
// named provider operation.
func LogRetries(provider, operation string) func(int, error) {
	return func(attempt int, err error) {
		zap.L().Warn("retrying provider call",
			zap.String("provider", provider),
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}

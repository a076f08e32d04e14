// Package retry implements a bounded retry helper with exponential backoff
// and jitter, shared by every outbound call site.
package retry

import (
	"context"
	"math/rand"
	"time"
)

// Policy controls retry behaviour.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// JitterFraction adds up to this fraction of the backoff delay as
	// random jitter. Zero disables jitter.
	JitterFraction float64
}

// DefaultPolicy matches the upstream API etiquette: three attempts, one
// second base delay doubling per attempt, full-second jitter.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		BaseDelay:      time.Second,
		MaxDelay:       30 * time.Second,
		JitterFraction: 1.0,
	}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = time.Second
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 30 * time.Second
	}
	return p
}

// Delay returns the backoff delay before retrying after the given zero-based
// attempt, including jitter.
func (p Policy) Delay(attempt int) time.Duration {
	p = p.normalized()
	delay := p.BaseDelay << uint(attempt)
	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	if p.JitterFraction > 0 {
		delay += time.Duration(rand.Float64() * p.JitterFraction * float64(delay))
	}
	return delay
}

// Do invokes fn until it succeeds, the attempts are exhausted, or the context
// is cancelled. The last error is returned on exhaustion.
func Do(ctx context.Context, policy Policy, fn func(ctx context.Context) error) error {
	policy = policy.normalized()

	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == policy.MaxAttempts-1 {
			break
		}
		if err := sleep(ctx, policy.Delay(attempt)); err != nil {
			return err
		}
	}
	return lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Package retry wraps a fallible call with bounded, logged retries
//
// It is a collaborator for the I/O that feeds documents into the
// transform engine; the engine itself performs no I/O and never retries
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"statsdash/internal/platform/logger"
)

// Policy controls the retry loop
type Policy struct {
	// MaxAttempts bounds the total number of calls, first try included
	// values below 1 are treated as 1
	MaxAttempts int

	// Initial is the first wait; doubles each attempt up to Ceiling
	// unless Fixed is set
	Initial time.Duration

	// Ceiling caps the exponential wait
	Ceiling time.Duration

	// Fixed switches to a constant wait of Initial between attempts
	Fixed bool

	// Label names the wrapped operation in retry logs
	Label string
}

// DefaultPolicy mirrors the guardrails used when opening stores:
// a short initial wait doubling to a small ceiling
func DefaultPolicy(label string) Policy {
	return Policy{
		MaxAttempts: 5,
		Initial:     150 * time.Millisecond,
		Ceiling:     2 * time.Second,
		Label:       label,
	}
}

// Do invokes fn until it succeeds, the attempt budget is exhausted, or
// ctx is done. Each failed attempt is logged with its wait. On
// exhaustion the last error is returned unchanged so callers keep the
// original failure
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var bo backoff.BackOff
	if p.Fixed {
		bo = backoff.NewConstantBackOff(p.Initial)
	} else {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = p.Initial
		eb.MaxInterval = p.Ceiling
		eb.RandomizationFactor = 0
		bo = eb
	}
	bo = backoff.WithContext(bo, ctx)

	log := logger.Named("retry")

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			return ctx.Err()
		}
		log.Warn().
			Str("op", p.Label).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Err(lastErr).
			Msg("attempt failed retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}

// Value runs fn through Do and returns its result alongside the error
func Value[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := Do(ctx, p, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic. MaxAttempts below one is
// treated as one.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidSeen := false

	for attempt := range r.config.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &invalidSeen) || attempt == r.config.MaxAttempts-1 {
			break
		}

		timer := time.NewTimer(r.backoff(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable reports whether err is worth another attempt. A malformed
// reply gets exactly one more try per request.
func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var (
		auth    *ErrAuth
		maxTok  *ErrMaxTokensExceeded
		invalid *ErrInvalidResponse
	)
	switch {
	case errors.As(err, &auth), errors.As(err, &maxTok):
		return false
	case errors.As(err, &invalid):
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
		return true
	}
	// Rate limits, outages and bare network errors.
	return true
}

// backoff computes the wait before the next attempt, honoring a
// provider supplied Retry-After.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return min(rl.RetryAfter, r.config.MaxWait)
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))
	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}

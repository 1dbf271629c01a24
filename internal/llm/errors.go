package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrAuth indicates the provider rejected the credentials. It is never
// retried: the key will not become valid mid-interview.
type ErrAuth struct {
	Err error
}

func (e *ErrAuth) Error() string {
	return fmt.Sprintf("LLM provider rejected credentials: %v", e.Err)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("LLM response truncated after %d bytes: max tokens exceeded", len(e.Content))
}

// classifyStatus maps an HTTP status from a provider SDK error onto the
// package error types.
func classifyStatus(status int, retryAfter time.Duration, err error) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ErrAuth{Err: err}
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(h.Get("Retry-After")))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// CapabilityError reports that a generation step could not produce usable
// output. Callers are expected to fall back to deterministic defaults.
type CapabilityError struct {
	Purpose string
	Err     error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s capability failed: %v", e.Purpose, e.Err)
}

func (e *CapabilityError) Unwrap() error { return e.Err }

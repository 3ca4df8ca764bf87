package engine

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// RetryConfig controls retry behavior for provider fetches.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig matches the search-stage budget: three sequential
// attempts, 1 s base backoff capped at 5 s.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts: 3,
	BaseDelay:   time.Second,
	MaxDelay:    5 * time.Second,
}

// Backoff returns the sleep before the attempt following the given 1-based
// attempt: min(BaseDelay * 2^(attempt-1), MaxDelay). Pure, so the policy is
// testable without a clock.
func (rc RetryConfig) Backoff(attempt int) time.Duration {
	d := rc.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= rc.MaxDelay {
			return rc.MaxDelay
		}
	}
	if d > rc.MaxDelay {
		return rc.MaxDelay
	}
	return d
}

// RetryDo runs fn up to MaxAttempts times, sequentially, sleeping Backoff
// between attempts. Non-retryable errors return immediately; otherwise the
// last error is returned verbatim.
func RetryDo[T any](ctx context.Context, rc RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= rc.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return zero, err
		}

		if attempt < rc.MaxAttempts {
			wait := rc.Backoff(attempt)
			slog.Debug("retrying", slog.Int("attempt", attempt), slog.Duration("wait", wait), slog.Any("error", err))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
	}
	return zero, lastErr
}

// RetryHTTP executes an HTTP request function with retry logic.
// The function builds and sends the request; RetryHTTP handles response
// status checks. Auth and quota rejections (400/403) are not retried.
func RetryHTTP(ctx context.Context, rc RetryConfig, fn func() (*http.Response, error)) (*http.Response, error) {
	return RetryDo(ctx, rc, func() (*http.Response, error) {
		resp, err := fn()
		if err != nil {
			return nil, err
		}
		if isRetryableStatus(resp.StatusCode) {
			resp.Body.Close()
			return nil, &httpStatusError{StatusCode: resp.StatusCode}
		}
		return resp, nil
	})
}

// httpStatusError wraps a retryable HTTP status code.
type httpStatusError struct {
	StatusCode int
}

func (e *httpStatusError) Error() string {
	return http.StatusText(e.StatusCode)
}

// isRetryable returns true for transient errors worth retrying.
func isRetryable(err error) bool {
	var httpErr *httpStatusError
	if errors.As(err, &httpErr) {
		return true // already filtered by isRetryableStatus
	}

	// Connection errors (dial failures, connection refused, etc.)
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	// Timeout errors (net.Error includes OpError, so check after OpError)
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// isRetryableStatus returns true for HTTP status codes worth retrying.
// 400/403 (bad key, quota) are deliberately absent: retrying an auth
// failure wastes the retry budget.
func isRetryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

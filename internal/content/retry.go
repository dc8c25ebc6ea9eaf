package content

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// ErrOverloaded is returned when the model stayed overloaded on every attempt.
var ErrOverloaded = errors.New("model overloaded")

// RetryPolicy describes how overloaded calls are retried.
type RetryPolicy struct {
	MaxAttempts int           // total attempts, including the first one
	BaseDelay   time.Duration // delay before the second attempt, doubled afterwards
	MaxJitter   time.Duration // upper bound of the random delay added to each wait
}

// DefaultRetryPolicy is 3 attempts with 1s, 2s backoff and up to 500ms jitter.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxJitter:   500 * time.Millisecond,
	}
}

// Backoff returns the wait after the given failed attempt (zero based), without jitter.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return p.BaseDelay << attempt
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return rand.N(max)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsOverloaded reports whether err is a transient capacity failure of the model service.
func IsOverloaded(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) && isOverloadedAPIError(apiErr) {
		return true
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && isOverloadedAPIError(*apiErrPtr) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "overloaded")
}

func isOverloadedAPIError(e genai.APIError) bool {
	return e.Code == http.StatusServiceUnavailable ||
		e.Status == "UNAVAILABLE" ||
		strings.Contains(strings.ToLower(e.Message), "overloaded")
}

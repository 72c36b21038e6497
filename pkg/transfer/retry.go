package transfer

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/cenkalti/backoff/v4"
)

const (
	// maxRetries is how many times a retryable endpoint call is retried
	// after the initial attempt.
	maxRetries = 3

	retryInitialInterval = 1 * time.Second
	retryMaxInterval     = 4 * time.Second
)

// newRetryBackoff builds the fixed 1s/2s/4s schedule used for endpoint
// calls. Randomization is disabled so the waits are exact.
func newRetryBackoff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.MaxInterval = retryMaxInterval
	bo.MaxElapsedTime = 0
	bo.Reset()
	return bo
}

// Retryable classifies an endpoint error. Network failures and 5xx statuses
// are retryable; auth failures and other 4xx statuses are not.
func Retryable(err error) bool {
	if !httperror.IsHTTPError(err) {
		return true
	}

	status := httperror.GetStatusCode(err)
	if status == http.StatusUnauthorized {
		return false
	}
	return status >= http.StatusInternalServerError
}

// IsAuthError reports whether err is an upstream 401. Auth errors abort the
// whole run since every subsequent call would fail the same way.
func IsAuthError(err error) bool {
	return httperror.IsHTTPError(err) && httperror.GetStatusCode(err) == http.StatusUnauthorized
}

// withRetry runs op under the retry schedule, stopping early for
// non-retryable errors and context cancellation.
func withRetry(ctx context.Context, op func() error) error {
	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(newRetryBackoff(), maxRetries), ctx)
	return backoff.Retry(wrapped, bo)
}

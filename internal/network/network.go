// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package network implements the rate-limit-aware transport layer: client
// side request pacing, retry with backoff on throttling and transient
// network failures, and the shared per-tier throttle state.
package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/trace"
	"time"

	"github.com/rusq/slack"
	"golang.org/x/time/rate"
)

// default retry attempt numbers, used when the caller passes zero.
const (
	defRateLimitAttempts = 5
	defNetAttempts       = 3
)

var (
	// maxAllowedWaitTime is the maximum time to wait between attempts when
	// the server did not specify a retry delay.
	maxAllowedWaitTime = 5 * time.Minute
	// waitFn returns the amount of time to wait before retrying depending on
	// the current attempt.  This variable exists to reduce the test time.
	waitFn    = expWait
	netWaitFn = expWait
)

var (
	// ErrRetryFailed is returned when the API kept returning the throttling
	// signal for all allowed attempts.
	ErrRetryFailed = errors.New("rate limited and out of retries")
	// ErrNetFailed is returned when the network failure persisted for all
	// allowed attempts.
	ErrNetFailed = errors.New("network failure and out of retries")
)

// WithRetry runs the callback function fn.  Before each attempt it waits out
// the tier's throttle state cls (if the tier is currently throttled) and the
// client-side limiter lim.  If fn returns slack.RateLimitedError, the
// server-specified delay (or an exponential fallback) is recorded in cls and
// the call is retried up to maxAttempts times, after which ErrRetryFailed is
// returned.  Recoverable server and network errors are retried up to
// maxNetAttempts times with exponential backoff, then ErrNetFailed is
// returned.  Any other error from fn is returned as is, wrapped.  A nil cls
// is allowed and disables throttle-state tracking.
func WithRetry(ctx context.Context, lim *rate.Limiter, cls *ThrottleClass, maxAttempts, maxNetAttempts int, fn func() error) error {
	if maxAttempts <= 0 {
		maxAttempts = defRateLimitAttempts
	}
	if maxNetAttempts <= 0 {
		maxNetAttempts = defNetAttempts
	}
	var (
		netFailures int
		lastErr     error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if cls != nil {
			if err := cls.Wait(ctx); err != nil {
				return err
			}
		}
		var err error
		trace.WithRegion(ctx, "WithRetry.wait", func() {
			err = lim.Wait(ctx)
		})
		if err != nil {
			return err
		}

		cbErr := fn()
		if cbErr == nil {
			if cls != nil {
				cls.Success()
			}
			return nil
		}
		lastErr = cbErr

		tracelogf(ctx, "error", "WithRetry: %[1]s (%[1]T) after %[2]d attempts", cbErr, attempt+1)
		var (
			rle *slack.RateLimitedError
			sce slack.StatusCodeError
		)
		switch {
		case errors.As(cbErr, &rle):
			delay := rle.RetryAfter
			if delay <= 0 {
				delay = waitFn(attempt)
			}
			tracelogf(ctx, "info", "got rate limited, will wait %s", delay)
			if cls != nil {
				cls.Throttled(delay)
				continue // the wait happens at the top of the loop
			}
			if err := sleepCtx(ctx, delay); err != nil {
				return err
			}
			continue
		case errors.As(cbErr, &sce):
			if !isRecoverable(sce.Code) {
				return fmt.Errorf("callback error: %w", cbErr)
			}
			netFailures++
			if netFailures >= maxNetAttempts {
				return fmt.Errorf("%w: %v", ErrNetFailed, cbErr)
			}
			delay := waitFn(attempt)
			tracelogf(ctx, "info", "got server error %d, sleeping %s", sce.Code, delay)
			if err := sleepCtx(ctx, delay); err != nil {
				return err
			}
			continue
		case isNetError(cbErr):
			netFailures++
			if netFailures >= maxNetAttempts {
				return fmt.Errorf("%w: %v", ErrNetFailed, cbErr)
			}
			delay := netWaitFn(attempt)
			tracelogf(ctx, "info", "got network error %v, sleeping %s", cbErr, delay)
			if err := sleepCtx(ctx, delay); err != nil {
				return err
			}
			continue
		}

		return fmt.Errorf("callback error: %w", cbErr)
	}
	return fmt.Errorf("%w (%d attempts): last error: %v", ErrRetryFailed, maxAttempts, lastErr)
}

// isRecoverable returns true if the status code is a recoverable error.
func isRecoverable(statusCode int) bool {
	return (statusCode >= http.StatusInternalServerError && statusCode <= 599 && statusCode != 501) || statusCode == http.StatusRequestTimeout
}

// isNetError reports whether err is a network-level failure worth retrying:
// a read/write/dial error or a timeout.  see #234 for the tcp read errors.
func isNetError(err error) bool {
	var oe *net.OpError
	if errors.As(err, &oe) {
		return oe.Op == "read" || oe.Op == "write" || oe.Op == "dial"
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// expWait returns the exponential backoff delay for the attempt, capped at
// maxAllowedWaitTime.
func expWait(attempt int) time.Duration {
	delay := time.Duration(2<<uint(attempt)) * time.Second
	if delay > maxAllowedWaitTime {
		return maxAllowedWaitTime
	}
	return delay
}

func tracelogf(ctx context.Context, category string, format string, a ...any) {
	trace.Logf(ctx, category, format, a...)
	slog.DebugContext(ctx, fmt.Sprintf(format, a...))
}

// SetMaxAllowedWaitTime sets the maximum time to wait between attempts.
func SetMaxAllowedWaitTime(d time.Duration) {
	maxAllowedWaitTime = d
}

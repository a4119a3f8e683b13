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

package slackmcp

// In this file: the uniform error contract returned to the calling agent.

import (
	"errors"
	"fmt"

	"github.com/rusq/slack"

	"github.com/rusq/slackmcp/internal/network"
)

// Kind classifies a failure for the calling agent.
type Kind int

const (
	KindUnknown Kind = iota
	// KindMissingCredential: the operation's required credential was not
	// configured.  A configuration error, never retried.
	KindMissingCredential
	// KindInvalidArgument: the caller supplied a missing or malformed
	// argument.  Never retried.
	KindInvalidArgument
	// KindRateLimited: the API kept throttling for all allowed attempts.
	KindRateLimited
	// KindTransport: a network-level failure persisted through the retry
	// budget.
	KindTransport
	// KindRemote: the API returned a structured failure; Code carries the
	// API's error string (e.g. "already_reacted").
	KindRemote
	// KindUnknownOperation: the dispatcher was asked for an operation it
	// does not know.
	KindUnknownOperation
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindRateLimited:
		return "rate_limit_exceeded"
	case KindTransport:
		return "transport_error"
	case KindRemote:
		return "remote_error"
	case KindUnknownOperation:
		return "unknown_operation"
	}
	return "unknown"
}

// Remote API error codes the tests and callers care about.  The set is open;
// any other code is passed through in Error.Code verbatim.
const (
	ErrCodeAlreadyReacted   = "already_reacted"
	ErrCodeNoReaction       = "no_reaction"
	ErrCodeMessageNotFound  = "message_not_found"
	ErrCodeChannelNotFound  = "channel_not_found"
	ErrCodeInvalidSchedule  = "invalid_scheduled_message_id"
	ErrCodeNotInChannel     = "not_in_channel"
	ErrCodePermissionDenied = "missing_scope"
)

// Error is the structured failure returned for every operation.  Kind
// distinguishes the failure class, Code carries the remote error string for
// KindRemote, and the wrapped error holds the diagnostic detail.
type Error struct {
	Kind Kind
	Op   string // operation name
	Code string // remote API error code, KindRemote only
	err  error
}

func (e *Error) Error() string {
	switch {
	case e.Code != "":
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Code)
	case e.err != nil:
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.err
}

// IsRemote reports whether err is a remote API failure with the given code.
func IsRemote(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindRemote && e.Code == code
}

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// missingArg returns an invalid-argument error naming the absent field.
func missingArg(op, field string) *Error {
	return &Error{
		Kind: KindInvalidArgument,
		Op:   op,
		err:  fmt.Errorf("missing required argument %q", field),
	}
}

// invalidArg returns an invalid-argument error naming the offending field.
func invalidArg(op, field string, reason error) *Error {
	return &Error{
		Kind: KindInvalidArgument,
		Op:   op,
		err:  fmt.Errorf("invalid argument %q: %w", field, reason),
	}
}

// mapErr translates an error coming from the transport into the uniform
// contract.  Errors that are already classified pass through unchanged.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	switch {
	case errors.Is(err, network.ErrRetryFailed):
		return &Error{Kind: KindRateLimited, Op: op, err: err}
	case errors.Is(err, network.ErrNetFailed):
		return &Error{Kind: KindTransport, Op: op, err: err}
	}
	var serr slack.SlackErrorResponse
	if errors.As(err, &serr) {
		return &Error{Kind: KindRemote, Op: op, Code: serr.Err, err: err}
	}
	return &Error{Kind: KindTransport, Op: op, err: err}
}

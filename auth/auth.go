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

// Package auth holds the Slack credentials for the process lifetime.
//
// Two kinds of tokens are supported: the bot token (xoxb-) that represents
// the application identity, and the optional user token (xoxp-) that some
// API methods (e.g. search.messages) require.  Tokens are loaded once at
// startup and are never refreshed or written back.
package auth

import (
	"errors"
	"fmt"
	"regexp"
)

// Scope is the credential class an operation requires.
type Scope uint8

const (
	// ScopeBot requires the bot (xoxb-) token.
	ScopeBot Scope = iota
	// ScopeUser requires the user (xoxp-) token.
	ScopeUser
)

func (s Scope) String() string {
	switch s {
	case ScopeBot:
		return "bot"
	case ScopeUser:
		return "user"
	}
	return fmt.Sprintf("Scope(%d)", uint8(s))
}

// Provider is the Slack authentication provider.
type Provider interface {
	// SlackToken returns the Slack token value.
	SlackToken() string
	// Validate returns an error if the token is missing or malformed.
	Validate() error
}

var (
	ErrNoToken      = errors.New("no token")
	ErrInvalidToken = errors.New("token must start with xoxb- or xoxp- and be followed by 2 or more groups of alphanumeric characters")
)

// tokenRE is a loose regular expression to match Slack API tokens.
// b - bot, p - user (legacy "OAuth" user token shape).
var tokenRE = regexp.MustCompile(`^xox[bp]-[0-9A-Za-z]+(-[0-9A-Za-z]+)+$`)

// ValidateToken returns an error if token does not look like a Slack API
// token.  It is a shape check only; the API is the authority on validity.
func ValidateToken(token string) error {
	if token == "" {
		return ErrNoToken
	}
	if !tokenRE.MatchString(token) {
		return ErrInvalidToken
	}
	return nil
}

var _ Provider = ValueAuth{}

// ValueAuth is a Provider that holds a literal token value.
type ValueAuth struct {
	token string
}

// NewValueAuth creates a ValueAuth from the token value.  It returns
// ErrNoToken if the token is empty, or ErrInvalidToken if it has an
// unexpected shape.
func NewValueAuth(token string) (ValueAuth, error) {
	if err := ValidateToken(token); err != nil {
		return ValueAuth{}, err
	}
	return ValueAuth{token: token}, nil
}

func (a ValueAuth) SlackToken() string {
	return a.token
}

func (a ValueAuth) Validate() error {
	return ValidateToken(a.token)
}

// String implements fmt.Stringer.  It never reveals the token value.
func (a ValueAuth) String() string {
	return "<REDACTED>"
}

// IsZero reports whether the provider holds no token.
func (a ValueAuth) IsZero() bool {
	return a.token == ""
}

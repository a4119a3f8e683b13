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

// Package structures provides functions to validate and convert Slack data
// types: channel and user identifiers, fixed-point message timestamps and
// reaction names.
package structures

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidChannelID = errors.New("channel ID must start with C, D or G followed by 8 or more alphanumeric characters")
	ErrInvalidUserID    = errors.New("user ID must start with U or W followed by 8 or more alphanumeric characters")
	ErrInvalidReaction  = errors.New("reaction name must be a bare emoji name without colons")
)

// channelRE matches public channel (C), direct message (D) and group (G)
// identifiers.
var channelRE = regexp.MustCompile(`^[CDG][A-Z0-9]{8,}$`)

// userRE matches user (U) and enterprise user (W) identifiers.
var userRE = regexp.MustCompile(`^[UW][A-Z0-9]{8,}$`)

// ValidateChannelID returns an error if s is not a valid conversation ID.
func ValidateChannelID(s string) error {
	if !channelRE.MatchString(s) {
		return ErrInvalidChannelID
	}
	return nil
}

// ValidateUserID returns an error if s is not a valid user ID.
func ValidateUserID(s string) error {
	if !userRE.MatchString(s) {
		return ErrInvalidUserID
	}
	return nil
}

// reactionRE matches a bare emoji name, optionally with a skin-tone
// modifier, i.e. "thumbsup" or "thumbsup::skin-tone-2".
var reactionRE = regexp.MustCompile(`^[a-z0-9_+-]+(::skin-tone-[2-6])?$`)

// ValidateReaction returns an error if s is not a valid reaction name.
// Leading and trailing colons are a common caller mistake and are reported,
// not stripped.
func ValidateReaction(s string) error {
	if s == "" || strings.HasPrefix(s, ":") || strings.HasSuffix(s, ":") {
		return ErrInvalidReaction
	}
	if !reactionRE.MatchString(s) {
		return ErrInvalidReaction
	}
	return nil
}

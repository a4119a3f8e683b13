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
package structures

// in this file: slack timestamp parsing functions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidTS = errors.New("timestamp must be a fixed-point value, i.e. \"1609459200.000001\"")

// ValidateSlackTS returns an error if timestamp is not in the Slack
// fixed-point format (Unix seconds, a dot, and a 6-digit sequence part).
func ValidateSlackTS(timestamp string) error {
	sSec, sMicro, found := strings.Cut(timestamp, ".")
	if !found || len(sMicro) != 6 {
		return ErrInvalidTS
	}
	if _, err := strconv.ParseInt(sSec, 10, 64); err != nil {
		return ErrInvalidTS
	}
	if _, err := strconv.ParseInt(sMicro, 10, 64); err != nil {
		return ErrInvalidTS
	}
	return nil
}

// ParseSlackTS parses the slack timestamp.
func ParseSlackTS(timestamp string) (time.Time, error) {
	const (
		base = 10
		bit  = 64
	)
	sSec, sMicro, found := strings.Cut(timestamp, ".")
	if sSec == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	var t int64
	var err error
	if !found {
		t, err = strconv.ParseInt(sSec+"000000", base, bit)
	} else {
		t, err = strconv.ParseInt(sSec+sMicro, base, bit)
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMicro(t).UTC(), nil
}

// FormatSlackTS formats ts as a Slack fixed-point timestamp.  Zero and
// pre-epoch values format as an empty string.
func FormatSlackTS(ts time.Time) string {
	if ts.IsZero() || ts.Before(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)) {
		return ""
	}
	hi := ts.Unix()
	lo := ts.UnixMicro() % 1_000_000
	return fmt.Sprintf("%d.%06d", hi, lo)
}

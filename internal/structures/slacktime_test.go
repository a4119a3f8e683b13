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

import (
	"testing"
	"time"
)

func TestValidateSlackTS(t *testing.T) {
	tests := []struct {
		ts      string
		wantErr bool
	}{
		{"1609459200.000001", false},
		{"1577694990.000400", false},
		{"1609459200", true},
		{"1609459200.1", true},
		{"1609459200.0000001", true},
		{"now", true},
		{"", true},
		{".000001", true},
	}
	for _, tt := range tests {
		t.Run(tt.ts, func(t *testing.T) {
			if err := ValidateSlackTS(tt.ts); (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlackTS(%q) error = %v, wantErr %v", tt.ts, err, tt.wantErr)
			}
		})
	}
}

func TestParseSlackTS(t *testing.T) {
	got, err := ParseSlackTS("1577694990.000400")
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2019, 12, 30, 8, 36, 30, 400000, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseSlackTS() = %s, want %s", got, want)
	}
}

func TestFormatSlackTS(t *testing.T) {
	if got := FormatSlackTS(time.Date(2019, 12, 30, 8, 36, 30, 400000, time.UTC)); got != "1577694990.000400" {
		t.Errorf("FormatSlackTS() = %q", got)
	}
	if got := FormatSlackTS(time.Time{}); got != "" {
		t.Errorf("FormatSlackTS(zero) = %q, want empty", got)
	}
}

func TestRoundTrip(t *testing.T) {
	const ts = "1609459200.000001"
	parsed, err := ParseSlackTS(ts)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatSlackTS(parsed); got != ts {
		t.Errorf("round trip = %q, want %q", got, ts)
	}
}

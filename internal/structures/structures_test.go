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

import "testing"

func TestValidateChannelID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"public channel", "C01234ABCDE", false},
		{"direct message", "D0987ZYXWV", false},
		{"group", "GABCDEF1234", false},
		{"user id", "U01234ABCDE", true},
		{"channel name", "#general", true},
		{"lowercase", "c01234abcde", true},
		{"too short", "C1234", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateChannelID(tt.id); (err != nil) != tt.wantErr {
				t.Errorf("ValidateChannelID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"user", "U01234ABCDE", false},
		{"enterprise user", "W01234ABCDE", false},
		{"channel", "C01234ABCDE", true},
		{"mention syntax", "<@U01234ABCDE>", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateUserID(tt.id); (err != nil) != tt.wantErr {
				t.Errorf("ValidateUserID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateReaction(t *testing.T) {
	tests := []struct {
		name    string
		r       string
		wantErr bool
	}{
		{"plain", "thumbsup", false},
		{"with modifier", "thumbsup::skin-tone-2", false},
		{"plus one", "+1", false},
		{"with colons", ":thumbsup:", true},
		{"leading colon", ":thumbsup", true},
		{"uppercase", "ThumbsUp", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateReaction(tt.r); (err != nil) != tt.wantErr {
				t.Errorf("ValidateReaction(%q) error = %v, wantErr %v", tt.r, err, tt.wantErr)
			}
		})
	}
}

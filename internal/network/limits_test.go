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
package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimits_Validate(t *testing.T) {
	tests := []struct {
		name    string
		limits  Limits
		wantErr assert.ErrorAssertionFunc
	}{
		{
			"validate default options",
			DefLimits,
			assert.NoError,
		},
		{
			"empty options is an error",
			Limits{},
			assert.Error,
		},
		{
			"zero retries is an error",
			func() Limits {
				l := DefLimits
				l.RateLimitRetries = 0
				return l
			}(),
			assert.Error,
		},
		{
			"excessive retries is an error",
			func() Limits {
				l := DefLimits
				l.RateLimitRetries = 100
				return l
			}(),
			assert.Error,
		},
		{
			"zero burst is an error",
			func() Limits {
				l := DefLimits
				l.Tier3.Burst = 0
				return l
			}(),
			assert.Error,
		},
		{
			"page size over the API maximum is an error",
			func() Limits {
				l := DefLimits
				l.Request.Channels = 5000
				return l
			}(),
			assert.Error,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.wantErr(t, tt.limits.Validate(), "Validate()")
		})
	}
}

func TestLimits_Apply(t *testing.T) {
	t.Run("valid limits are applied", func(t *testing.T) {
		l := DefLimits
		other := DefLimits
		other.RateLimitRetries = 7
		other.Tier3.Boost = 0
		assert.NoError(t, l.Apply(other))
		assert.Equal(t, other, l)
	})
	t.Run("invalid limits leave the receiver unchanged", func(t *testing.T) {
		l := DefLimits
		assert.Error(t, l.Apply(Limits{}))
		assert.Equal(t, DefLimits, l)
	})
}

func TestLimits_translations(t *testing.T) {
	err := (&Limits{}).Validate()
	assert.Error(t, err)
	// the error must be translatable for user-facing output.
	assert.NotNil(t, OptErrTranslations)
}

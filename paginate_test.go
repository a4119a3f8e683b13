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

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	t.Run("single page", func(t *testing.T) {
		got, err := paginate(t.Context(), 0, func(ctx context.Context, cursor string) ([]int, string, error) {
			return []int{1, 2, 3}, "", nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, got)
	})
	t.Run("empty result", func(t *testing.T) {
		got, err := paginate(t.Context(), 0, func(ctx context.Context, cursor string) ([]int, string, error) {
			return nil, "", nil
		})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
	t.Run("cursor chain preserves order", func(t *testing.T) {
		var cursors []string
		got, err := paginate(t.Context(), 0, func(ctx context.Context, cursor string) ([]int, string, error) {
			cursors = append(cursors, cursor)
			switch cursor {
			case "":
				return []int{1, 2}, "a", nil
			case "a":
				return []int{3}, "b", nil
			default:
				return []int{4, 5}, "", nil
			}
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
		assert.Equal(t, []string{"", "a", "b"}, cursors)
	})
	t.Run("limit truncates and stops fetching", func(t *testing.T) {
		var calls int
		got, err := paginate(t.Context(), 3, func(ctx context.Context, cursor string) ([]int, string, error) {
			calls++
			return []int{1, 2}, "more", nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 1}, got)
		assert.Equal(t, 2, calls)
	})
	t.Run("error discards accumulated items", func(t *testing.T) {
		boom := errors.New("boom")
		got, err := paginate(t.Context(), 0, func(ctx context.Context, cursor string) ([]int, string, error) {
			if cursor == "" {
				return []int{1, 2}, "next", nil
			}
			return nil, "", boom
		})
		require.ErrorIs(t, err, boom)
		assert.Nil(t, got)
	})
}

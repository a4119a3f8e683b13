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

// In this file: the cursor pagination loop shared by the list operations.

import "context"

// fetchFn fetches one page: given the previous page's continuation cursor
// (empty on the first call) it returns the page items and the next cursor
// (empty when there are no more pages).
type fetchFn[T any] func(ctx context.Context, cursor string) (items []T, next string, err error)

// paginate follows continuation cursors until exhaustion, or until limit
// items have been accumulated (limit <= 0 means no limit).  Items are
// returned in the order the pages delivered them, without reordering or
// deduplication.  If any page fetch fails, the accumulated items are
// discarded and the whole operation fails: no partial-list success.
func paginate[T any](ctx context.Context, limit int, fetch fetchFn[T]) ([]T, error) {
	var (
		all    []T
		cursor string
	)
	for {
		items, next, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if limit > 0 && len(all) >= limit {
			return all[:limit], nil
		}
		if next == "" {
			return all, nil
		}
		cursor = next
	}
}

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

// In this file: message search.  search.messages only accepts a user token,
// so this is the one operation routed to the user client.

import (
	"context"
	"errors"
	"runtime/trace"

	"github.com/rusq/slack"

	"github.com/rusq/slackmcp/auth"
	"github.com/rusq/slackmcp/internal/network"
)

var errEmptyQuery = errors.New("query must not be empty")

// SearchMessages runs the query against the workspace message index and
// returns up to limit matches (all pages when limit <= 0).  The query
// passes through verbatim, including modifiers such as in:#channel and
// from:@user.  search.messages pages by page number, not by cursor.
func (s *Session) SearchMessages(ctx context.Context, query string, limit int) ([]SearchMatch, error) {
	const op = OpSearchMessages
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	if query == "" {
		return nil, invalidArg(op, "query", errEmptyQuery)
	}
	cl, err := s.clientFor(op, auth.ScopeUser)
	if err != nil {
		return nil, err
	}

	params := slack.SearchParameters{
		Sort:          slack.DEFAULT_SEARCH_SORT,
		SortDirection: slack.DEFAULT_SEARCH_SORT_DIR,
		Count:         s.cfg.limits.Request.History,
		Page:          1,
	}
	var matches []SearchMatch
	for {
		var sm *slack.SearchMessages
		if err := s.withRetry(ctx, network.Tier2, func() error {
			var err error
			sm, err = cl.SearchMessagesContext(ctx, query, params)
			return err
		}); err != nil {
			return nil, mapErr(op, err)
		}
		for _, m := range sm.Matches {
			matches = append(matches, newSearchMatch(m))
			if limit > 0 && len(matches) >= limit {
				return matches, nil
			}
		}
		if params.Page >= sm.Paging.Pages {
			break
		}
		params.Page++
	}
	s.log.DebugContext(ctx, "search complete", "matches", len(matches))
	return matches, nil
}

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

// In this file: workspace user directory.

import (
	"context"
	"runtime/trace"

	"github.com/rusq/slack"

	"github.com/rusq/slackmcp/auth"
	"github.com/rusq/slackmcp/internal/network"
)

// ListUsers returns up to limit members of the workspace (all when
// limit <= 0).  The client library pages through users.list internally;
// the page size is set from the limits configuration.
func (s *Session) ListUsers(ctx context.Context, limit int) ([]User, error) {
	const op = OpListUsers
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	cl, err := s.clientFor(op, auth.ScopeBot)
	if err != nil {
		return nil, err
	}

	var users []slack.User
	if err := s.withRetry(ctx, network.Tier2, func() error {
		var err error
		users, err = cl.GetUsersContext(ctx, slack.GetUsersOptionLimit(s.cfg.limits.Request.Users))
		return err
	}); err != nil {
		return nil, mapErr(op, err)
	}
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}

	result := make([]User, 0, len(users))
	for _, u := range users {
		result = append(result, newUser(u))
	}
	s.log.DebugContext(ctx, "listed users", "count", len(result))
	return result, nil
}

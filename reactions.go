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

// In this file: emoji reactions.

import (
	"context"
	"runtime/trace"

	"github.com/rusq/slack"

	"github.com/rusq/slackmcp/auth"
	"github.com/rusq/slackmcp/internal/network"
	"github.com/rusq/slackmcp/internal/structures"
)

// AddReaction puts the named emoji on the message identified by channel and
// timestamp.  The name is bare, without the surrounding colons.  Reacting
// twice with the same emoji is an API error (already_reacted) and is passed
// through as a remote error, not retried.
func (s *Session) AddReaction(ctx context.Context, channelID, timestamp, name string) (*Confirmation, error) {
	const op = OpAddReaction
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	ref, cl, err := s.reactionRef(op, channelID, timestamp, name)
	if err != nil {
		return nil, err
	}
	if err := s.withRetry(ctx, network.Tier3, func() error {
		return cl.AddReactionContext(ctx, name, ref)
	}); err != nil {
		return nil, mapErr(op, err)
	}
	return &Confirmation{OK: true}, nil
}

// RemoveReaction removes the named emoji from the message.  Removing a
// reaction that is not there is an API error (no_reaction), passed through
// as a remote error.
func (s *Session) RemoveReaction(ctx context.Context, channelID, timestamp, name string) (*Confirmation, error) {
	const op = OpRemoveReaction
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	ref, cl, err := s.reactionRef(op, channelID, timestamp, name)
	if err != nil {
		return nil, err
	}
	if err := s.withRetry(ctx, network.Tier3, func() error {
		return cl.RemoveReactionContext(ctx, name, ref)
	}); err != nil {
		return nil, mapErr(op, err)
	}
	return &Confirmation{OK: true}, nil
}

func (s *Session) reactionRef(op, channelID, timestamp, name string) (slack.ItemRef, Slacker, error) {
	if err := structures.ValidateChannelID(channelID); err != nil {
		return slack.ItemRef{}, nil, invalidArg(op, "channel_id", err)
	}
	if err := structures.ValidateSlackTS(timestamp); err != nil {
		return slack.ItemRef{}, nil, invalidArg(op, "ts", err)
	}
	if err := structures.ValidateReaction(name); err != nil {
		return slack.ItemRef{}, nil, invalidArg(op, "name", err)
	}
	cl, err := s.clientFor(op, auth.ScopeBot)
	if err != nil {
		return slack.ItemRef{}, nil, err
	}
	return slack.NewRefToMessage(channelID, timestamp), cl, nil
}

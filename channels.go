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

// In this file: channel listing and history.

import (
	"context"
	"runtime/trace"
	"strings"

	"github.com/rusq/slack"

	"github.com/rusq/slackmcp/auth"
	"github.com/rusq/slackmcp/internal/network"
	"github.com/rusq/slackmcp/internal/structures"
)

// ListChannels returns up to limit conversations visible to the bot (all
// when limit <= 0), following continuation cursors page by page.
func (s *Session) ListChannels(ctx context.Context, limit int) ([]Channel, error) {
	const op = OpListChannels
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	cl, err := s.clientFor(op, auth.ScopeBot)
	if err != nil {
		return nil, err
	}

	lim := s.limiter(network.Tier2)
	cls := s.throttle.Class(network.Tier2)
	params := &slack.GetConversationsParameters{
		Types: AllChanTypes,
		Limit: s.cfg.limits.Request.Channels,
	}
	channels, err := paginate(ctx, limit, func(ctx context.Context, cursor string) ([]slack.Channel, string, error) {
		params.Cursor = cursor
		var (
			page []slack.Channel
			next string
		)
		err := network.WithRetry(ctx, lim, cls, s.cfg.limits.RateLimitRetries, s.cfg.limits.NetworkRetries, func() error {
			var err error
			page, next, err = cl.GetConversationsContext(ctx, params)
			return err
		})
		return page, next, err
	})
	if err != nil {
		return nil, mapErr(op, err)
	}

	result := make([]Channel, 0, len(channels))
	for _, c := range channels {
		result = append(result, newChannel(c))
	}
	s.log.DebugContext(ctx, "listed channels", "count", len(result))
	return result, nil
}

// ChannelHistory returns up to limit messages from the channel, newest
// first, in the order the API delivers them.  oldest and latest optionally
// bound the window; both are Slack fixed-point timestamps.
func (s *Session) ChannelHistory(ctx context.Context, channelID string, limit int, oldest, latest string) ([]Message, error) {
	const op = OpChannelHistory
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	if err := structures.ValidateChannelID(channelID); err != nil {
		return nil, invalidArg(op, "channel_id", err)
	}
	oldest, err := normalizeTS(op, "oldest", oldest)
	if err != nil {
		return nil, err
	}
	latest, err = normalizeTS(op, "latest", latest)
	if err != nil {
		return nil, err
	}
	cl, err := s.clientFor(op, auth.ScopeBot)
	if err != nil {
		return nil, err
	}

	lim := s.limiter(network.Tier3)
	cls := s.throttle.Class(network.Tier3)
	params := &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Limit:     s.cfg.limits.Request.History,
		Oldest:    oldest,
		Latest:    latest,
	}
	messages, err := paginate(ctx, limit, func(ctx context.Context, cursor string) ([]slack.Message, string, error) {
		params.Cursor = cursor
		var resp *slack.GetConversationHistoryResponse
		err := network.WithRetry(ctx, lim, cls, s.cfg.limits.RateLimitRetries, s.cfg.limits.NetworkRetries, func() error {
			var err error
			resp, err = cl.GetConversationHistoryContext(ctx, params)
			return err
		})
		if err != nil {
			return nil, "", err
		}
		return resp.Messages, resp.ResponseMetaData.NextCursor, nil
	})
	if err != nil {
		return nil, mapErr(op, err)
	}

	result := make([]Message, 0, len(messages))
	for _, m := range messages {
		result = append(result, newMessage(m))
	}
	return result, nil
}

// normalizeTS normalizes a window bound: empty passes through, a valid
// fixed-point timestamp passes through verbatim, and plain Unix epoch
// seconds are converted to the fixed-point form the API expects.
func normalizeTS(op, field, v string) (string, error) {
	if v == "" {
		return "", nil
	}
	if err := structures.ValidateSlackTS(v); err == nil {
		return v, nil
	}
	if strings.Contains(v, ".") {
		// fractional but not the 6-digit fixed-point form.
		return "", invalidArg(op, field, structures.ErrInvalidTS)
	}
	t, err := structures.ParseSlackTS(v)
	if err != nil {
		return "", invalidArg(op, field, structures.ErrInvalidTS)
	}
	return structures.FormatSlackTS(t), nil
}

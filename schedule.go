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

// In this file: scheduled messages.

import (
	"context"
	"errors"
	"runtime/trace"
	"strconv"
	"time"

	"github.com/rusq/slack"

	"github.com/rusq/slackmcp/auth"
	"github.com/rusq/slackmcp/internal/network"
	"github.com/rusq/slackmcp/internal/structures"
)

var (
	errPastPostAt = errors.New("post_at must be a future Unix epoch value")
	errEmptyID    = errors.New("scheduled message ID must not be empty")
)

// ScheduleMessage queues text for delivery at postAt (Unix epoch seconds,
// must be in the future) and returns the scheduled message record.  The ID
// in the record is the handle for DeleteScheduledMessage; the caller owns
// it, the proxy keeps no track of outstanding schedules.
//
// chat.scheduleMessage does not return the scheduled message ID through the
// client library, so the handle is resolved by listing the channel's
// scheduled messages and matching the post_at value.
func (s *Session) ScheduleMessage(ctx context.Context, channelID string, postAt int64, text string) (*ScheduledMessage, error) {
	const op = OpScheduleMessage
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	if err := structures.ValidateChannelID(channelID); err != nil {
		return nil, invalidArg(op, "channel_id", err)
	}
	if postAt <= time.Now().Unix() {
		return nil, invalidArg(op, "post_at", errPastPostAt)
	}
	if text == "" {
		return nil, invalidArg(op, "text", errEmptyText)
	}
	cl, err := s.clientFor(op, auth.ScopeBot)
	if err != nil {
		return nil, err
	}

	if err := s.withRetry(ctx, network.Tier3, func() error {
		_, _, err := cl.ScheduleMessageContext(ctx, channelID, strconv.FormatInt(postAt, 10), slack.MsgOptionText(text, false))
		return err
	}); err != nil {
		return nil, mapErr(op, err)
	}

	scheduled, err := s.listScheduled(ctx, op, cl, channelID, 0)
	if err != nil {
		return nil, err
	}
	// pick the newest entry matching the requested delivery time.
	var found *ScheduledMessage
	for i := range scheduled {
		m := scheduled[i]
		if m.Channel == channelID && m.PostAt == postAt {
			if found == nil || m.DateCreated > found.DateCreated {
				found = &scheduled[i]
			}
		}
	}
	if found == nil {
		return nil, &Error{Kind: KindRemote, Op: op, Code: ErrCodeMessageNotFound,
			err: errors.New("scheduled message did not appear in the schedule list")}
	}
	s.log.DebugContext(ctx, "message scheduled", "channel", channelID, "id", found.ID, "post_at", postAt)
	return found, nil
}

// ListScheduledMessages returns the pending scheduled messages, optionally
// restricted to one channel (empty channelID means all).
func (s *Session) ListScheduledMessages(ctx context.Context, channelID string, limit int) ([]ScheduledMessage, error) {
	const op = OpListScheduled
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	if channelID != "" {
		if err := structures.ValidateChannelID(channelID); err != nil {
			return nil, invalidArg(op, "channel_id", err)
		}
	}
	cl, err := s.clientFor(op, auth.ScopeBot)
	if err != nil {
		return nil, err
	}
	return s.listScheduled(ctx, op, cl, channelID, limit)
}

func (s *Session) listScheduled(ctx context.Context, op string, cl Slacker, channelID string, limit int) ([]ScheduledMessage, error) {
	lim := s.limiter(network.Tier3)
	cls := s.throttle.Class(network.Tier3)
	params := &slack.GetScheduledMessagesParameters{
		Channel: channelID,
		Limit:   s.cfg.limits.Request.Scheduled,
	}
	scheduled, err := paginate(ctx, limit, func(ctx context.Context, cursor string) ([]slack.ScheduledMessage, string, error) {
		params.Cursor = cursor
		var (
			page []slack.ScheduledMessage
			next string
		)
		err := network.WithRetry(ctx, lim, cls, s.cfg.limits.RateLimitRetries, s.cfg.limits.NetworkRetries, func() error {
			var err error
			page, next, err = cl.GetScheduledMessagesContext(ctx, params)
			return err
		})
		return page, next, err
	})
	if err != nil {
		return nil, mapErr(op, err)
	}

	result := make([]ScheduledMessage, 0, len(scheduled))
	for _, m := range scheduled {
		result = append(result, newScheduledMessage(m))
	}
	return result, nil
}

// DeleteScheduledMessage cancels the scheduled message identified by the
// handle returned from ScheduleMessage.  Cancelling an unknown or already
// cancelled handle surfaces the API's error as a remote error.
func (s *Session) DeleteScheduledMessage(ctx context.Context, channelID, scheduledMessageID string) (*Confirmation, error) {
	const op = OpDeleteScheduled
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	if err := structures.ValidateChannelID(channelID); err != nil {
		return nil, invalidArg(op, "channel_id", err)
	}
	if scheduledMessageID == "" {
		return nil, invalidArg(op, "scheduled_message_id", errEmptyID)
	}
	cl, err := s.clientFor(op, auth.ScopeBot)
	if err != nil {
		return nil, err
	}

	if err := s.withRetry(ctx, network.Tier3, func() error {
		_, err := cl.DeleteScheduledMessageContext(ctx, &slack.DeleteScheduledMessageParameters{
			Channel:            channelID,
			ScheduledMessageID: scheduledMessageID,
		})
		return err
	}); err != nil {
		return nil, mapErr(op, err)
	}
	return &Confirmation{OK: true}, nil
}

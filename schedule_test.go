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
	"strconv"
	"testing"
	"time"

	"github.com/rusq/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ScheduleMessage(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()

	t.Run("past post_at is invalid", func(t *testing.T) {
		s := testSession(t, nil)
		_, err := s.ScheduleMessage(t.Context(), "C10000000", time.Now().Add(-time.Hour).Unix(), "later")
		require.Error(t, err)
		assert.True(t, IsKind(err, KindInvalidArgument))
		assert.ErrorContains(t, err, "post_at")
	})
	t.Run("schedules and resolves the handle", func(t *testing.T) {
		bot := &fakeSlack{
			tb: t,
			scheduleMessageFn: func(ctx context.Context, channelID, postAt string, options ...slack.MsgOption) (string, string, error) {
				assert.Equal(t, strconv.FormatInt(future, 10), postAt)
				return channelID, "", nil
			},
			getScheduledFn: func(ctx context.Context, params *slack.GetScheduledMessagesParameters) ([]slack.ScheduledMessage, string, error) {
				return []slack.ScheduledMessage{
					{ID: "Q0000000001", Channel: "C10000000", PostAt: int(future) - 60, DateCreated: 100},
					{ID: "Q0000000002", Channel: "C10000000", PostAt: int(future), DateCreated: 200},
					{ID: "Q0000000003", Channel: "C10000000", PostAt: int(future), DateCreated: 300},
				}, "", nil
			},
		}
		s := testSession(t, bot)

		sm, err := s.ScheduleMessage(t.Context(), "C10000000", future, "later")
		require.NoError(t, err)
		// newest matching entry wins.
		assert.Equal(t, "Q0000000003", sm.ID)
		assert.Equal(t, future, sm.PostAt)
	})
	t.Run("handle missing from the list", func(t *testing.T) {
		bot := &fakeSlack{
			tb: t,
			scheduleMessageFn: func(ctx context.Context, channelID, postAt string, options ...slack.MsgOption) (string, string, error) {
				return channelID, "", nil
			},
			getScheduledFn: func(ctx context.Context, params *slack.GetScheduledMessagesParameters) ([]slack.ScheduledMessage, string, error) {
				return nil, "", nil
			},
		}
		s := testSession(t, bot)

		_, err := s.ScheduleMessage(t.Context(), "C10000000", future, "later")
		require.Error(t, err)
		assert.True(t, IsKind(err, KindRemote))
	})
}

func TestSession_ListScheduledMessages(t *testing.T) {
	t.Run("pages through the schedule", func(t *testing.T) {
		bot := &fakeSlack{tb: t, getScheduledFn: func(ctx context.Context, params *slack.GetScheduledMessagesParameters) ([]slack.ScheduledMessage, string, error) {
			if params.Cursor == "" {
				return []slack.ScheduledMessage{{ID: "Q0000000001", Channel: "C10000000", PostAt: 1767225600}}, "p2", nil
			}
			return []slack.ScheduledMessage{{ID: "Q0000000002", Channel: "C10000000", PostAt: 1767312000}}, "", nil
		}}
		s := testSession(t, bot)

		msgs, err := s.ListScheduledMessages(t.Context(), "C10000000", 0)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "Q0000000001", msgs[0].ID)
		assert.Equal(t, "Q0000000002", msgs[1].ID)
	})
	t.Run("invalid channel filter", func(t *testing.T) {
		s := testSession(t, nil)
		_, err := s.ListScheduledMessages(t.Context(), "general", 0)
		assert.True(t, IsKind(err, KindInvalidArgument))
	})
}

func TestSession_DeleteScheduledMessage(t *testing.T) {
	t.Run("cancels", func(t *testing.T) {
		bot := &fakeSlack{tb: t, deleteScheduledFn: func(ctx context.Context, params *slack.DeleteScheduledMessageParameters) (bool, error) {
			assert.Equal(t, "Q0000000001", params.ScheduledMessageID)
			return true, nil
		}}
		s := testSession(t, bot)

		c, err := s.DeleteScheduledMessage(t.Context(), "C10000000", "Q0000000001")
		require.NoError(t, err)
		assert.True(t, c.OK)
	})
	t.Run("double delete is a remote error", func(t *testing.T) {
		var deleted bool
		bot := &fakeSlack{tb: t, deleteScheduledFn: func(ctx context.Context, params *slack.DeleteScheduledMessageParameters) (bool, error) {
			if deleted {
				return false, slack.SlackErrorResponse{Err: "invalid_scheduled_message_id"}
			}
			deleted = true
			return true, nil
		}}
		s := testSession(t, bot)

		_, err := s.DeleteScheduledMessage(t.Context(), "C10000000", "Q0000000001")
		require.NoError(t, err)
		_, err = s.DeleteScheduledMessage(t.Context(), "C10000000", "Q0000000001")
		require.Error(t, err)
		assert.True(t, IsRemote(err, ErrCodeInvalidSchedule))
	})
	t.Run("empty handle is invalid", func(t *testing.T) {
		s := testSession(t, nil)
		_, err := s.DeleteScheduledMessage(t.Context(), "C10000000", "")
		assert.True(t, IsKind(err, KindInvalidArgument))
	})
}

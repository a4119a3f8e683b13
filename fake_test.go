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
	"testing"

	"github.com/rusq/slack"
	"github.com/stretchr/testify/require"

	"github.com/rusq/slackmcp/auth"
)

// fakeSlack implements Slacker with pluggable function fields.  Calls to
// methods without a function set fail the calling test via the embedded
// testing.TB.
type fakeSlack struct {
	tb testing.TB

	authTestFn          func(ctx context.Context) (*slack.AuthTestResponse, error)
	getConversationsFn  func(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
	getHistoryFn        func(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	getUsersFn          func(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error)
	openConversationFn  func(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error)
	postMessageFn       func(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	updateMessageFn     func(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error)
	deleteMessageFn     func(ctx context.Context, channel, messageTimestamp string) (string, string, error)
	scheduleMessageFn   func(ctx context.Context, channelID, postAt string, options ...slack.MsgOption) (string, string, error)
	getScheduledFn      func(ctx context.Context, params *slack.GetScheduledMessagesParameters) ([]slack.ScheduledMessage, string, error)
	deleteScheduledFn   func(ctx context.Context, params *slack.DeleteScheduledMessageParameters) (bool, error)
	addReactionFn       func(ctx context.Context, name string, item slack.ItemRef) error
	removeReactionFn    func(ctx context.Context, name string, item slack.ItemRef) error
	searchMessagesFn    func(ctx context.Context, query string, params slack.SearchParameters) (*slack.SearchMessages, error)
	uploadFileFn      func(ctx context.Context, params slack.UploadFileParameters) (*slack.FileSummary, error)
}

func (f *fakeSlack) unexpected(name string) {
	f.tb.Helper()
	f.tb.Fatalf("unexpected call to %s", name)
}

func (f *fakeSlack) AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error) {
	if f.authTestFn == nil {
		return &slack.AuthTestResponse{Team: "testers", TeamID: "T10000000", User: "proxybot", UserID: "U10000000"}, nil
	}
	return f.authTestFn(ctx)
}

func (f *fakeSlack) GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error) {
	if f.getConversationsFn == nil {
		f.unexpected("GetConversationsContext")
	}
	return f.getConversationsFn(ctx, params)
}

func (f *fakeSlack) GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error) {
	if f.getHistoryFn == nil {
		f.unexpected("GetConversationHistoryContext")
	}
	return f.getHistoryFn(ctx, params)
}

func (f *fakeSlack) GetUsersContext(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error) {
	if f.getUsersFn == nil {
		f.unexpected("GetUsersContext")
	}
	return f.getUsersFn(ctx, options...)
}

func (f *fakeSlack) OpenConversationContext(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error) {
	if f.openConversationFn == nil {
		f.unexpected("OpenConversationContext")
	}
	return f.openConversationFn(ctx, params)
}

func (f *fakeSlack) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	if f.postMessageFn == nil {
		f.unexpected("PostMessageContext")
	}
	return f.postMessageFn(ctx, channelID, options...)
}

func (f *fakeSlack) UpdateMessageContext(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error) {
	if f.updateMessageFn == nil {
		f.unexpected("UpdateMessageContext")
	}
	return f.updateMessageFn(ctx, channelID, timestamp, options...)
}

func (f *fakeSlack) DeleteMessageContext(ctx context.Context, channel, messageTimestamp string) (string, string, error) {
	if f.deleteMessageFn == nil {
		f.unexpected("DeleteMessageContext")
	}
	return f.deleteMessageFn(ctx, channel, messageTimestamp)
}

func (f *fakeSlack) ScheduleMessageContext(ctx context.Context, channelID, postAt string, options ...slack.MsgOption) (string, string, error) {
	if f.scheduleMessageFn == nil {
		f.unexpected("ScheduleMessageContext")
	}
	return f.scheduleMessageFn(ctx, channelID, postAt, options...)
}

func (f *fakeSlack) GetScheduledMessagesContext(ctx context.Context, params *slack.GetScheduledMessagesParameters) ([]slack.ScheduledMessage, string, error) {
	if f.getScheduledFn == nil {
		f.unexpected("GetScheduledMessagesContext")
	}
	return f.getScheduledFn(ctx, params)
}

func (f *fakeSlack) DeleteScheduledMessageContext(ctx context.Context, params *slack.DeleteScheduledMessageParameters) (bool, error) {
	if f.deleteScheduledFn == nil {
		f.unexpected("DeleteScheduledMessageContext")
	}
	return f.deleteScheduledFn(ctx, params)
}

func (f *fakeSlack) AddReactionContext(ctx context.Context, name string, item slack.ItemRef) error {
	if f.addReactionFn == nil {
		f.unexpected("AddReactionContext")
	}
	return f.addReactionFn(ctx, name, item)
}

func (f *fakeSlack) RemoveReactionContext(ctx context.Context, name string, item slack.ItemRef) error {
	if f.removeReactionFn == nil {
		f.unexpected("RemoveReactionContext")
	}
	return f.removeReactionFn(ctx, name, item)
}

func (f *fakeSlack) SearchMessagesContext(ctx context.Context, query string, params slack.SearchParameters) (*slack.SearchMessages, error) {
	if f.searchMessagesFn == nil {
		f.unexpected("SearchMessagesContext")
	}
	return f.searchMessagesFn(ctx, query, params)
}

func (f *fakeSlack) UploadFileContext(ctx context.Context, params slack.UploadFileParameters) (*slack.FileSummary, error) {
	if f.uploadFileFn == nil {
		f.unexpected("UploadFileContext")
	}
	return f.uploadFileFn(ctx, params)
}

// testSession creates a Session around the fake bot client (and the optional
// user client) without hitting the network.
func testSession(t *testing.T, bot *fakeSlack, opts ...Option) *Session {
	t.Helper()
	if bot == nil {
		bot = &fakeSlack{tb: t}
	}
	bot.tb = t
	opts = append([]Option{WithBotClient(bot)}, opts...)
	s, err := New(t.Context(), auth.Creds{}, opts...)
	require.NoError(t, err)
	return s
}

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

// In this file: message send, reply, update, delete and direct messages.

import (
	"context"
	"errors"
	"runtime/trace"

	"github.com/rusq/slack"

	"github.com/rusq/slackmcp/auth"
	"github.com/rusq/slackmcp/internal/network"
	"github.com/rusq/slackmcp/internal/structures"
)

var errEmptyText = errors.New("text must not be empty")

// SendMessage posts text to the channel and returns the posted message
// identity.
func (s *Session) SendMessage(ctx context.Context, channelID, text string) (*PostedMessage, error) {
	return s.sendMessage(ctx, OpSendMessage, channelID, text, "")
}

// SendReply posts text as a threaded reply to the message identified by
// threadTS.
func (s *Session) SendReply(ctx context.Context, channelID, threadTS, text string) (*PostedMessage, error) {
	const op = OpSendReply
	if err := structures.ValidateSlackTS(threadTS); err != nil {
		return nil, invalidArg(op, "thread_ts", err)
	}
	return s.sendMessage(ctx, op, channelID, text, threadTS)
}

func (s *Session) sendMessage(ctx context.Context, op, channelID, text, threadTS string) (*PostedMessage, error) {
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	if err := structures.ValidateChannelID(channelID); err != nil {
		return nil, invalidArg(op, "channel_id", err)
	}
	if text == "" {
		return nil, invalidArg(op, "text", errEmptyText)
	}
	cl, err := s.clientFor(op, auth.ScopeBot)
	if err != nil {
		return nil, err
	}

	options := []slack.MsgOption{slack.MsgOptionText(text, false)}
	if threadTS != "" {
		options = append(options, slack.MsgOptionTS(threadTS))
	}

	var respChannel, respTS string
	if err := s.withRetry(ctx, network.Tier3, func() error {
		var err error
		respChannel, respTS, err = cl.PostMessageContext(ctx, channelID, options...)
		return err
	}); err != nil {
		return nil, mapErr(op, err)
	}
	s.log.DebugContext(ctx, "message posted", "channel", respChannel, "ts", respTS)
	return &PostedMessage{Channel: respChannel, Timestamp: respTS}, nil
}

// UpdateMessage replaces the text of the message identified by channel and
// timestamp.
func (s *Session) UpdateMessage(ctx context.Context, channelID, timestamp, text string) (*UpdatedMessage, error) {
	const op = OpUpdateMessage
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	if err := structures.ValidateChannelID(channelID); err != nil {
		return nil, invalidArg(op, "channel_id", err)
	}
	if err := structures.ValidateSlackTS(timestamp); err != nil {
		return nil, invalidArg(op, "ts", err)
	}
	if text == "" {
		return nil, invalidArg(op, "text", errEmptyText)
	}
	cl, err := s.clientFor(op, auth.ScopeBot)
	if err != nil {
		return nil, err
	}

	var respChannel, respTS, respText string
	if err := s.withRetry(ctx, network.Tier3, func() error {
		var err error
		respChannel, respTS, respText, err = cl.UpdateMessageContext(ctx, channelID, timestamp, slack.MsgOptionText(text, false))
		return err
	}); err != nil {
		return nil, mapErr(op, err)
	}
	return &UpdatedMessage{Channel: respChannel, Timestamp: respTS, Text: respText}, nil
}

// DeleteMessage removes the message identified by channel and timestamp.
func (s *Session) DeleteMessage(ctx context.Context, channelID, timestamp string) (*DeletedMessage, error) {
	const op = OpDeleteMessage
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	if err := structures.ValidateChannelID(channelID); err != nil {
		return nil, invalidArg(op, "channel_id", err)
	}
	if err := structures.ValidateSlackTS(timestamp); err != nil {
		return nil, invalidArg(op, "ts", err)
	}
	cl, err := s.clientFor(op, auth.ScopeBot)
	if err != nil {
		return nil, err
	}

	var respChannel, respTS string
	if err := s.withRetry(ctx, network.Tier3, func() error {
		var err error
		respChannel, respTS, err = cl.DeleteMessageContext(ctx, channelID, timestamp)
		return err
	}); err != nil {
		return nil, mapErr(op, err)
	}
	return &DeletedMessage{Channel: respChannel, Timestamp: respTS}, nil
}

// SendDirectMessage opens (or finds) the direct message conversation with
// the user and posts text into it.
func (s *Session) SendDirectMessage(ctx context.Context, userID, text string) (*PostedMessage, error) {
	const op = OpSendDM
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	if err := structures.ValidateUserID(userID); err != nil {
		return nil, invalidArg(op, "user_id", err)
	}
	if text == "" {
		return nil, invalidArg(op, "text", errEmptyText)
	}
	cl, err := s.clientFor(op, auth.ScopeBot)
	if err != nil {
		return nil, err
	}

	var im *slack.Channel
	if err := s.withRetry(ctx, network.Tier3, func() error {
		var err error
		im, _, _, err = cl.OpenConversationContext(ctx, &slack.OpenConversationParameters{
			Users:    []string{userID},
			ReturnIM: true,
		})
		return err
	}); err != nil {
		return nil, mapErr(op, err)
	}

	var respChannel, respTS string
	if err := s.withRetry(ctx, network.Tier3, func() error {
		var err error
		respChannel, respTS, err = cl.PostMessageContext(ctx, im.ID, slack.MsgOptionText(text, false))
		return err
	}); err != nil {
		return nil, mapErr(op, err)
	}
	return &PostedMessage{Channel: respChannel, Timestamp: respTS}, nil
}

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

// In this file: the operation catalog and the dispatcher.  The catalog is
// the single source of truth for the operation names, their argument
// schemas and the credential scope each one requires; the MCP surface is
// generated from it, so adding an operation here is all it takes to expose
// a new tool.

import (
	"context"
	"fmt"

	"github.com/rusq/slackmcp/auth"
)

// Operation names, as exposed to the calling agent.
const (
	OpListChannels    = "get_slack_channels"
	OpChannelHistory  = "get_slack_channel_history"
	OpSendMessage     = "send_slack_message"
	OpSendReply       = "send_slack_reply"
	OpUpdateMessage   = "update_slack_message"
	OpDeleteMessage   = "delete_slack_message"
	OpScheduleMessage = "schedule_slack_message"
	OpListScheduled   = "list_slack_scheduled_messages"
	OpDeleteScheduled = "delete_slack_scheduled_message"
	OpSendDM          = "send_slack_direct_message"
	OpUploadFile      = "upload_slack_file"
	OpAddReaction     = "add_slack_reaction"
	OpRemoveReaction  = "remove_slack_reaction"
	OpSearchMessages  = "search_slack_messages"
	OpListUsers       = "get_slack_users"
)

// ArgKind is the wire type of a tool argument.
type ArgKind int

const (
	ArgString ArgKind = iota
	ArgInt
	ArgBool
)

// ArgSpec describes one argument of an operation.
type ArgSpec struct {
	Name     string
	Kind     ArgKind
	Required bool
	Help     string
}

// Args is the raw argument map of a tool invocation, as decoded from JSON.
type Args map[string]any

// Descriptor describes one operation: its name, help text, argument schema,
// the credential scope it needs and the handler that runs it.
type Descriptor struct {
	Name    string
	Help    string
	Scope   auth.Scope
	Args    []ArgSpec
	handler func(ctx context.Context, s *Session, a Args) (any, error)
}

// reqString extracts a required string argument.  Absent and empty are both
// reported as a missing argument; wrong type is an invalid argument.
func (a Args) reqString(op, name string) (string, error) {
	v, ok := a[name]
	if !ok {
		return "", missingArg(op, name)
	}
	sv, ok := v.(string)
	if !ok {
		return "", invalidArg(op, name, fmt.Errorf("expected a string, got %T", v))
	}
	if sv == "" {
		return "", missingArg(op, name)
	}
	return sv, nil
}

// optString extracts an optional string argument, returning def when absent.
func (a Args) optString(op, name, def string) (string, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return def, nil
	}
	sv, ok := v.(string)
	if !ok {
		return "", invalidArg(op, name, fmt.Errorf("expected a string, got %T", v))
	}
	return sv, nil
}

// optInt extracts an optional integer argument.  JSON numbers arrive as
// float64; integral values of either numeric type are accepted.
func (a Args) optInt(op, name string, def int64) (int64, error) {
	v, ok := a[name]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int64(n)) {
			return 0, invalidArg(op, name, fmt.Errorf("expected an integer, got %v", n))
		}
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, invalidArg(op, name, fmt.Errorf("expected an integer, got %T", v))
	}
}

// reqInt extracts a required integer argument.
func (a Args) reqInt(op, name string) (int64, error) {
	if _, ok := a[name]; !ok {
		return 0, missingArg(op, name)
	}
	return a.optInt(op, name, 0)
}

// Catalog returns the operation descriptors in a stable order.
func (s *Session) Catalog() []*Descriptor {
	cat := make([]*Descriptor, 0, len(catalogOrder))
	for _, name := range catalogOrder {
		cat = append(cat, s.ops[name])
	}
	return cat
}

// Dispatch looks the operation up by name and runs it with the given
// arguments.  An unknown name fails with an unknown-operation error and the
// catalogue is never consulted twice: one invocation, one API conversation.
func (s *Session) Dispatch(ctx context.Context, name string, args Args) (any, error) {
	d, ok := s.ops[name]
	if !ok {
		return nil, &Error{
			Kind: KindUnknownOperation,
			Op:   name,
			err:  fmt.Errorf("operation %q is not in the catalog", name),
		}
	}
	return d.handler(ctx, s, args)
}

// catalogOrder fixes the order operations are listed in.
var catalogOrder = []string{
	OpListChannels,
	OpChannelHistory,
	OpSendMessage,
	OpSendReply,
	OpUpdateMessage,
	OpDeleteMessage,
	OpScheduleMessage,
	OpListScheduled,
	OpDeleteScheduled,
	OpSendDM,
	OpUploadFile,
	OpAddReaction,
	OpRemoveReaction,
	OpSearchMessages,
	OpListUsers,
}

// Common argument help strings.
const (
	helpChannelID = "Channel ID (e.g. C1234567890)"
	helpTS        = "Message timestamp (e.g. 1234567890.123456)"
	helpLimit     = "Maximum number of results to return (0 for no limit)"
)

func (s *Session) buildCatalog() {
	catalog := []*Descriptor{
		{
			Name:  OpListChannels,
			Help:  "List the conversations in the workspace: public and private channels, group and direct messages.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "limit", Kind: ArgInt, Help: helpLimit},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				limit, err := a.optInt(OpListChannels, "limit", 0)
				if err != nil {
					return nil, err
				}
				return s.ListChannels(ctx, int(limit))
			},
		},
		{
			Name:  OpChannelHistory,
			Help:  "Fetch recent messages from a channel, newest first.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "channel_id", Kind: ArgString, Required: true, Help: helpChannelID},
				{Name: "limit", Kind: ArgInt, Help: helpLimit},
				{Name: "oldest", Kind: ArgString, Help: "Only messages after this time (fixed-point timestamp or Unix epoch seconds)"},
				{Name: "latest", Kind: ArgString, Help: "Only messages before this time (fixed-point timestamp or Unix epoch seconds)"},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				channel, err := a.reqString(OpChannelHistory, "channel_id")
				if err != nil {
					return nil, err
				}
				limit, err := a.optInt(OpChannelHistory, "limit", 0)
				if err != nil {
					return nil, err
				}
				oldest, err := a.optString(OpChannelHistory, "oldest", "")
				if err != nil {
					return nil, err
				}
				latest, err := a.optString(OpChannelHistory, "latest", "")
				if err != nil {
					return nil, err
				}
				return s.ChannelHistory(ctx, channel, int(limit), oldest, latest)
			},
		},
		{
			Name:  OpSendMessage,
			Help:  "Post a message to a channel.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "channel_id", Kind: ArgString, Required: true, Help: helpChannelID},
				{Name: "text", Kind: ArgString, Required: true, Help: "Message text"},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				channel, err := a.reqString(OpSendMessage, "channel_id")
				if err != nil {
					return nil, err
				}
				text, err := a.reqString(OpSendMessage, "text")
				if err != nil {
					return nil, err
				}
				return s.SendMessage(ctx, channel, text)
			},
		},
		{
			Name:  OpSendReply,
			Help:  "Post a threaded reply to an existing message.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "channel_id", Kind: ArgString, Required: true, Help: helpChannelID},
				{Name: "thread_ts", Kind: ArgString, Required: true, Help: "Timestamp of the parent message"},
				{Name: "text", Kind: ArgString, Required: true, Help: "Reply text"},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				channel, err := a.reqString(OpSendReply, "channel_id")
				if err != nil {
					return nil, err
				}
				threadTS, err := a.reqString(OpSendReply, "thread_ts")
				if err != nil {
					return nil, err
				}
				text, err := a.reqString(OpSendReply, "text")
				if err != nil {
					return nil, err
				}
				return s.SendReply(ctx, channel, threadTS, text)
			},
		},
		{
			Name:  OpUpdateMessage,
			Help:  "Replace the text of an existing message.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "channel_id", Kind: ArgString, Required: true, Help: helpChannelID},
				{Name: "ts", Kind: ArgString, Required: true, Help: helpTS},
				{Name: "text", Kind: ArgString, Required: true, Help: "New message text"},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				channel, err := a.reqString(OpUpdateMessage, "channel_id")
				if err != nil {
					return nil, err
				}
				ts, err := a.reqString(OpUpdateMessage, "ts")
				if err != nil {
					return nil, err
				}
				text, err := a.reqString(OpUpdateMessage, "text")
				if err != nil {
					return nil, err
				}
				return s.UpdateMessage(ctx, channel, ts, text)
			},
		},
		{
			Name:  OpDeleteMessage,
			Help:  "Delete a message.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "channel_id", Kind: ArgString, Required: true, Help: helpChannelID},
				{Name: "ts", Kind: ArgString, Required: true, Help: helpTS},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				channel, err := a.reqString(OpDeleteMessage, "channel_id")
				if err != nil {
					return nil, err
				}
				ts, err := a.reqString(OpDeleteMessage, "ts")
				if err != nil {
					return nil, err
				}
				return s.DeleteMessage(ctx, channel, ts)
			},
		},
		{
			Name:  OpScheduleMessage,
			Help:  "Schedule a message for future delivery.  Returns the scheduled message ID needed to cancel it.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "channel_id", Kind: ArgString, Required: true, Help: helpChannelID},
				{Name: "post_at", Kind: ArgInt, Required: true, Help: "Delivery time as a Unix epoch, must be in the future"},
				{Name: "text", Kind: ArgString, Required: true, Help: "Message text"},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				channel, err := a.reqString(OpScheduleMessage, "channel_id")
				if err != nil {
					return nil, err
				}
				postAt, err := a.reqInt(OpScheduleMessage, "post_at")
				if err != nil {
					return nil, err
				}
				text, err := a.reqString(OpScheduleMessage, "text")
				if err != nil {
					return nil, err
				}
				return s.ScheduleMessage(ctx, channel, postAt, text)
			},
		},
		{
			Name:  OpListScheduled,
			Help:  "List pending scheduled messages, optionally for one channel.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "channel_id", Kind: ArgString, Help: helpChannelID},
				{Name: "limit", Kind: ArgInt, Help: helpLimit},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				channel, err := a.optString(OpListScheduled, "channel_id", "")
				if err != nil {
					return nil, err
				}
				limit, err := a.optInt(OpListScheduled, "limit", 0)
				if err != nil {
					return nil, err
				}
				return s.ListScheduledMessages(ctx, channel, int(limit))
			},
		},
		{
			Name:  OpDeleteScheduled,
			Help:  "Cancel a scheduled message before it is delivered.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "channel_id", Kind: ArgString, Required: true, Help: helpChannelID},
				{Name: "scheduled_message_id", Kind: ArgString, Required: true, Help: "ID returned by schedule_slack_message"},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				channel, err := a.reqString(OpDeleteScheduled, "channel_id")
				if err != nil {
					return nil, err
				}
				id, err := a.reqString(OpDeleteScheduled, "scheduled_message_id")
				if err != nil {
					return nil, err
				}
				return s.DeleteScheduledMessage(ctx, channel, id)
			},
		},
		{
			Name:  OpSendDM,
			Help:  "Send a direct message to a user.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "user_id", Kind: ArgString, Required: true, Help: "User ID (e.g. U1234567890)"},
				{Name: "text", Kind: ArgString, Required: true, Help: "Message text"},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				user, err := a.reqString(OpSendDM, "user_id")
				if err != nil {
					return nil, err
				}
				text, err := a.reqString(OpSendDM, "text")
				if err != nil {
					return nil, err
				}
				return s.SendDirectMessage(ctx, user, text)
			},
		},
		{
			Name:  OpUploadFile,
			Help:  "Upload a text file to a channel.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "channel_id", Kind: ArgString, Required: true, Help: helpChannelID},
				{Name: "filename", Kind: ArgString, Required: true, Help: "Name of the file, without a path"},
				{Name: "content", Kind: ArgString, Required: true, Help: "File contents"},
				{Name: "title", Kind: ArgString, Help: "File title, defaults to the filename"},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				channel, err := a.reqString(OpUploadFile, "channel_id")
				if err != nil {
					return nil, err
				}
				filename, err := a.reqString(OpUploadFile, "filename")
				if err != nil {
					return nil, err
				}
				content, err := a.reqString(OpUploadFile, "content")
				if err != nil {
					return nil, err
				}
				title, err := a.optString(OpUploadFile, "title", "")
				if err != nil {
					return nil, err
				}
				return s.UploadFile(ctx, channel, filename, title, content)
			},
		},
		{
			Name:  OpAddReaction,
			Help:  "Add an emoji reaction to a message.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "channel_id", Kind: ArgString, Required: true, Help: helpChannelID},
				{Name: "ts", Kind: ArgString, Required: true, Help: helpTS},
				{Name: "name", Kind: ArgString, Required: true, Help: "Emoji name without colons (e.g. thumbsup)"},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				channel, err := a.reqString(OpAddReaction, "channel_id")
				if err != nil {
					return nil, err
				}
				ts, err := a.reqString(OpAddReaction, "ts")
				if err != nil {
					return nil, err
				}
				name, err := a.reqString(OpAddReaction, "name")
				if err != nil {
					return nil, err
				}
				return s.AddReaction(ctx, channel, ts, name)
			},
		},
		{
			Name:  OpRemoveReaction,
			Help:  "Remove an emoji reaction from a message.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "channel_id", Kind: ArgString, Required: true, Help: helpChannelID},
				{Name: "ts", Kind: ArgString, Required: true, Help: helpTS},
				{Name: "name", Kind: ArgString, Required: true, Help: "Emoji name without colons"},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				channel, err := a.reqString(OpRemoveReaction, "channel_id")
				if err != nil {
					return nil, err
				}
				ts, err := a.reqString(OpRemoveReaction, "ts")
				if err != nil {
					return nil, err
				}
				name, err := a.reqString(OpRemoveReaction, "name")
				if err != nil {
					return nil, err
				}
				return s.RemoveReaction(ctx, channel, ts, name)
			},
		},
		{
			Name:  OpSearchMessages,
			Help:  "Search workspace messages.  Requires a user token; supports modifiers such as in:#channel and from:@user.",
			Scope: auth.ScopeUser,
			Args: []ArgSpec{
				{Name: "query", Kind: ArgString, Required: true, Help: "Search query"},
				{Name: "limit", Kind: ArgInt, Help: helpLimit},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				query, err := a.reqString(OpSearchMessages, "query")
				if err != nil {
					return nil, err
				}
				limit, err := a.optInt(OpSearchMessages, "limit", 0)
				if err != nil {
					return nil, err
				}
				return s.SearchMessages(ctx, query, int(limit))
			},
		},
		{
			Name:  OpListUsers,
			Help:  "List the members of the workspace.",
			Scope: auth.ScopeBot,
			Args: []ArgSpec{
				{Name: "limit", Kind: ArgInt, Help: helpLimit},
			},
			handler: func(ctx context.Context, s *Session, a Args) (any, error) {
				limit, err := a.optInt(OpListUsers, "limit", 0)
				if err != nil {
					return nil, err
				}
				return s.ListUsers(ctx, int(limit))
			},
		},
	}
	s.ops = make(map[string]*Descriptor, len(catalog))
	for _, d := range catalog {
		s.ops[d.Name] = d
	}
}

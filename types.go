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

// In this file: the result records of the tool operations.  Only the fields
// declared here are ever returned to the calling agent; anything else the
// API sends is dropped, so the tool contract stays stable when the API grows
// new fields.

import (
	"time"

	"github.com/rusq/slack"

	"github.com/rusq/slackmcp/internal/structures"
)

// Channel is a summary of a Slack conversation.
type Channel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsChannel   bool   `json:"is_channel,omitempty"`
	IsGroup     bool   `json:"is_group,omitempty"`
	IsIM        bool   `json:"is_im,omitempty"`
	IsMPIM      bool   `json:"is_mpim,omitempty"`
	IsArchived  bool   `json:"is_archived,omitempty"`
	MemberCount int    `json:"member_count,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
}

func newChannel(c slack.Channel) Channel {
	return Channel{
		ID:          c.ID,
		Name:        c.Name,
		IsChannel:   c.IsChannel,
		IsGroup:     c.IsGroup,
		IsIM:        c.IsIM,
		IsMPIM:      c.IsMpIM,
		IsArchived:  c.IsArchived,
		MemberCount: c.NumMembers,
		Topic:       c.Topic.Value,
		Purpose:     c.Purpose.Value,
	}
}

// Message is a summary of a channel message.  Time is the RFC3339
// rendering of the timestamp, included so that callers do not have to
// decode the fixed-point format.
type Message struct {
	Timestamp  string `json:"ts"`
	Time       string `json:"time,omitempty"`
	UserID     string `json:"user,omitempty"`
	Text       string `json:"text,omitempty"`
	ReplyCount int    `json:"reply_count,omitempty"`
	ThreadTS   string `json:"thread_ts,omitempty"`
	Subtype    string `json:"subtype,omitempty"`
}

func newMessage(m slack.Message) Message {
	var when string
	if t, err := structures.ParseSlackTS(m.Timestamp); err == nil {
		when = t.Format(time.RFC3339)
	}
	return Message{
		Timestamp:  m.Timestamp,
		Time:       when,
		UserID:     m.User,
		Text:       m.Text,
		ReplyCount: m.ReplyCount,
		ThreadTS:   m.ThreadTimestamp,
		Subtype:    m.SubType,
	}
}

// User is a summary of a workspace member.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	RealName    string `json:"real_name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	IsBot       bool   `json:"is_bot,omitempty"`
	IsDeleted   bool   `json:"is_deleted,omitempty"`
	TZ          string `json:"tz,omitempty"`
}

func newUser(u slack.User) User {
	return User{
		ID:          u.ID,
		Name:        u.Name,
		RealName:    u.RealName,
		DisplayName: u.Profile.DisplayName,
		Email:       u.Profile.Email,
		IsBot:       u.IsBot,
		IsDeleted:   u.Deleted,
		TZ:          u.TZ,
	}
}

// PostedMessage identifies a message that was just sent.
type PostedMessage struct {
	Channel   string `json:"channel"`
	Timestamp string `json:"ts"`
}

// UpdatedMessage confirms a message edit.
type UpdatedMessage struct {
	Channel   string `json:"channel"`
	Timestamp string `json:"ts"`
	Text      string `json:"text,omitempty"`
}

// DeletedMessage confirms a message deletion.
type DeletedMessage struct {
	Channel   string `json:"channel"`
	Timestamp string `json:"ts"`
}

// ScheduledMessage is a message queued for future delivery.  ID is the
// handle to cancel it with; the caller owns it, the proxy does not track
// outstanding handles.
type ScheduledMessage struct {
	ID          string `json:"id"`
	Channel     string `json:"channel"`
	PostAt      int64  `json:"post_at"`
	DateCreated int64  `json:"date_created,omitempty"`
	Text        string `json:"text,omitempty"`
}

func newScheduledMessage(m slack.ScheduledMessage) ScheduledMessage {
	return ScheduledMessage{
		ID:          m.ID,
		Channel:     m.Channel,
		PostAt:      int64(m.PostAt),
		DateCreated: int64(m.DateCreated),
		Text:        m.Text,
	}
}

// SearchMatch is one hit of a message search.
type SearchMatch struct {
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name,omitempty"`
	UserID      string `json:"user,omitempty"`
	Username    string `json:"username,omitempty"`
	Timestamp   string `json:"ts"`
	Text        string `json:"text,omitempty"`
	Permalink   string `json:"permalink,omitempty"`
}

func newSearchMatch(m slack.SearchMessage) SearchMatch {
	return SearchMatch{
		ChannelID:   m.Channel.ID,
		ChannelName: m.Channel.Name,
		UserID:      m.User,
		Username:    m.Username,
		Timestamp:   m.Timestamp,
		Text:        m.Text,
		Permalink:   m.Permalink,
	}
}

// File is a summary of an uploaded file.
type File struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// Confirmation is the result of operations that have nothing to return
// beyond success.
type Confirmation struct {
	OK bool `json:"ok"`
}

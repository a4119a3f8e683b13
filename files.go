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

// In this file: file uploads.

import (
	"context"
	"errors"
	"path/filepath"
	"runtime/trace"
	"strings"

	"github.com/rusq/slack"

	"github.com/rusq/slackmcp/auth"
	"github.com/rusq/slackmcp/internal/network"
	"github.com/rusq/slackmcp/internal/structures"
)

var (
	errBadFilename  = errors.New("filename must be a bare name without a path")
	errEmptyContent = errors.New("content must not be empty")
)

// UploadFile uploads content to the channel under the given filename using
// the external upload flow (files.getUploadURLExternal followed by
// files.completeUploadExternal).  Title is optional and defaults to the
// filename.
func (s *Session) UploadFile(ctx context.Context, channelID, filename, title, content string) (*File, error) {
	const op = OpUploadFile
	ctx, task := trace.NewTask(ctx, op)
	defer task.End()

	if err := structures.ValidateChannelID(channelID); err != nil {
		return nil, invalidArg(op, "channel_id", err)
	}
	if filename == "" || filename == "." || filepath.Base(filename) != filename {
		return nil, invalidArg(op, "filename", errBadFilename)
	}
	if content == "" {
		return nil, invalidArg(op, "content", errEmptyContent)
	}
	if title == "" {
		title = filename
	}
	cl, err := s.clientFor(op, auth.ScopeBot)
	if err != nil {
		return nil, err
	}

	var summary *slack.FileSummary
	if err := s.withRetry(ctx, network.Tier4, func() error {
		var err error
		summary, err = cl.UploadFileContext(ctx, slack.UploadFileParameters{
			Channel:  channelID,
			Reader:   strings.NewReader(content),
			FileSize: len(content),
			Filename: filename,
			Title:    title,
		})
		return err
	}); err != nil {
		return nil, mapErr(op, err)
	}
	s.log.DebugContext(ctx, "file uploaded", "channel", channelID, "file", summary.ID)
	return &File{ID: summary.ID, Title: summary.Title}, nil
}

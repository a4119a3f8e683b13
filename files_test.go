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
	"io"
	"testing"

	"github.com/rusq/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_UploadFile(t *testing.T) {
	t.Run("uploads and returns the summary", func(t *testing.T) {
		bot := &fakeSlack{tb: t, uploadFileFn: func(ctx context.Context, params slack.UploadFileParameters) (*slack.FileSummary, error) {
			assert.Equal(t, "C10000000", params.Channel)
			assert.Equal(t, "notes.txt", params.Filename)
			assert.Equal(t, "meeting notes", params.Title)
			data, err := io.ReadAll(params.Reader)
			require.NoError(t, err)
			assert.Equal(t, "agenda", string(data))
			assert.Equal(t, len("agenda"), params.FileSize)
			return &slack.FileSummary{ID: "F40000000", Title: params.Title}, nil
		}}
		s := testSession(t, bot)

		f, err := s.UploadFile(t.Context(), "C10000000", "notes.txt", "meeting notes", "agenda")
		require.NoError(t, err)
		assert.Equal(t, "F40000000", f.ID)
	})
	t.Run("title defaults to the filename", func(t *testing.T) {
		bot := &fakeSlack{tb: t, uploadFileFn: func(ctx context.Context, params slack.UploadFileParameters) (*slack.FileSummary, error) {
			assert.Equal(t, "notes.txt", params.Title)
			return &slack.FileSummary{ID: "F40000000", Title: params.Title}, nil
		}}
		s := testSession(t, bot)

		_, err := s.UploadFile(t.Context(), "C10000000", "notes.txt", "", "agenda")
		require.NoError(t, err)
	})
	t.Run("filename with a path is rejected", func(t *testing.T) {
		s := testSession(t, nil)
		_, err := s.UploadFile(t.Context(), "C10000000", "../../etc/passwd", "", "agenda")
		require.Error(t, err)
		assert.True(t, IsKind(err, KindInvalidArgument))
	})
	t.Run("empty content is rejected", func(t *testing.T) {
		s := testSession(t, nil)
		_, err := s.UploadFile(t.Context(), "C10000000", "notes.txt", "", "")
		assert.True(t, IsKind(err, KindInvalidArgument))
	})
}

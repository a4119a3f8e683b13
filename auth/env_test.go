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

package auth

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseDotEnv(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     Creds
		wantErr  bool
	}{
		{
			"bot and user",
			"SLACK_BOT_TOKEN=" + testBotToken + "\nSLACK_USER_TOKEN=" + testUserToken + "\n",
			Creds{Bot: ValueAuth{token: testBotToken}, User: ValueAuth{token: testUserToken}},
			false,
		},
		{
			"bot only",
			"SLACK_BOT_TOKEN=" + testBotToken + "\n",
			Creds{Bot: ValueAuth{token: testBotToken}},
			false,
		},
		{
			"no bot token",
			"SLACK_USER_TOKEN=" + testUserToken + "\n",
			Creds{},
			true,
		},
		{
			"invalid user token",
			"SLACK_BOT_TOKEN=" + testBotToken + "\nSLACK_USER_TOKEN=trash\n",
			Creds{},
			true,
		},
		{
			"empty file",
			"",
			Creds{},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				".env": &fstest.MapFile{Data: []byte(tt.contents)},
			}
			got, err := parseDotEnv(fsys, ".env")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_parseDotEnv_missingFile(t *testing.T) {
	_, err := parseDotEnv(fstest.MapFS{}, ".env")
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Run("both set", func(t *testing.T) {
		t.Setenv(EnvBotToken, testBotToken)
		t.Setenv(EnvUserToken, testUserToken)
		c, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, testBotToken, c.Bot.SlackToken())
		assert.Equal(t, testUserToken, c.User.SlackToken())
	})
	t.Run("bot missing", func(t *testing.T) {
		t.Setenv(EnvBotToken, "")
		t.Setenv(EnvUserToken, testUserToken)
		_, err := FromEnv()
		assert.Error(t, err)
	})
}

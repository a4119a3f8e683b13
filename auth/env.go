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
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variable names for the credentials.
const (
	EnvBotToken  = "SLACK_BOT_TOKEN"
	EnvUserToken = "SLACK_USER_TOKEN"
)

// Creds is the full set of credentials configured for the process.  User may
// be the zero value, in which case only bot-scoped operations are available.
type Creds struct {
	Bot  ValueAuth
	User ValueAuth
}

// Get returns the provider for the requested scope, or false if that
// credential was not configured.
func (c Creds) Get(s Scope) (ValueAuth, bool) {
	switch s {
	case ScopeBot:
		return c.Bot, !c.Bot.IsZero()
	case ScopeUser:
		return c.User, !c.User.IsZero()
	}
	return ValueAuth{}, false
}

// FromEnv loads credentials from the process environment.  The bot token is
// mandatory, the user token is optional.
func FromEnv() (Creds, error) {
	return fromValues(os.Getenv(EnvBotToken), os.Getenv(EnvUserToken))
}

func fromValues(botTok, userTok string) (Creds, error) {
	bot, err := NewValueAuth(botTok)
	if err != nil {
		return Creds{}, errors.New(EnvBotToken + " is not set or invalid")
	}
	var c = Creds{Bot: bot}
	if userTok != "" {
		user, err := NewValueAuth(userTok)
		if err != nil {
			return Creds{}, errors.New(EnvUserToken + " is set but invalid")
		}
		c.User = user
	}
	return c, nil
}

// ParseDotEnv reads credentials from a dotenv-formatted secrets file.
func ParseDotEnv(filename string) (Creds, error) {
	dir := filepath.Dir(filename)
	return parseDotEnv(os.DirFS(dir), filepath.Base(filename))
}

func parseDotEnv(fsys fs.FS, filename string) (Creds, error) {
	f, err := fsys.Open(filename)
	if err != nil {
		return Creds{}, err
	}
	defer f.Close()
	secrets, err := godotenv.Parse(f)
	if err != nil {
		return Creds{}, errors.New("not a secrets file")
	}
	return fromValues(secrets[EnvBotToken], secrets[EnvUserToken])
}

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

// Package slackmcp proxies Slack workspace actions for a tool-calling
// agent.  The Session holds the configured credentials and routes every
// operation through credential selection, argument normalisation, the
// rate-limited transport and response mapping into stable result records.
package slackmcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/trace"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rusq/slack"
	"golang.org/x/time/rate"

	"github.com/rusq/slackmcp/auth"
	"github.com/rusq/slackmcp/internal/network"
)

// Session stores the clients and tunables for the proxy.  Zero value is not
// usable, must be initialised with New.  A Session is safe for concurrent
// use; the per-tier throttle state is the only thing invocations share.
type Session struct {
	bot  Slacker // bot-token client, always set
	user Slacker // user-token client, nil when no user token is configured

	wspInfo  *WorkspaceInfo
	throttle *network.Throttle
	limiters map[network.Tier]*rate.Limiter
	log      *slog.Logger

	cfg config

	ops map[string]*Descriptor
}

// WorkspaceInfo is a type alias for [slack.AuthTestResponse].
type WorkspaceInfo = slack.AuthTestResponse

// Slacker is the interface with the functions of slack.Client used by the
// Session.  It exists for mocking in tests.
type Slacker interface {
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
	GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) (channels []slack.Channel, nextCursor string, err error)
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	GetUsersContext(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error)
	OpenConversationContext(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UpdateMessageContext(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error)
	DeleteMessageContext(ctx context.Context, channel, messageTimestamp string) (string, string, error)
	ScheduleMessageContext(ctx context.Context, channelID, postAt string, options ...slack.MsgOption) (string, string, error)
	GetScheduledMessagesContext(ctx context.Context, params *slack.GetScheduledMessagesParameters) ([]slack.ScheduledMessage, string, error)
	DeleteScheduledMessageContext(ctx context.Context, params *slack.DeleteScheduledMessageParameters) (bool, error)
	AddReactionContext(ctx context.Context, name string, item slack.ItemRef) error
	RemoveReactionContext(ctx context.Context, name string, item slack.ItemRef) error
	SearchMessagesContext(ctx context.Context, query string, params slack.SearchParameters) (*slack.SearchMessages, error)
	UploadFileContext(ctx context.Context, params slack.UploadFileParameters) (*slack.FileSummary, error)
}

// config is the option set for the Session.
type config struct {
	limits network.Limits
}

var defConfig = config{
	limits: network.DefLimits,
}

// AllChanTypes enumerates all API-supported channel [types].
//
// [types]: https://api.slack.com/methods/conversations.list#arg_types
var AllChanTypes = []string{"mpim", "im", "public_channel", "private_channel"}

// Option is the signature of the option-setting function.
type Option func(*Session)

// WithLimits sets the API limits to use for the session.  If this option is
// not given, network.DefLimits is used.
func WithLimits(l network.Limits) Option {
	return func(s *Session) {
		if l.Validate() == nil {
			s.cfg.limits = l
		}
	}
}

// WithLogger sets the logger to use for the session.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBotClient sets the bot-scoped Slack client, bypassing the client
// construction from credentials.  Intended for testing.
func WithBotClient(cl Slacker) Option {
	return func(s *Session) {
		s.bot = cl
	}
}

// WithUserClient sets the user-scoped Slack client.  Intended for testing.
func WithUserClient(cl Slacker) Option {
	return func(s *Session) {
		s.user = cl
	}
}

// New creates a new Session from the credentials.  The bot credential is
// mandatory; the user credential enables the user-scoped operations (search).
// New verifies the bot credential with an auth test; the workspace identity
// it returns is kept for the session lifetime.
func New(ctx context.Context, creds auth.Creds, opts ...Option) (*Session, error) {
	ctx, task := trace.NewTask(ctx, "New")
	defer task.End()

	s := &Session{
		cfg:      defConfig,
		throttle: network.NewThrottle(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cfg.limits.Validate(); err != nil {
		var vErr validator.ValidationErrors
		if errors.As(err, &vErr) {
			return nil, fmt.Errorf("API limits failed validation: %s", vErr.Translate(network.OptErrTranslations))
		}
		return nil, err
	}
	s.initLimiters()

	if s.bot == nil {
		bot, ok := creds.Get(auth.ScopeBot)
		if !ok {
			return nil, &Error{Kind: KindMissingCredential, Op: "new", err: auth.ErrNoToken}
		}
		if err := bot.Validate(); err != nil {
			return nil, &Error{Kind: KindMissingCredential, Op: "new", err: err}
		}
		httpCl := &http.Client{Timeout: time.Duration(s.cfg.limits.Timeout) * time.Second}
		s.bot = slack.New(bot.SlackToken(), slack.OptionHTTPClient(httpCl))
		if user, ok := creds.Get(auth.ScopeUser); ok {
			s.user = slack.New(user.SlackToken(), slack.OptionHTTPClient(httpCl))
		}
	}

	var wi *slack.AuthTestResponse
	if err := s.withRetry(ctx, network.NoTier, func() error {
		var err error
		wi, err = s.bot.AuthTestContext(ctx)
		return err
	}); err != nil {
		return nil, fmt.Errorf("authentication test failed: %w", err)
	}
	s.wspInfo = wi
	s.log.DebugContext(ctx, "authenticated", "team", wi.Team, "user", wi.User)

	s.buildCatalog()
	return s, nil
}

// Info returns the workspace information captured during the authentication
// test; no API call is involved.
func (s *Session) Info() *WorkspaceInfo {
	return s.wspInfo
}

// CurrentUserID returns the user ID of the authenticated bot identity.
func (s *Session) CurrentUserID() string {
	return s.wspInfo.UserID
}

// clientFor selects the client for the operation's required scope.  It fails
// with a MissingCredential error when the scope's credential was not
// configured; this is a configuration error and is never retried.
func (s *Session) clientFor(op string, scope auth.Scope) (Slacker, error) {
	var cl Slacker
	switch scope {
	case auth.ScopeBot:
		cl = s.bot
	case auth.ScopeUser:
		cl = s.user
	}
	if cl == nil {
		return nil, &Error{
			Kind: KindMissingCredential,
			Op:   op,
			err:  fmt.Errorf("no %s credential configured", scope),
		}
	}
	return cl, nil
}

// initLimiters builds the per-tier rate limiters.  Limiters are shared by
// all invocations for the lifetime of the session so that the pacing holds
// across concurrent tool calls.
func (s *Session) initLimiters() {
	l := s.cfg.limits
	s.limiters = map[network.Tier]*rate.Limiter{
		network.NoTier: network.NewLimiter(network.NoTier, 1, 0),
		network.Tier2:  network.NewLimiter(network.Tier2, l.Tier2.Burst, int(l.Tier2.Boost)),
		network.Tier3:  network.NewLimiter(network.Tier3, l.Tier3.Burst, int(l.Tier3.Boost)),
		network.Tier4:  network.NewLimiter(network.Tier4, l.Tier4.Burst, int(l.Tier4.Boost)),
	}
}

func (s *Session) limiter(t network.Tier) *rate.Limiter {
	if lim, ok := s.limiters[t]; ok {
		return lim
	}
	return s.limiters[network.NoTier]
}

// withRetry runs fn through the rate-limited transport for the tier.
func (s *Session) withRetry(ctx context.Context, t network.Tier, fn func() error) error {
	return network.WithRetry(ctx, s.limiter(t), s.throttle.Class(t),
		s.cfg.limits.RateLimitRetries, s.cfg.limits.NetworkRetries, fn)
}

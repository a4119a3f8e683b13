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

package network

// In this file: API limits and their validation.

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Limits contains the tunables for the rate-limited transport: retry
// budgets, per-tier limiter parameters and per-page request sizes.
type Limits struct {
	// RateLimitRetries is the maximum number of attempts when the API keeps
	// returning 429.
	RateLimitRetries int `toml:"rate_limit_retries" validate:"gte=1,lte=10"`
	// NetworkRetries is the maximum number of attempts on network-level
	// failures (timeout, connection reset).
	NetworkRetries int `toml:"network_retries" validate:"gte=1,lte=10"`
	// Timeout is the HTTP client timeout in seconds.
	Timeout int `toml:"timeout" validate:"gte=1,lte=600"`
	// Tier2 controls the limiter for tier-2 methods (conversations.list,
	// users.list, search.messages).
	Tier2 TierLimit `toml:"tier_2"`
	// Tier3 controls the limiter for tier-3 methods (conversations.history,
	// the chat.* write methods and reactions).
	Tier3 TierLimit `toml:"tier_3"`
	// Tier4 controls the limiter for tier-4 methods (file uploads).
	Tier4 TierLimit `toml:"tier_4"`
	// Request holds the per-page request sizes for list methods.
	Request RequestLimit `toml:"per_request"`
}

// TierLimit is the per-tier limiter configuration.
type TierLimit struct {
	// Boost allows to increase or decrease the tier's base req/min rate.
	Boost uint `toml:"boost"`
	// Burst is the limiter burst in req/sec.  Default of 1 is safe.
	Burst uint `toml:"burst" validate:"gte=1"`
}

// RequestLimit sets the number of items to fetch per one list API request.
type RequestLimit struct {
	Channels  int `toml:"channels" validate:"gte=1,lte=1000"`
	History   int `toml:"history" validate:"gte=1,lte=1000"`
	Users     int `toml:"users" validate:"gte=1,lte=1000"`
	Scheduled int `toml:"scheduled" validate:"gte=1,lte=1000"`
}

// DefLimits are the default limits.
var DefLimits = Limits{
	RateLimitRetries: 5,
	NetworkRetries:   3,
	Timeout:          30,
	Tier2: TierLimit{
		Boost: 20,
		Burst: 1,
	},
	Tier3: TierLimit{
		Boost: 120,
		Burst: 1,
	},
	Tier4: TierLimit{
		Boost: 10,
		Burst: 1,
	},
	Request: RequestLimit{
		Channels:  200,
		History:   100,
		Users:     200,
		Scheduled: 100,
	},
}

var (
	validate = validator.New()

	// OptErrTranslations is the english translator for the validation
	// errors.
	OptErrTranslations ut.Translator
)

func init() {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	var ok bool
	OptErrTranslations, ok = uni.GetTranslator("en")
	if !ok {
		panic("internal error: failed to init translator")
	}
	if err := entranslations.RegisterDefaultTranslations(validate, OptErrTranslations); err != nil {
		panic("internal error: failed to register translations: " + err.Error())
	}
}

// Validate validates the limits.  The returned error is a
// validator.ValidationErrors, translatable with OptErrTranslations.
func (o *Limits) Validate() error {
	return validate.Struct(o)
}

// Apply overwrites the limits with the values from other, if other is valid.
func (o *Limits) Apply(other Limits) error {
	if err := other.Validate(); err != nil {
		return err
	}
	*o = other
	return nil
}

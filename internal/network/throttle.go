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

// In this file: shared server-side throttling state.

import (
	"context"
	"sync"
	"time"
)

// Throttle tracks the server-side throttling signals observed per endpoint
// tier.  It is the only state shared between concurrent invocations; it
// lives for the process lifetime and resets to open on restart (the API is
// the source of truth for actual throttling).
type Throttle struct {
	mu      sync.Mutex
	classes map[Tier]*ThrottleClass
}

// NewThrottle returns a Throttle with all classes open.
func NewThrottle() *Throttle {
	return &Throttle{classes: make(map[Tier]*ThrottleClass)}
}

// Class returns the throttle state for the tier, creating it on first use.
func (t *Throttle) Class(tier Tier) *ThrottleClass {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.classes[tier]
	if !ok {
		c = &ThrottleClass{now: time.Now}
		t.classes[tier] = c
	}
	return c
}

// ThrottleClass is the throttling state of one endpoint tier.  It has two
// observable states: open (calls proceed immediately) and throttled (calls
// wait until the next-allowed time).  A throttling signal moves it to
// throttled; the first subsequent success moves it back to open.
type ThrottleClass struct {
	mu          sync.Mutex
	consecutive int       // consecutive throttling responses
	nextAllowed time.Time // zero when open
	now         func() time.Time
}

// Wait blocks until the class's next-allowed time, or until ctx is done.
// Only the invoking call is suspended; other classes are unaffected.
func (c *ThrottleClass) Wait(ctx context.Context) error {
	c.mu.Lock()
	delay := c.nextAllowed.Sub(c.now())
	c.mu.Unlock()
	if delay <= 0 {
		return ctx.Err()
	}
	return sleepCtx(ctx, delay)
}

// Throttled records a throttling response with the server-specified (or
// computed) retry delay.  The next-allowed time never moves backwards while
// throttling persists.
func (c *ThrottleClass) Throttled(retryAfter time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consecutive++
	if next := c.now().Add(retryAfter); next.After(c.nextAllowed) {
		c.nextAllowed = next
	}
}

// Success resets the class to the open state.
func (c *ThrottleClass) Success() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consecutive = 0
	c.nextAllowed = time.Time{}
}

// Consecutive returns the number of throttling responses observed since the
// last success.
func (c *ThrottleClass) Consecutive() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.consecutive
}

// sleepCtx sleeps for d, returning early with the context error if ctx is
// done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

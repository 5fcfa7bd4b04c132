// Copyright 2026 The Driptide Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time as whole seconds. Implementations must be
// monotonic non-decreasing; all accrual math assumes elapsed time is never
// negative.
type Clock interface {
	Now() uint64
}

// New returns a wall clock guarded against regression: if the wall clock
// steps backwards, Now holds at the last observed value until the wall
// clock catches up.
func New() Clock {
	return new(wall)
}

type wall struct {
	mu   sync.Mutex
	last uint64
}

func (c *wall) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := uint64(time.Now().Unix())
	if now < c.last {
		return c.last
	}
	c.last = now
	return now
}

// Fake is a manually advanced clock for tests.
type Fake struct {
	mu  sync.Mutex
	now uint64
}

// NewFake returns a fake clock set to the given time.
func NewFake(now uint64) *Fake {
	return &Fake{now: now}
}

func (c *Fake) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Fake) Advance(seconds uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += seconds
}

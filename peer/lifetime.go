// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"time"

	"go.uber.org/atomic"
)

// Handle - a counted reference to a connection
type Handle struct {
	*Connection
	released atomic.Int32
}

// Acquire - take a reference that keeps the connection alive until
// released
func (c *Connection) Acquire() *Handle {
	c.refLock.Lock()
	c.refCount += 1
	c.refLock.Unlock()
	return &Handle{
		Connection: c,
	}
}

// Release - drop the reference, only the first call has any effect
func (h *Handle) Release() {
	if nil == h || !h.released.CAS(0, 1) {
		return
	}
	c := h.Connection
	c.refLock.Lock()
	c.refCount -= 1
	c.refLock.Unlock()
}

// AcquireFor - keep the connection alive for at least timeout without
// needing a release
func (c *Connection) AcquireFor(timeout time.Duration) {
	c.acquireUntil(time.Now().Add(timeout))
}

func (c *Connection) acquireUntil(t time.Time) {
	c.refLock.Lock()
	if t.After(c.releaseTime) {
		c.releaseTime = t
	}
	c.refLock.Unlock()
}

// RefCount - references held at the given time, the release deadline
// counting as one while it has not passed
func (c *Connection) RefCount(now time.Time) int {
	c.refLock.Lock()
	defer c.refLock.Unlock()

	n := c.refCount
	if n < 0 {
		n = 0
	}
	if now.Before(c.releaseTime) {
		n += 1
	}
	return n
}

// Releasable - no references remain at the given time
func (c *Connection) Releasable(now time.Time) bool {
	return 0 == c.RefCount(now)
}

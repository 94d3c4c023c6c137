// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/agrocoin/agrocoind/wire"
)

// DefaultTTL - how long a relayed object is kept
const DefaultTTL = 15 * time.Minute

const expirationCheckInterval = time.Minute

type item struct {
	payload   []byte
	expiresAt time.Time
}

// queued in publish order, so in expiry order
type expiration struct {
	expiresAt time.Time
	inv       wire.InvVect
}

// Relay - inventory id to payload with a fixed time to live
type Relay struct {
	sync.Mutex
	log   *logger.L
	ttl   time.Duration
	now   func() time.Time
	items map[wire.InvVect]item
	queue *linkedlistqueue.Queue
}

// New - create a relay cache
//
// now may be nil to use the wall clock
func New(log *logger.L, ttl time.Duration, now func() time.Time) *Relay {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if nil == now {
		now = time.Now
	}
	return &Relay{
		log:   log,
		ttl:   ttl,
		now:   now,
		items: make(map[wire.InvVect]item),
		queue: linkedlistqueue.New(),
	}
}

// Publish - store a payload, replacing any earlier one for the same
// inventory id and restarting its time to live
func (r *Relay) Publish(inv wire.InvVect, payload []byte) {
	r.Lock()
	defer r.Unlock()

	now := r.now()
	r.expire(now)

	expiresAt := now.Add(r.ttl)
	r.items[inv] = item{
		payload:   payload,
		expiresAt: expiresAt,
	}
	r.queue.Enqueue(expiration{
		expiresAt: expiresAt,
		inv:       inv,
	})
}

// Lookup - payload for an inventory id if it has not expired
func (r *Relay) Lookup(inv wire.InvVect) ([]byte, bool) {
	r.Lock()
	defer r.Unlock()

	i, ok := r.items[inv]
	if !ok || !r.now().Before(i.expiresAt) {
		return nil, false
	}
	return i.payload, true
}

// Expire - drop everything whose time to live has passed, returns the
// number of entries removed
func (r *Relay) Expire() int {
	r.Lock()
	defer r.Unlock()
	return r.expire(r.now())
}

// Count - number of live entries
func (r *Relay) Count() int {
	r.Lock()
	defer r.Unlock()
	return len(r.items)
}

// lock must be held
//
// the queue may hold stale duplicates for a republished id, so an
// entry is only removed when the live item itself has expired
func (r *Relay) expire(now time.Time) int {
	removed := 0
	for {
		front, ok := r.queue.Peek()
		if !ok {
			break
		}
		e := front.(expiration)
		if now.Before(e.expiresAt) {
			break
		}
		r.queue.Dequeue()

		if i, ok := r.items[e.inv]; ok && !now.Before(i.expiresAt) {
			delete(r.items, e.inv)
			removed += 1
		}
	}
	return removed
}

// Run - background cleaner
func (r *Relay) Run(args interface{}, shutdown <-chan struct{}) {
	log := r.log

	log.Info("starting…")

	ticker := time.NewTicker(expirationCheckInterval)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			if n := r.Expire(); n > 0 {
				log.Debugf("expired: %d  remaining: %d", n, r.Count())
			}
		}
	}

	log.Info("stopped")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package askfor

import (
	"sync"
	"time"

	"github.com/agrocoin/agrocoind/wire"
)

// Spacing - minimum microseconds between two requests for the same item
const Spacing = int64(120 * 1000000)

// Scheduler - process wide earliest request time per inventory item
type Scheduler struct {
	sync.Mutex
	now     func() time.Time
	last    int64
	already map[wire.InvVect]int64
}

// New - create a scheduler
//
// now may be nil to use the wall clock
func New(now func() time.Time) *Scheduler {
	if nil == now {
		now = time.Now
	}
	return &Scheduler{
		now:     now,
		already: make(map[wire.InvVect]int64),
	}
}

// Micros - whole seconds of t, less one second, in microseconds
func Micros(t time.Time) int64 {
	return (t.Unix() - 1) * 1000000
}

// Schedule - the time in microseconds at which inv may next be
// requested
//
// successive calls never return the same virtual time base, and a
// repeat request for an item is pushed at least Spacing after the
// previous one
func (s *Scheduler) Schedule(inv wire.InvVect) int64 {
	s.Lock()
	defer s.Unlock()

	now := Micros(s.now())
	s.last += 1
	if now < s.last {
		now = s.last
	}
	s.last = now

	t := s.already[inv] + Spacing
	if t < now {
		t = now
	}
	s.already[inv] = t
	return t
}

// Forget - the item has arrived so requests are no longer paced
func (s *Scheduler) Forget(inv wire.InvVect) {
	s.Lock()
	delete(s.already, inv)
	s.Unlock()
}

// Prune - drop entries scheduled before the given time, returns the
// number removed
func (s *Scheduler) Prune(before int64) int {
	s.Lock()
	defer s.Unlock()

	n := 0
	for inv, t := range s.already {
		if t < before {
			delete(s.already, inv)
			n += 1
		}
	}
	return n
}

// Count - number of items being paced
func (s *Scheduler) Count() int {
	s.Lock()
	defer s.Unlock()
	return len(s.already)
}

// Now - current virtual time in microseconds
func (s *Scheduler) Now() int64 {
	return Micros(s.now())
}

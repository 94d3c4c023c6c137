// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package limitedset

import (
	"container/ring"
	"sync"
)

// LimitedSet - a set bounded to a fixed number of items
//
// when full, adding a new item evicts the item that was least
// recently added; re-adding an item makes it the newest
type LimitedSet struct {
	sync.Mutex
	ring *ring.Ring
	hash map[interface{}]*ring.Ring
}

// New - create a new limited set that holds up to 'n' comparable items
func New(n int) *LimitedSet {
	if n < 1 {
		n = 1
	}
	return &LimitedSet{
		ring: ring.New(n),
		hash: make(map[interface{}]*ring.Ring, n),
	}
}

// Add - add an item to the set, returns true if the item was not
// already present
func (ls *LimitedSet) Add(item interface{}) bool {
	ls.Lock()
	defer ls.Unlock()

	if r, ok := ls.hash[item]; ok {
		// ls.ring is the next slot to overwrite, i.e. the oldest
		if r == ls.ring {
			ls.ring = ls.ring.Next()
			return false
		}
		r = r.Prev().Unlink(1)
		ls.ring.Prev().Link(r)
		return false
	}

	if nil != ls.ring.Value {
		delete(ls.hash, ls.ring.Value)
	}
	ls.ring.Value = item
	ls.hash[item] = ls.ring
	ls.ring = ls.ring.Next()
	return true
}

// Exists - check to see if item is in the set
func (ls *LimitedSet) Exists(item interface{}) bool {
	ls.Lock()
	defer ls.Unlock()
	_, ok := ls.hash[item]
	return ok
}

// Count - number of items currently held
func (ls *LimitedSet) Count() int {
	ls.Lock()
	defer ls.Unlock()
	return len(ls.hash)
}

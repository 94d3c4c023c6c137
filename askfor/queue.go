// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package askfor

import (
	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/agrocoin/agrocoind/wire"
)

type entry struct {
	at  int64
	seq uint64
	inv wire.InvVect
}

// Queue - requests for one peer ordered by scheduled time
//
// not safe for concurrent use
type Queue struct {
	heap *binaryheap.Heap
	seq  uint64
}

// NewQueue - create an empty queue
func NewQueue() *Queue {
	return &Queue{
		heap: binaryheap.NewWith(compareEntries),
	}
}

func compareEntries(a, b interface{}) int {
	ea := a.(entry)
	eb := b.(entry)
	switch {
	case ea.at < eb.at:
		return -1
	case ea.at > eb.at:
		return 1
	case ea.seq < eb.seq:
		return -1
	case ea.seq > eb.seq:
		return 1
	}
	return 0
}

// Push - add a request due at the given time
func (q *Queue) Push(at int64, inv wire.InvVect) {
	q.seq += 1
	q.heap.Push(entry{
		at:  at,
		seq: q.seq,
		inv: inv,
	})
}

// Due - remove and return up to limit requests whose time is not after
// now, earliest first; limit <= 0 means no limit
func (q *Queue) Due(now int64, limit int) []wire.InvVect {
	due := make([]wire.InvVect, 0, 8)
	for limit <= 0 || len(due) < limit {
		top, ok := q.heap.Peek()
		if !ok || top.(entry).at > now {
			break
		}
		q.heap.Pop()
		due = append(due, top.(entry).inv)
	}
	return due
}

// Next - time of the earliest request
func (q *Queue) Next() (int64, bool) {
	top, ok := q.heap.Peek()
	if !ok {
		return 0, false
	}
	return top.(entry).at, true
}

// Len - number of queued requests
func (q *Queue) Len() int {
	return q.heap.Size()
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

// default number of messages buffered per shard
const defaultQueueSize = 1000

// Message - a command received from a peer
type Message struct {
	From       uint64      // originating peer
	Command    string      // wire command
	Parameters []byte      // raw payload
	Item       interface{} // sender context, e.g. the connection
}

// Bus - a set of FIFO queues
//
// messages sent with the same key always use the same queue so a
// single consumer per queue sees them in the order they were sent
type Bus struct {
	shards    []chan Message
	closed    chan struct{}
	closeOnce sync.Once
}

// New - create a bus with a number of shards each holding up to size
// pending messages
func New(shards int, size int) *Bus {
	if shards < 1 {
		shards = 1
	}
	if size < 1 {
		size = defaultQueueSize
	}
	b := &Bus{
		shards: make([]chan Message, shards),
		closed: make(chan struct{}),
	}
	for i := range b.shards {
		b.shards[i] = make(chan Message, size)
	}
	return b
}

// Send - queue a message, blocks while the shard is full
//
// returns false if the bus was closed
func (b *Bus) Send(key uint64, message Message) bool {
	select {
	case <-b.closed:
		return false
	default:
	}

	select {
	case b.shards[key%uint64(len(b.shards))] <- message:
		return true
	case <-b.closed:
		return false
	}
}

// Chan - channel to read a shard from
func (b *Bus) Chan(shard int) <-chan Message {
	return b.shards[shard]
}

// Shards - number of queues
func (b *Bus) Shards() int {
	return len(b.shards)
}

// Close - release any blocked senders; further sends are dropped
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.closed)
	})
}

// Done - closed when the bus is closed
func (b *Bus) Done() <-chan struct{} {
	return b.closed
}

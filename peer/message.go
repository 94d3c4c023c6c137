// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"context"

	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/tracker"
	"github.com/agrocoin/agrocoind/wire"
)

// MessageWriter - an open message on a connection
//
// the connection's framing lock is held from BeginMessage until End,
// EndAbortIfEmpty or Abort
type MessageWriter struct {
	c       *Connection
	command string
	buffer  []byte
	open    bool
}

// BeginMessage - start a message, blocks while another sender has a
// message open on the same connection
//
// the framing lock is not reentrant: a goroutine holding an open
// writer must start its next message with w.Begin, which aborts the
// open one; calling BeginMessage again from that goroutine deadlocks
func (c *Connection) BeginMessage(command string) *MessageWriter {
	c.frameLock.Lock()
	return &MessageWriter{
		c:       c,
		command: command,
		buffer:  make([]byte, 0, 256),
		open:    true,
	}
}

// Begin - restart the writer with a new command
//
// any message still open is discarded
func (w *MessageWriter) Begin(command string) {
	if w.open {
		w.c.log.Errorf("bug: begin: %q while: %q still open on: %s", command, w.command, w.c)
	} else {
		w.c.frameLock.Lock()
		w.open = true
	}
	w.command = command
	w.buffer = w.buffer[:0]
}

// Write - append payload bytes
func (w *MessageWriter) Write(p []byte) (int, error) {
	if !w.open {
		return 0, fault.ErrMessageNotOpen
	}
	w.buffer = append(w.buffer, p...)
	return len(p), nil
}

// Len - payload bytes written so far
func (w *MessageWriter) Len() int {
	return len(w.buffer)
}

// End - frame the payload and queue it for sending
func (w *MessageWriter) End() error {
	if !w.open {
		w.c.log.Errorf("bug: end: %q with no open message on: %s", w.command, w.c)
		return fault.ErrMessageNotOpen
	}
	defer w.close()

	frame, err := wire.Frame(w.c.config.Magic, w.command, w.buffer)
	if nil != err {
		return err
	}
	err = w.c.enqueue(frame)
	if nil != err {
		return err
	}
	if nil != w.c.config.Sent {
		w.c.config.Sent(w.command, len(frame))
	}
	return nil
}

// EndAbortIfEmpty - End, unless nothing was written in which case
// Abort
func (w *MessageWriter) EndAbortIfEmpty() error {
	if w.open && 0 == len(w.buffer) {
		w.Abort()
		return nil
	}
	return w.End()
}

// Abort - discard the message
func (w *MessageWriter) Abort() {
	if !w.open {
		return
	}
	w.close()
}

func (w *MessageWriter) close() {
	w.open = false
	w.buffer = w.buffer[:0]
	w.c.frameLock.Unlock()
}

// PushMessage - send a complete message
//
// an empty payload is only sent for commands that allow it
func (c *Connection) PushMessage(command string, payload []byte) error {
	w := c.BeginMessage(command)
	_, _ = w.Write(payload)
	if wire.EmptyAllowed(command) {
		return w.End()
	}
	return w.EndAbortIfEmpty()
}

// PushRequest - send a message prefixed with a fresh correlation token
//
// callback runs at most once, when the first reply carrying the token
// arrives
func (c *Connection) PushRequest(command string, payload []byte, callback tracker.Callback, context interface{}) (tracker.Token, error) {
	token, err := c.tracker.Register(callback, context)
	if nil != err {
		return token, err
	}

	err = c.PushMessage(command, wire.EncodeReply(token, payload))
	if nil != err {
		c.tracker.Cancel(token)
		return token, err
	}
	return token, nil
}

// Request - send a request and wait for its reply
//
// the wait ends with the context or when the connection starts
// disconnecting
func (c *Connection) Request(ctx context.Context, command string, payload []byte) ([]byte, error) {
	pending, err := c.tracker.Await()
	if nil != err {
		return nil, err
	}

	err = c.PushMessage(command, wire.EncodeReply(pending.Token, payload))
	if nil != err {
		c.tracker.Cancel(pending.Token)
		return nil, err
	}

	// a disconnect ends the wait as well
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-c.disconnecting:
			cancel()
		case <-waitCtx.Done():
		}
	}()

	reply, err := pending.Wait(waitCtx)
	if nil != err {
		c.tracker.Cancel(pending.Token)
		if nil == ctx.Err() && c.IsDisconnecting() {
			return nil, fault.ErrConnectionClosed
		}
	}
	return reply, err
}

// ResolveReply - hand a reply to its request, false if none matched
func (c *Connection) ResolveReply(token tracker.Token, payload []byte) bool {
	return c.tracker.Resolve(token, payload)
}

// PendingRequests - requests still awaiting a reply
func (c *Connection) PendingRequests() int {
	return c.tracker.Count()
}

// add a complete frame to the send queue
func (c *Connection) enqueue(frame []byte) error {
	if c.IsDisconnecting() {
		return fault.ErrConnectionClosed
	}

	c.sendLock.Lock()
	if c.sendSize+len(frame) > hardSendLimitFactor*c.config.SendBufferSize {
		c.sendLock.Unlock()
		c.log.Warnf("send buffer exhausted: %s", c)
		c.Disconnect(fault.ErrSendBufferExhausted.Error())
		return fault.ErrSendBufferExhausted
	}
	c.sendQueue = append(c.sendQueue, frame)
	c.sendSize += len(frame)
	c.sendLock.Unlock()

	select {
	case c.sendSignal <- struct{}{}:
	default:
	}
	return nil
}

// SendBufferFull - queued bytes have reached the send buffer size
func (c *Connection) SendBufferFull() bool {
	c.sendLock.Lock()
	defer c.sendLock.Unlock()
	return c.sendSize >= c.config.SendBufferSize
}

// SendQueueSize - bytes waiting to be written
func (c *Connection) SendQueueSize() int {
	c.sendLock.Lock()
	defer c.sendLock.Unlock()
	return c.sendSize
}

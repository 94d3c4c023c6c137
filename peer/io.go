// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"io"
	"time"

	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/wire"
)

// Deliver - receives each complete message read from a connection
type Deliver func(c *Connection, command string, payload []byte)

// Start - run the reader and the writer; only the first call has any
// effect
func (c *Connection) Start(deliver Deliver) {
	if !c.started.CAS(0, 1) {
		return
	}
	c.finished.Add(2)
	go c.reader(deliver)
	go c.writer()
}

// read loop
//
// framing errors disconnect, except a checksum mismatch: its header
// was valid and the payload has been consumed, so the stream is still
// in step and only the message is dropped and penalised
func (c *Connection) reader(deliver Deliver) {
	defer c.finished.Done()

	log := c.log
	log.Debugf("reader starting: %s", c)

loop:
	for !c.IsDisconnecting() {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.config.IdleTimeout))

		h, err := wire.ReadHeader(c.conn, c.config.Magic)
		if nil != err {
			c.readError(err)
			break loop
		}

		if h.Length > c.config.MaximumPayload {
			log.Warnf("%s: command: %q  length: %d", fault.ErrOversizedPayload, h.Command, h.Length)
			c.Disconnect(fault.ErrOversizedPayload.Error())
			break loop
		}
		if int(h.Length) > c.config.ReceiveBufferSize {
			log.Warnf("%s: command: %q  length: %d", fault.ErrReceiveBufferExhausted, h.Command, h.Length)
			c.Disconnect(fault.ErrReceiveBufferExhausted.Error())
			break loop
		}

		payload, err := wire.ReadPayload(c.conn, h)
		if fault.ErrChecksumMismatch == err {
			c.bytesReceived.Add(uint64(wire.HeaderSize) + uint64(h.Length))
			log.Warnf("checksum mismatch: %s  command: %q", c, h.Command)
			c.AdjustMisbehavior(framingPenalty)
			continue loop
		}
		if nil != err {
			c.readError(err)
			break loop
		}

		c.bytesReceived.Add(uint64(wire.HeaderSize + len(payload)))
		c.lastRecv.Store(time.Now().UnixNano())

		if !c.limiter.Allow() {
			log.Warnf("rate limited: %s  command: %q", c, h.Command)
			c.AdjustMisbehavior(1)
			continue loop
		}

		deliver(c, h.Command, payload)
	}

	log.Debugf("reader stopped: %s", c)
}

// classify a read failure
func (c *Connection) readError(err error) {
	switch {
	case c.IsDisconnecting():
		// deadline forced by Disconnect

	case io.EOF == err:
		c.Disconnect("remote closed")

	case io.ErrUnexpectedEOF == err:
		c.log.Warnf("%s: %s", fault.ErrTruncatedMessage, c)
		c.AdjustMisbehavior(framingPenalty)
		c.Disconnect(fault.ErrTruncatedMessage.Error())

	case fault.IsErrFraming(err):
		c.log.Warnf("framing error: %s  error: %s", c, err)
		c.AdjustMisbehavior(framingPenalty)
		c.Disconnect(err.Error())

	default:
		c.Disconnect("read: " + err.Error())
	}
}

func (c *Connection) writer() {
	defer c.finished.Done()

	log := c.log
	log.Debugf("writer starting: %s", c)

loop:
	for {
		select {
		case <-c.disconnecting:
			break loop
		case <-c.sendSignal:
		}

		for {
			frame, ok := c.nextFrame()
			if !ok {
				break
			}

			_ = c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			n, err := c.conn.Write(frame)
			c.frameWritten(len(frame))
			c.bytesSent.Add(uint64(n))
			if nil != err {
				c.Disconnect("write: " + err.Error())
				break loop
			}
			c.lastSend.Store(time.Now().UnixNano())
		}
	}

	log.Debugf("writer stopped: %s", c)
}

func (c *Connection) nextFrame() ([]byte, bool) {
	c.sendLock.Lock()
	defer c.sendLock.Unlock()

	if 0 == len(c.sendQueue) {
		return nil, false
	}
	frame := c.sendQueue[0]
	c.sendQueue[0] = nil
	c.sendQueue = c.sendQueue[1:]
	return frame, true
}

func (c *Connection) frameWritten(n int) {
	c.sendLock.Lock()
	c.sendSize -= n
	c.sendLock.Unlock()
}

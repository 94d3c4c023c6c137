// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/wire"
)

// MarkVersionSent - our version message has been queued
func (c *Connection) MarkVersionSent() {
	c.handshakeLock.Lock()
	c.versionSent = true
	c.handshakeLock.Unlock()
}

// VersionSent - our version message has been queued
func (c *Connection) VersionSent() bool {
	c.handshakeLock.Lock()
	defer c.handshakeLock.Unlock()
	return c.versionSent
}

// SetRemoteVersion - record the accepted version of the remote node
func (c *Connection) SetRemoteVersion(m *wire.MsgVersion) error {
	c.handshakeLock.Lock()
	defer c.handshakeLock.Unlock()

	if c.versionReceived {
		return fault.ErrDuplicateVersion
	}
	c.versionReceived = true
	c.remote = *m
	return nil
}

// VersionReceived - an acceptable version has been received
func (c *Connection) VersionReceived() bool {
	c.handshakeLock.Lock()
	defer c.handshakeLock.Unlock()
	return c.versionReceived
}

// RemoteVersion - copy of the remote node's version message
func (c *Connection) RemoteVersion() wire.MsgVersion {
	c.handshakeLock.Lock()
	defer c.handshakeLock.Unlock()
	return c.remote
}

// MarkVerAck - the remote node acknowledged our version
func (c *Connection) MarkVerAck() {
	c.handshakeLock.Lock()
	c.verAck = true
	c.handshakeLock.Unlock()
}

// TryActivate - move to Active once versions have been both sent and
// received; returns true only for the call that activates
func (c *Connection) TryActivate() bool {
	c.handshakeLock.Lock()
	ready := c.versionSent && c.versionReceived
	c.handshakeLock.Unlock()

	if !ready {
		return false
	}
	return c.Transition(Handshaking, Active)
}

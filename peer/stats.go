// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"time"
)

// Stats - snapshot of a connection for reporting
type Stats struct {
	ID             uint64    `json:"id"`
	Address        string    `json:"address"`
	Inbound        bool      `json:"inbound"`
	OneShot        bool      `json:"oneShot"`
	State          string    `json:"state"`
	Services       uint64    `json:"services"`
	Version        int32     `json:"version"`
	SubVersion     string    `json:"subVersion"`
	StartingHeight int32     `json:"startingHeight"`
	TipHeight      int32     `json:"tipHeight"`
	ConnectedTime  time.Time `json:"connectedTime"`
	LastSend       time.Time `json:"lastSend"`
	LastReceive    time.Time `json:"lastReceive"`
	BytesSent      uint64    `json:"bytesSent"`
	BytesReceived  uint64    `json:"bytesReceived"`
	SendQueue      int       `json:"sendQueue"`
	Misbehavior    int32     `json:"misbehavior"`
}

// Stats - current statistics
func (c *Connection) Stats() Stats {
	remote := c.RemoteVersion()
	return Stats{
		ID:             c.id,
		Address:        c.address.String(),
		Inbound:        c.inbound,
		OneShot:        c.oneshot,
		State:          c.State().String(),
		Services:       remote.Services,
		Version:        remote.ProtocolVersion,
		SubVersion:     remote.SubVersion,
		StartingHeight: remote.StartHeight,
		TipHeight:      c.tipHeight.Load(),
		ConnectedTime:  c.connected,
		LastSend:       c.LastSend(),
		LastReceive:    c.LastReceive(),
		BytesSent:      c.bytesSent.Load(),
		BytesReceived:  c.bytesReceived.Load(),
		SendQueue:      c.SendQueueSize(),
		Misbehavior:    c.misbehavior.Load(),
	}
}

// SetTipHeight - best height the peer last reported
func (c *Connection) SetTipHeight(height int32) {
	c.tipHeight.Store(height)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"time"

	"github.com/agrocoin/agrocoind/peer"
	"github.com/agrocoin/agrocoind/wire"
)

// flusher - sends queued announcements and keep-alives
type flusher struct {
	s *Server
}

func (f *flusher) Run(args interface{}, shutdown <-chan struct{}) {
	log := f.s.log

	log.Info("flusher starting…")

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			f.s.flush(time.Now())
		}
	}
	log.Info("flusher stopped")
}

func (s *Server) flush(now time.Time) {
	handles := s.ListPeers()
	defer releaseAll(handles)

	for _, h := range handles {
		if !h.IsActive() {
			continue
		}
		s.flushPeer(h.Connection, now)
	}
}

func (s *Server) flushPeer(c *peer.Connection, now time.Time) {
	for !c.SendBufferFull() {
		items := c.TakePendingInventory(inventoryChunk)
		if 0 == len(items) {
			break
		}
		if nil != c.PushMessage(wire.CmdInv, wire.EncodeInv(items)) {
			return
		}
	}

	addresses := c.TakePendingAddresses(wire.MaximumAddresses)
	if len(addresses) > 0 {
		if nil != c.PushMessage(wire.CmdAddr, wire.EncodeAddr(addresses)) {
			return
		}
	}

	if now.Sub(c.LastSend()) > keepAliveTime {
		_ = c.PushMessage(wire.CmdPing, nil)
	}
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"time"

	"github.com/agrocoin/agrocoind/askfor"
	"github.com/agrocoin/agrocoind/peer"
	"github.com/agrocoin/agrocoind/wire"
)

// drainer - sends getdata for scheduled requests that have come due
type drainer struct {
	s *Server
}

func (d *drainer) Run(args interface{}, shutdown <-chan struct{}) {
	log := d.s.log

	log.Info("drainer starting…")

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			d.s.drain(time.Now())
		}
	}
	log.Info("drainer stopped")
}

func (s *Server) drain(now time.Time) {
	// due times are compared against whole seconds in microseconds
	micros := now.Unix() * 1000000

	handles := s.ListPeers()
	defer releaseAll(handles)

	for _, h := range handles {
		if !h.IsActive() {
			continue
		}
		s.drainPeer(h.Connection, micros)
	}

	if n := s.scheduler.Prune(micros - askfor.Spacing); n > 0 {
		s.log.Debugf("pruned: %d  remaining: %d", n, s.scheduler.Count())
	}
}

func (s *Server) drainPeer(c *peer.Connection, micros int64) {
	due := c.DueRequests(micros, 0)
	wanted := make([]wire.InvVect, 0, len(due))
	for _, inv := range due {
		if !s.have(inv) {
			wanted = append(wanted, inv)
		}
	}

	for len(wanted) > 0 {
		n := len(wanted)
		if n > inventoryChunk {
			n = inventoryChunk
		}
		if nil != c.PushMessage(wire.CmdGetData, wire.EncodeInv(wanted[:n])) {
			return
		}
		wanted = wanted[n:]
	}
}

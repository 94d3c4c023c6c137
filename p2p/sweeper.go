// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"time"

	"github.com/agrocoin/agrocoind/peer"
)

// sweeper - disconnects stalled peers and reaps finished ones
type sweeper struct {
	s *Server
}

func (sw *sweeper) Run(args interface{}, shutdown <-chan struct{}) {
	log := sw.s.log

	log.Info("sweeper starting…")

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			sw.s.sweep(time.Now())
		}
	}
	log.Info("sweeper stopped")
}

// one pass over the registry
//
// disconnecting peers leave the registry at once but are only closed
// when no references to them remain
func (s *Server) sweep(now time.Time) {
	s.Lock()
	for id, c := range s.peers {
		switch c.State() {
		case peer.Connecting, peer.Handshaking:
			if now.Sub(c.ConnectedTime()) > handshakeTimeout {
				c.Disconnect("handshake timeout")
			}
		case peer.Active:
			if now.Sub(c.LastReceive()) > idleTimeout {
				c.Disconnect("inactivity")
			}
		}
		c.ExpireRequests()

		if c.IsDisconnecting() {
			delete(s.peers, id)
			s.removed = append(s.removed, c)
			s.metrics.disconnected(c.IsInbound())
			s.log.Infof("disconnected: %s  reason: %s", c, c.DisconnectReason())
		}
	}

	finished := make([]*peer.Connection, 0, len(s.removed))
	waiting := s.removed[:0]
	for _, c := range s.removed {
		if c.Releasable(now) {
			finished = append(finished, c)
		} else {
			waiting = append(waiting, c)
		}
	}
	for i := len(waiting); i < len(s.removed); i += 1 {
		s.removed[i] = nil
	}
	s.removed = waiting
	s.Unlock()

	for _, c := range finished {
		c.Close()
		s.log.Debugf("closed: %s", c)
	}
}

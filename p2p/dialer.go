// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"net"
	"time"

	"github.com/agrocoin/agrocoind/wire"
)

// seeds are retried no more often than this
const seedInterval = time.Minute

// dialer - keeps the outbound connections filled
//
// with a connect list only those nodes are dialled; otherwise the
// address source supplies candidates and the seeds are used as one
// shot connections while it has none
type dialer struct {
	s        *Server
	lastSeed time.Time
}

func (d *dialer) Run(args interface{}, shutdown <-chan struct{}) {
	log := d.s.log

	log.Info("dialer starting…")

	ticker := time.NewTicker(dialInterval)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			d.process(time.Now())
		}
	}
	log.Info("dialer stopped")
}

func (d *dialer) process(now time.Time) {
	s := d.s

	if len(s.config.Connect) > 0 {
		for _, address := range s.config.Connect {
			if s.outboundCount() >= s.config.MaximumOutbound {
				return
			}
			s.dialPersistent(address)
		}
		return
	}

	if s.outboundCount() >= s.config.MaximumOutbound {
		return
	}

	candidate, ok := s.addresses.SelectOutboundCandidate()
	if !ok {
		if len(s.config.Seed) > 0 && now.Sub(d.lastSeed) > seedInterval {
			d.lastSeed = now
			for _, seed := range s.config.Seed {
				s.dial(seed, true)
			}
		}
		return
	}

	if 0 == candidate.Port {
		return
	}

	// marked even when skipped so the source rotates to another address
	s.addresses.MarkAttempt(candidate)
	if s.bans.IsBanned(candidate.IP) || s.connectedTo(candidate) {
		return
	}
	s.dial(candidate.String(), false)
}

// connect to a configured node unless already connected
func (s *Server) dialPersistent(address string) {
	tcp, err := net.ResolveTCPAddr("tcp", address)
	if nil != err {
		s.log.Errorf("connect: %q  error: %s", address, err)
		return
	}
	if s.connectedTo(wire.NewNetAddress(tcp, 0)) {
		return
	}
	s.dial(address, false)
}

func (s *Server) dial(address string, oneshot bool) {
	conn, err := net.DialTimeout("tcp", address, dialTimeout)
	if nil != err {
		s.log.Debugf("dial: %s  error: %s", address, err)
		return
	}
	_, err = s.AddConnection(conn, false, oneshot)
	if nil != err {
		s.log.Debugf("outbound: %s  error: %s", address, err)
	}
}

// number of outbound slots in use
//
// seeds and peers on their way out do not hold a slot
func (s *Server) outboundCount() int {
	s.RLock()
	defer s.RUnlock()

	n := 0
	for _, c := range s.peers {
		if !c.IsInbound() && !c.IsOneShot() && !c.IsDisconnecting() {
			n += 1
		}
	}
	return n
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"net"
	"sort"

	"github.com/bitmark-inc/logger"

	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/messagebus"
	"github.com/agrocoin/agrocoind/peer"
	"github.com/agrocoin/agrocoind/wire"
)

// AddConnection - take ownership of an established socket
//
// banned addresses are refused before any handshake; outbound
// connections send their version immediately
func (s *Server) AddConnection(conn net.Conn, inbound bool, oneshot bool) (*peer.Connection, error) {
	address := remoteAddress(conn)

	if s.bans.IsBanned(address.IP) {
		s.log.Infof("refused banned: %s", address)
		_ = conn.Close()
		return nil, fault.ErrAddressIsBanned
	}

	c := peer.New(logger.New("peer"), conn, address, inbound, oneshot, s.peerConfig, s.scheduler, s)

	err := s.register(c)
	if nil != err {
		s.log.Infof("refused: %s  error: %s", address, err)
		_ = conn.Close()
		return nil, err
	}

	c.Transition(peer.Connecting, peer.Handshaking)
	c.Start(s.deliver)

	if !inbound {
		s.pushVersion(c)
	}
	return c, nil
}

func remoteAddress(conn net.Conn) wire.NetAddress {
	if tcp, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		return wire.NewNetAddress(tcp, 0)
	}
	return wire.NetAddress{}
}

func (s *Server) register(c *peer.Connection) error {
	s.Lock()
	defer s.Unlock()

	inbound := 0
	for _, p := range s.peers {
		if p.IsInbound() {
			inbound += 1
		}
	}
	if len(s.peers) >= s.config.MaximumConnections {
		return fault.ErrTooManyConnections
	}
	if c.IsInbound() && inbound >= s.config.MaximumConnections-s.config.MaximumOutbound {
		return fault.ErrTooManyConnections
	}

	s.peers[c.ID()] = c
	s.metrics.connected(c.IsInbound())
	s.log.Infof("connected: %s  total: %d", c, len(s.peers))
	return nil
}

// messages from all connections go through the bus; a connection
// always uses the same shard so its messages stay in order
func (s *Server) deliver(c *peer.Connection, command string, payload []byte) {
	s.metrics.received(command, wire.HeaderSize+len(payload))
	s.bus.Send(c.ID(), messagebus.Message{
		From:       c.ID(),
		Command:    command,
		Parameters: payload,
		Item:       c,
	})
}

// ListPeers - snapshot of the live connections
//
// each handle holds a reference that the caller must release
func (s *Server) ListPeers() []*peer.Handle {
	s.RLock()
	defer s.RUnlock()

	handles := make([]*peer.Handle, 0, len(s.peers))
	for _, c := range s.peers {
		if c.IsDisconnecting() {
			continue
		}
		handles = append(handles, c.Acquire())
	}
	sort.Slice(handles, func(i, j int) bool {
		return handles[i].ID() < handles[j].ID()
	})
	return handles
}

func releaseAll(handles []*peer.Handle) {
	for _, h := range handles {
		h.Release()
	}
}

// PeerCount - number of registered connections
func (s *Server) PeerCount() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.peers)
}

// Peers - statistics for each live connection
func (s *Server) Peers() []peer.Stats {
	handles := s.ListPeers()
	defer releaseAll(handles)

	stats := make([]peer.Stats, 0, len(handles))
	for _, h := range handles {
		stats = append(stats, h.Stats())
	}
	return stats
}

// BroadcastInventory - queue an announcement on every live connection
func (s *Server) BroadcastInventory(inv wire.InvVect) {
	s.relay.Expire()
	s.metrics.relaySize(s.relay.Count())

	handles := s.ListPeers()
	defer releaseAll(handles)

	n := 0
	for _, h := range handles {
		if h.QueueInventoryAnnouncement(inv) {
			n += 1
		}
	}
	s.log.Debugf("broadcast: %s  queued: %d", inv, n)
}

// connectedTo - an existing connection to the same address
func (s *Server) connectedTo(address wire.NetAddress) bool {
	key := address.Key()

	s.RLock()
	defer s.RUnlock()
	for _, c := range s.peers {
		if key == c.Address().Key() {
			return true
		}
	}
	return false
}

func (s *Server) disconnectIP(ip net.IP, reason string) {
	handles := s.ListPeers()
	defer releaseAll(handles)

	for _, h := range handles {
		if ip.Equal(h.Address().IP) {
			h.Disconnect(reason)
		}
	}
}

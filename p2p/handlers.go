// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"math/rand"
	"time"

	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/peer"
	"github.com/agrocoin/agrocoind/tracker"
	"github.com/agrocoin/agrocoind/wire"
)

// addresses older than this are stored but not relayed
const addressRelayAge = 10 * time.Minute

// most addresses in a message that is still relayed
const addressRelayLimit = 10

// route one received message
func (s *Server) dispatch(c *peer.Connection, command string, payload []byte) {
	if c.IsDisconnecting() {
		return
	}

	if wire.CmdVersion == command {
		s.handleVersion(c, payload)
		return
	}

	if !c.VersionReceived() {
		c.Log().Warnf("%s: %s  command: %q", fault.ErrMessageBeforeHandshake, c, command)
		c.AdjustMisbehavior(earlyMessagePenalty)
		c.Disconnect(fault.ErrMessageBeforeHandshake.Error())
		return
	}

	switch command {
	case wire.CmdVerAck:
		s.handleVerAck(c)
	case wire.CmdInv:
		s.handleInv(c, payload)
	case wire.CmdGetData:
		s.handleGetData(c, payload)
	case wire.CmdTx:
		s.handleTx(c, payload)
	case wire.CmdBlock:
		s.handleBlock(c, payload)
	case wire.CmdAddr:
		s.handleAddr(c, payload)
	case wire.CmdGetAddr:
		s.handleGetAddr(c)
	case wire.CmdPing:
		// keep-alive only
	case wire.CmdReply:
		s.handleReply(c, payload)
	default:
		if h, ok := s.requestHandler(command); ok {
			s.handleRequest(c, h, payload)
			return
		}
		c.Log().Debugf("ignored command: %q from: %s", command, c)
	}
}

func (s *Server) handleInv(c *peer.Connection, payload []byte) {
	items, err := wire.DecodeInv(payload)
	if nil != err {
		c.Log().Warnf("inv: %s  error: %s", c, err)
		c.AdjustMisbehavior(badMessagePenalty)
		return
	}

	for _, inv := range items {
		c.AddKnownInventory(inv)
		if !s.have(inv) {
			c.AskFor(inv)
		}
	}
}

func (s *Server) handleGetData(c *peer.Connection, payload []byte) {
	items, err := wire.DecodeInv(payload)
	if nil != err {
		c.Log().Warnf("getdata: %s  error: %s", c, err)
		c.AdjustMisbehavior(badMessagePenalty)
		return
	}

	for i, inv := range items {
		if c.SendBufferFull() {
			c.Log().Debugf("getdata: %s  send buffer full after: %d of: %d", c, i, len(items))
			break
		}

		data, ok := s.relay.Lookup(inv)
		if !ok {
			data, ok = s.chain.Fetch(inv)
		}
		if !ok {
			continue
		}
		err := c.PushMessage(inv.Type.Command(), data)
		if nil != err {
			return
		}
	}
}

func (s *Server) handleTx(c *peer.Connection, payload []byte) {
	inv := wire.InvVect{
		Type: wire.InvTx,
		Hash: wire.TransactionHash(payload),
	}
	c.AddKnownInventory(inv)
	s.scheduler.Forget(inv)

	if s.have(inv) {
		return
	}

	err := s.chain.AcceptTransaction(payload)
	if nil != err {
		s.rejected(c, inv, err)
		return
	}
	s.relayObject(inv, payload)
}

func (s *Server) handleBlock(c *peer.Connection, payload []byte) {
	hash, err := wire.BlockHash(payload)
	if nil != err {
		c.Log().Warnf("block: %s  error: %s", c, err)
		c.AdjustMisbehavior(badMessagePenalty)
		return
	}
	inv := wire.InvVect{
		Type: wire.InvBlock,
		Hash: hash,
	}
	c.AddKnownInventory(inv)
	s.scheduler.Forget(inv)

	if s.have(inv) {
		return
	}

	if height, ok := s.chain.ConnectHeight(payload); ok && !s.checkpoints.Validate(height, hash) {
		c.Log().Warnf("block: %s  height: %d  rejected by checkpoint from: %s", hash, height, c)
		c.AdjustMisbehavior(checkpointPenalty)
		return
	}

	err = s.chain.AcceptBlock(payload)
	if nil != err {
		s.rejected(c, inv, err)
		return
	}
	s.relayObject(inv, payload)
}

func (s *Server) rejected(c *peer.Connection, inv wire.InvVect, err error) {
	c.Log().Infof("%s from: %s  error: %s", inv, c, err)
	if r, ok := err.(*Rejection); ok && r.Score > 0 {
		c.AdjustMisbehavior(r.Score)
	}
}

func (s *Server) handleAddr(c *peer.Connection, payload []byte) {
	addresses, err := wire.DecodeAddr(payload)
	if nil != err {
		c.Log().Warnf("addr: %s  error: %s", c, err)
		c.AdjustMisbehavior(badMessagePenalty)
		return
	}

	now := time.Now()
	recent := make([]wire.NetAddress, 0, len(addresses))
	for _, a := range addresses {
		c.AddKnownAddress(a)
		if !a.IsRoutable() {
			continue
		}
		if len(addresses) <= addressRelayLimit && now.Sub(time.Unix(int64(a.Timestamp), 0)) < addressRelayAge {
			recent = append(recent, a)
		}
	}
	s.addresses.Add(addresses, c.Address())

	if len(recent) > 0 {
		s.relayAddresses(c, recent)
	}

	if c.IsOneShot() {
		c.Disconnect("one shot complete")
	}
}

// pass fresh addresses on to a few other peers
func (s *Server) relayAddresses(from *peer.Connection, addresses []wire.NetAddress) {
	handles := s.ListPeers()
	defer releaseAll(handles)

	candidates := make([]*peer.Handle, 0, len(handles))
	for _, h := range handles {
		if h.ID() != from.ID() && h.IsActive() {
			candidates = append(candidates, h)
		}
	}
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > addressRelayCount {
		candidates = candidates[:addressRelayCount]
	}

	for _, h := range candidates {
		for _, a := range addresses {
			h.QueueAddress(a)
		}
	}
}

func (s *Server) handleGetAddr(c *peer.Connection) {
	for _, a := range s.addresses.Sample(wire.MaximumAddresses) {
		c.QueueAddress(a)
	}
}

func (s *Server) handleReply(c *peer.Connection, payload []byte) {
	token, rest, err := wire.DecodeReply(payload)
	if nil != err {
		c.AdjustMisbehavior(earlyMessagePenalty)
		return
	}
	if !c.ResolveReply(tracker.Token(token), rest) {
		c.Log().Debugf("unmatched reply from: %s", c)
	}
}

func (s *Server) handleRequest(c *peer.Connection, handler RequestHandler, payload []byte) {
	token, rest, err := wire.DecodeReply(payload)
	if nil != err {
		c.AdjustMisbehavior(earlyMessagePenalty)
		return
	}

	answer, err := handler(c, rest)
	if nil != err {
		c.Log().Infof("request from: %s  error: %s", c, err)
		return
	}
	_ = c.PushMessage(wire.CmdReply, wire.EncodeReply(token, answer))
}

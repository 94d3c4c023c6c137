// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"context"
	"time"

	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/peer"
	"github.com/agrocoin/agrocoind/version"
	"github.com/agrocoin/agrocoind/wire"
)

// send our version message
func (s *Server) pushVersion(c *peer.Connection) {
	m := &wire.MsgVersion{
		ProtocolVersion: version.ProtocolVersion,
		Services:        wire.NodeNetwork,
		Timestamp:       time.Now().Unix(),
		AddrReceiver:    c.Address(),
		AddrFrom:        wire.NetAddress{Services: wire.NodeNetwork},
		Nonce:           s.nonce,
		SubVersion:      version.SubVersion(),
		StartHeight:     s.chain.Height(),
	}

	err := c.PushMessage(wire.CmdVersion, wire.EncodeVersion(m))
	if nil != err {
		c.Log().Errorf("push version: %s  error: %s", c, err)
		return
	}
	c.MarkVersionSent()
}

func (s *Server) handleVersion(c *peer.Connection, payload []byte) {
	log := c.Log()

	if c.VersionReceived() {
		c.AdjustMisbehavior(duplicateVersionCost)
		return
	}

	m, err := wire.DecodeVersion(payload)
	if nil != err {
		log.Warnf("version: %s  error: %s", c, err)
		c.AdjustMisbehavior(badMessagePenalty)
		c.Disconnect(err.Error())
		return
	}

	if m.ProtocolVersion < version.MinimumPeerProtocol {
		log.Infof("obsolete version: %d from: %s", m.ProtocolVersion, c)
		s.metrics.handshakeResult("incompatible")
		c.Disconnect(fault.ErrIncompatibleVersion.Error())
		return
	}

	if m.Nonce == s.nonce && m.Nonce > 1 {
		log.Infof("connected to self: %s", c)
		s.metrics.handshakeResult("self")
		c.Disconnect(fault.ErrSelfConnection.Error())
		return
	}

	if s.bans.IsBanned(c.Address().IP) {
		s.metrics.handshakeResult("banned")
		c.Disconnect(fault.ErrAddressIsBanned.Error())
		return
	}

	err = c.SetRemoteVersion(m)
	if nil != err {
		c.AdjustMisbehavior(duplicateVersionCost)
		return
	}

	if c.IsInbound() {
		s.pushVersion(c)
	}

	_ = c.PushMessage(wire.CmdVerAck, nil)

	if !c.IsInbound() {
		// learn addresses from the nodes we chose
		_ = c.PushMessage(wire.CmdGetAddr, nil)
		s.addresses.MarkGood(c.Address())
	}

	if c.TryActivate() {
		s.metrics.handshakeResult("success")
		log.Infof("active: %s  version: %d  subversion: %q  height: %d", c, m.ProtocolVersion, m.SubVersion, m.StartHeight)
		s.activated(c)
	}
}

func (s *Server) handleVerAck(c *peer.Connection) {
	c.MarkVerAck()
	if c.TryActivate() {
		s.activated(c)
	}
}

// a peer has just become active
//
// outbound peers are asked for their tip; the connection is kept
// referenced for as long as the answer may take
func (s *Server) activated(c *peer.Connection) {
	if c.IsInbound() || c.IsOneShot() {
		return
	}
	c.AcquireFor(tipTimeout)
	s.tipRequests.Add(1)
	go func() {
		defer s.tipRequests.Done()
		s.requestTip(c)
	}()
}

// fetch the peer's best block when it is ahead of the local chain
func (s *Server) requestTip(c *peer.Connection) {
	ctx, cancel := context.WithTimeout(context.Background(), tipTimeout)
	defer cancel()

	reply, err := c.Request(ctx, wire.CmdGetTip, nil)
	if nil != err {
		c.Log().Debugf("gettip: %s  error: %s", c, err)
		return
	}

	height, tip, err := wire.DecodeTip(reply)
	if nil != err {
		c.Log().Warnf("gettip: %s  error: %s", c, err)
		c.AdjustMisbehavior(earlyMessagePenalty)
		return
	}
	c.SetTipHeight(height)

	inv := wire.InvVect{
		Type: wire.InvBlock,
		Hash: tip,
	}
	if height > s.chain.Height() && !s.have(inv) {
		c.Log().Infof("peer: %s  ahead at: %d  tip: %s", c, height, tip)
		c.AskFor(inv)
	}
}

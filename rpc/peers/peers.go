// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peers

import (
	"net"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/agrocoin/agrocoind/ban"
	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/peer"
	"github.com/agrocoin/agrocoind/rpc/ratelimit"
)

const (
	rateLimitPeers = 100
	rateBurstPeers = 50

	// longest ban a client may request
	maximumBanSeconds = 365 * 24 * 60 * 60
)

// Manager - peer registry and ban list operations
type Manager interface {
	Peers() []peer.Stats
	Ban(ip net.IP, until time.Time)
	Unban(ip net.IP)
	ClearBans()
	Banned() []ban.Entry
}

// Peers - type for RPC calls
type Peers struct {
	log     *logger.L
	limiter *rate.Limiter
	manager Manager
}

// New - create the Peers RPC receiver
func New(log *logger.L, manager Manager) *Peers {
	return &Peers{
		log:     log,
		limiter: rate.NewLimiter(rateLimitPeers, rateBurstPeers),
		manager: manager,
	}
}

// ListArguments - empty arguments for list request
type ListArguments struct{}

// ListReply - every registered peer
type ListReply struct {
	Peers []peer.Stats `json:"peers"`
}

// List - statistics of every registered connection
func (p *Peers) List(_ *ListArguments, reply *ListReply) error {
	if err := ratelimit.Limit(p.limiter); nil != err {
		return err
	}

	reply.Peers = p.manager.Peers()
	return nil
}

// BanArguments - address and duration of a ban
type BanArguments struct {
	IP      string `json:"ip"`
	Seconds int64  `json:"seconds"`
}

// BanReply - end of the ban
type BanReply struct {
	Until time.Time `json:"until"`
}

// Ban - refuse an address, disconnecting any live connection from it
func (p *Peers) Ban(arguments *BanArguments, reply *BanReply) error {
	if err := ratelimit.Limit(p.limiter); nil != err {
		return err
	}

	ip := net.ParseIP(arguments.IP)
	if nil == ip {
		return fault.ErrInvalidIPAddress
	}
	if arguments.Seconds <= 0 || arguments.Seconds > maximumBanSeconds {
		return fault.ErrInvalidCount
	}

	until := time.Now().Add(time.Duration(arguments.Seconds) * time.Second).UTC()
	p.manager.Ban(ip, until)
	p.log.Infof("banned: %s until: %s", ip, until)

	reply.Until = until
	return nil
}

// UnbanArguments - address to release
type UnbanArguments struct {
	IP string `json:"ip"`
}

// UnbanReply - empty
type UnbanReply struct{}

// Unban - lift the ban on one address
func (p *Peers) Unban(arguments *UnbanArguments, _ *UnbanReply) error {
	if err := ratelimit.Limit(p.limiter); nil != err {
		return err
	}

	ip := net.ParseIP(arguments.IP)
	if nil == ip {
		return fault.ErrInvalidIPAddress
	}
	p.manager.Unban(ip)
	p.log.Infof("unbanned: %s", ip)
	return nil
}

// ClearArguments - empty
type ClearArguments struct{}

// ClearReply - empty
type ClearReply struct{}

// ClearBans - lift every ban
func (p *Peers) ClearBans(_ *ClearArguments, _ *ClearReply) error {
	if err := ratelimit.Limit(p.limiter); nil != err {
		return err
	}

	p.manager.ClearBans()
	p.log.Info("all bans cleared")
	return nil
}

// BannedArguments - empty
type BannedArguments struct{}

// BannedReply - current bans
type BannedReply struct {
	Bans []ban.Entry `json:"bans"`
}

// Banned - list the current bans
func (p *Peers) Banned(_ *BannedArguments, reply *BannedReply) error {
	if err := ratelimit.Limit(p.limiter); nil != err {
		return err
	}

	reply.Bans = p.manager.Banned()
	return nil
}

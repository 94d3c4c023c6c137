// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"crypto/rand"
	"encoding/binary"
	"net"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/agrocoin/agrocoind/askfor"
	"github.com/agrocoin/agrocoind/background"
	"github.com/agrocoin/agrocoind/ban"
	"github.com/agrocoin/agrocoind/cache"
	"github.com/agrocoin/agrocoind/checkpoint"
	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/messagebus"
	"github.com/agrocoin/agrocoind/peer"
	"github.com/agrocoin/agrocoind/wire"
)

// Collaborators - the parts of the node the network depends on
type Collaborators struct {
	Chain       Chain
	Addresses   AddressSource
	Checkpoints *checkpoint.Checker
	Bans        *ban.List
	Publisher   Publisher // optional
}

// Server - the peer network
type Server struct {
	sync.RWMutex // protects the registry

	log         *logger.L
	config      Configuration
	magic       wire.Magic
	peerConfig  peer.Config
	chain       Chain
	addresses   AddressSource
	checkpoints *checkpoint.Checker
	bans        *ban.List
	publisher   Publisher
	relay       *cache.Relay
	scheduler   *askfor.Scheduler
	bus         *messagebus.Bus
	metrics     *networkMetrics
	nonce       uint64

	// registry
	peers   map[uint64]*peer.Connection
	removed []*peer.Connection

	handlersLock sync.RWMutex
	handlers     map[string]RequestHandler

	// tip requests still waiting for an answer
	tipRequests sync.WaitGroup

	listeners  []net.Listener
	background *background.T
}

// New - create a server
func New(log *logger.L, magic wire.Magic, config Configuration, collaborators Collaborators) (*Server, error) {
	if nil == collaborators.Chain || nil == collaborators.Addresses || nil == collaborators.Bans {
		return nil, fault.ErrMissingParameters
	}

	config = config.withDefaults()

	checkpoints := collaborators.Checkpoints
	if nil == checkpoints {
		checkpoints = checkpoint.New(true)
	}

	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); nil != err {
		return nil, err
	}

	s := &Server{
		log:         log,
		config:      config,
		magic:       magic,
		chain:       collaborators.Chain,
		addresses:   collaborators.Addresses,
		checkpoints: checkpoints,
		bans:        collaborators.Bans,
		publisher:   collaborators.Publisher,
		relay:       cache.New(log, cache.DefaultTTL, nil),
		scheduler:   askfor.New(nil),
		bus:         messagebus.New(config.Dispatchers, defaultQueueSize),
		metrics:     newNetworkMetrics(),
		nonce:       binary.LittleEndian.Uint64(nonce),
		peers:       make(map[uint64]*peer.Connection),
		handlers:    make(map[string]RequestHandler),
	}

	s.peerConfig = config.peerConfig(peer.DefaultConfig(magic))
	s.peerConfig.Sent = s.metrics.sent

	return s, nil
}

// Start - open listeners and run the background processes
func (s *Server) Start() error {
	for _, listen := range s.config.Listen {
		l, err := net.Listen("tcp", listen)
		if nil != err {
			s.closeListeners()
			return err
		}
		s.log.Infof("listening on: %s", l.Addr())
		s.listeners = append(s.listeners, l)
	}

	processes := background.Processes{
		s.relay,
		&sweeper{s: s},
		&flusher{s: s},
		&drainer{s: s},
		&dialer{s: s},
	}
	for _, l := range s.listeners {
		processes = append(processes, &listener{s: s, l: l})
	}
	for i := 0; i < s.bus.Shards(); i += 1 {
		processes = append(processes, &dispatcher{s: s, shard: i})
	}

	s.background = background.Start(processes, nil)
	return nil
}

// Stop - close every connection and stop the background processes
func (s *Server) Stop() {
	s.closeListeners()
	s.bus.Close()
	s.background.Stop()

	s.Lock()
	all := make([]*peer.Connection, 0, len(s.peers)+len(s.removed))
	for _, c := range s.peers {
		all = append(all, c)
	}
	all = append(all, s.removed...)
	s.peers = make(map[uint64]*peer.Connection)
	s.removed = nil
	s.Unlock()

	for _, c := range all {
		c.Close()
	}
	s.tipRequests.Wait()
	s.log.Info("stopped")
}

func (s *Server) closeListeners() {
	for _, l := range s.listeners {
		_ = l.Close()
	}
}

// ListenAddresses - actual addresses of the listeners
func (s *Server) ListenAddresses() []net.Addr {
	addresses := make([]net.Addr, 0, len(s.listeners))
	for _, l := range s.listeners {
		addresses = append(addresses, l.Addr())
	}
	return addresses
}

// RegisterRequestHandler - answer requests carrying a correlation token
// for a command
func (s *Server) RegisterRequestHandler(command string, handler RequestHandler) {
	s.handlersLock.Lock()
	s.handlers[command] = handler
	s.handlersLock.Unlock()
}

func (s *Server) requestHandler(command string) (RequestHandler, bool) {
	s.handlersLock.RLock()
	defer s.handlersLock.RUnlock()
	h, ok := s.handlers[command]
	return h, ok
}

// OnNewLocalTransaction - a transaction created or accepted locally
func (s *Server) OnNewLocalTransaction(inv wire.InvVect, payload []byte) {
	s.relayObject(inv, payload)
}

// OnNewLocalBlock - a block created or accepted locally
func (s *Server) OnNewLocalBlock(inv wire.InvVect, payload []byte) {
	s.relayObject(inv, payload)
}

func (s *Server) relayObject(inv wire.InvVect, payload []byte) {
	s.relay.Publish(inv, payload)
	s.BroadcastInventory(inv)
	if nil != s.publisher {
		s.publisher.Publish(inv.Type.Command(), payload)
	}
}

// Relay - payload of a recently relayed object
func (s *Server) Relay(inv wire.InvVect) ([]byte, bool) {
	return s.relay.Lookup(inv)
}

// have - the object is held either in the relay cache or the chain
func (s *Server) have(inv wire.InvVect) bool {
	if _, ok := s.relay.Lookup(inv); ok {
		return true
	}
	return s.chain.HaveInventory(inv)
}

// BanFor - ban an address, used by connections that misbehave
func (s *Server) BanFor(ip net.IP, d time.Duration) {
	s.bans.BanFor(ip, d)
	s.metrics.bans.Inc()
}

// Ban - refuse an address until the given time
func (s *Server) Ban(ip net.IP, until time.Time) {
	s.bans.Ban(ip, until)
	s.disconnectIP(ip, "banned")
}

// IsBanned - address currently refused
func (s *Server) IsBanned(ip net.IP) bool {
	return s.bans.IsBanned(ip)
}

// Unban - lift a single ban
func (s *Server) Unban(ip net.IP) {
	s.bans.Unban(ip)
}

// ClearBans - lift every ban
func (s *Server) ClearBans() {
	s.bans.Clear()
}

// Banned - current bans
func (s *Server) Banned() []ban.Entry {
	return s.bans.List()
}

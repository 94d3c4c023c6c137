// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"

	"github.com/agrocoin/agrocoind/askfor"
	"github.com/agrocoin/agrocoind/limitedset"
	"github.com/agrocoin/agrocoind/tracker"
	"github.com/agrocoin/agrocoind/wire"
)

// Banner - receives bans for misbehaving peers
type Banner interface {
	BanFor(ip net.IP, d time.Duration)
}

// source of connection identifiers
var nextID atomic.Uint64

// Connection - state of one remote node
type Connection struct {
	log       *logger.L
	id        uint64
	conn      net.Conn
	address   wire.NetAddress
	inbound   bool
	oneshot   bool
	config    Config
	scheduler *askfor.Scheduler
	banner    Banner
	tracker   *tracker.Tracker
	limiter   *rate.Limiter
	connected time.Time

	state         atomic.Int32
	misbehavior   atomic.Int32
	lastSend      atomic.Int64
	lastRecv      atomic.Int64
	bytesSent     atomic.Uint64
	bytesReceived atomic.Uint64
	started       atomic.Int32
	tipHeight     atomic.Int32

	reasonLock sync.Mutex
	reason     string

	// lifetime
	refLock     sync.Mutex
	refCount    int
	releaseTime time.Time

	// handshake
	handshakeLock   sync.Mutex
	versionSent     bool
	versionReceived bool
	verAck          bool
	remote          wire.MsgVersion

	// framing: held from BeginMessage to End or Abort
	frameLock sync.Mutex

	// complete frames waiting for the writer
	sendLock   sync.Mutex
	sendQueue  [][]byte
	sendSize   int
	sendSignal chan struct{}

	// gossip
	inventoryLock    sync.Mutex
	knownInventory   *limitedset.LimitedSet
	pendingInventory []wire.InvVect
	pendingSet       mapset.Set[wire.InvVect]
	knownAddresses   *limitedset.LimitedSet
	pendingAddresses []wire.NetAddress
	askFor           *askfor.Queue

	disconnecting chan struct{}
	closeOnce     sync.Once
	finished      sync.WaitGroup
}

// New - wrap an established socket
//
// the connection starts in Connecting; the caller moves it to
// Handshaking and calls Start
func New(
	log *logger.L,
	conn net.Conn,
	address wire.NetAddress,
	inbound bool,
	oneshot bool,
	config Config,
	scheduler *askfor.Scheduler,
	banner Banner,
) *Connection {

	config = config.withDefaults()
	now := time.Now()

	c := &Connection{
		log:              log,
		id:               nextID.Inc(),
		conn:             conn,
		address:          address,
		inbound:          inbound,
		oneshot:          oneshot,
		config:           config,
		scheduler:        scheduler,
		banner:           banner,
		tracker:          tracker.New(log, tracker.DefaultTimeout),
		limiter:          rate.NewLimiter(rate.Limit(config.MessageRate), config.MessageBurst),
		connected:        now,
		sendSignal:       make(chan struct{}, 1),
		knownInventory:   limitedset.New(config.SendBufferSize / 1000),
		pendingInventory: make([]wire.InvVect, 0, 64),
		pendingSet:       mapset.NewThreadUnsafeSet[wire.InvVect](),
		knownAddresses:   limitedset.New(knownAddressesSize),
		pendingAddresses: make([]wire.NetAddress, 0, 16),
		askFor:           askfor.NewQueue(),
		disconnecting:    make(chan struct{}),
	}
	c.state.Store(int32(Connecting))
	c.lastSend.Store(now.UnixNano())
	c.lastRecv.Store(now.UnixNano())

	return c
}

// ID - unique identifier of this connection within the process
func (c *Connection) ID() uint64 {
	return c.id
}

// Address - remote address
func (c *Connection) Address() wire.NetAddress {
	return c.address
}

// IsInbound - remote end initiated the connection
func (c *Connection) IsInbound() bool {
	return c.inbound
}

// IsOneShot - connection is closed once addresses have been received
func (c *Connection) IsOneShot() bool {
	return c.oneshot
}

// Log - the connection's log channel
func (c *Connection) Log() *logger.L {
	return c.log
}

// ConnectedTime - when the connection was created
func (c *Connection) ConnectedTime() time.Time {
	return c.connected
}

// LastSend - time of the last completed write
func (c *Connection) LastSend() time.Time {
	return time.Unix(0, c.lastSend.Load())
}

// LastReceive - time of the last complete message read
func (c *Connection) LastReceive() time.Time {
	return time.Unix(0, c.lastRecv.Load())
}

// String - for logging
func (c *Connection) String() string {
	direction := "out"
	if c.inbound {
		direction = "in"
	}
	return fmt.Sprintf("%d/%s/%s", c.id, direction, c.address)
}

// Disconnect - mark for disconnect and unblock any pending I/O
//
// returns false if the connection was already disconnecting
func (c *Connection) Disconnect(reason string) bool {
	for {
		s := c.State()
		if s >= Disconnecting {
			return false
		}
		if c.state.CAS(int32(s), int32(Disconnecting)) {
			break
		}
	}

	c.reasonLock.Lock()
	c.reason = reason
	c.reasonLock.Unlock()

	c.log.Infof("disconnect: %s  reason: %s", c, reason)

	close(c.disconnecting)
	_ = c.conn.SetDeadline(time.Now())
	return true
}

// DisconnectReason - why the connection was marked for disconnect
func (c *Connection) DisconnectReason() string {
	c.reasonLock.Lock()
	defer c.reasonLock.Unlock()
	return c.reason
}

// Close - release the socket, exactly once, and wait for the reader and
// writer to finish
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		c.Disconnect("closed")
		err := c.conn.Close()
		if nil != err {
			c.log.Debugf("close: %s  error: %s", c, err)
		}
		c.finished.Wait()
		c.state.Store(int32(Closed))
		c.log.Infof("closed: %s", c)
	})
}

// AdjustMisbehavior - add to the misbehaviour score
//
// returns true once the threshold is reached; the connection is then
// marked for disconnect and the remote address banned for a time in
// proportion to the score; local addresses are never banned
func (c *Connection) AdjustMisbehavior(amount int32) bool {
	if c.address.IsLocal() {
		c.log.Warnf("local node misbehaving: %s  amount: %d", c, amount)
		return false
	}

	score := c.misbehavior.Add(amount)
	c.log.Infof("misbehaving: %s  amount: %d  score: %d", c, amount, score)

	threshold := c.config.BanThreshold
	if score < threshold {
		return false
	}

	// only the call that crosses the threshold bans
	if score-amount < threshold {
		d := time.Duration(int64(c.config.BanTime) / int64(threshold) * int64(score))
		if nil != c.banner {
			c.banner.BanFor(c.address.IP, d)
		}
		c.log.Warnf("ban: %s  for: %s", c, d)
	}
	c.Disconnect("misbehaving")
	return true
}

// Misbehavior - current score
func (c *Connection) Misbehavior() int32 {
	return c.misbehavior.Load()
}

// ExpireRequests - drop request trackers that have timed out
func (c *Connection) ExpireRequests() {
	c.tracker.Expire()
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"time"

	"github.com/agrocoin/agrocoind/peer"
)

// defaults
const (
	defaultMaximumConnections = 125
	defaultMaximumOutbound    = 8
	defaultDispatchers        = 4
	defaultQueueSize          = 1000

	handshakeTimeout = 60 * time.Second
	idleTimeout      = 90 * time.Minute
	keepAliveTime    = 30 * time.Minute
	dialTimeout      = 5 * time.Second
	tipTimeout       = 30 * time.Second

	sweepInterval = 5 * time.Second
	flushInterval = time.Second
	drainInterval = time.Second
	dialInterval  = 500 * time.Millisecond

	// largest inv or getdata sent at once
	inventoryChunk = 1000

	// number of peers an address is relayed to
	addressRelayCount = 2

	// penalties
	badMessagePenalty    = 20
	earlyMessagePenalty  = 1
	checkpointPenalty    = 100
	duplicateVersionCost = 1
)

// Configuration - peer network settings, ban time is in seconds
type Configuration struct {
	Listen             []string `gluamapper:"listen" json:"listen"`
	Connect            []string `gluamapper:"connect" json:"connect"`
	Seed               []string `gluamapper:"seed" json:"seed"`
	MaximumConnections int      `gluamapper:"maximum_connections" json:"maximum_connections"`
	MaximumOutbound    int      `gluamapper:"maximum_outbound" json:"maximum_outbound"`
	Dispatchers        int      `gluamapper:"dispatchers" json:"dispatchers"`
	SendBufferSize     int      `gluamapper:"send_buffer_size" json:"send_buffer_size"`
	ReceiveBufferSize  int      `gluamapper:"receive_buffer_size" json:"receive_buffer_size"`
	BanScore           int      `gluamapper:"ban_score" json:"ban_score"`
	BanTime            int      `gluamapper:"ban_time" json:"ban_time"`
	MessageRate        float64  `gluamapper:"message_rate" json:"message_rate"`
	MessageBurst       int      `gluamapper:"message_burst" json:"message_burst"`
}

// fill zero fields with defaults
func (config Configuration) withDefaults() Configuration {
	if config.MaximumConnections <= 0 {
		config.MaximumConnections = defaultMaximumConnections
	}
	if config.MaximumOutbound <= 0 {
		config.MaximumOutbound = defaultMaximumOutbound
	}
	if config.MaximumOutbound > config.MaximumConnections {
		config.MaximumOutbound = config.MaximumConnections
	}
	if config.Dispatchers <= 0 {
		config.Dispatchers = defaultDispatchers
	}
	return config
}

// per connection limits derived from the configuration
func (config Configuration) peerConfig(base peer.Config) peer.Config {
	base.SendBufferSize = config.SendBufferSize
	base.ReceiveBufferSize = config.ReceiveBufferSize
	base.BanThreshold = int32(config.BanScore)
	base.BanTime = time.Duration(config.BanTime) * time.Second
	base.MessageRate = config.MessageRate
	base.MessageBurst = config.MessageBurst
	return base
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/agrocoin/agrocoind/blockdigest"
	"github.com/agrocoin/agrocoind/counter"
	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/mode"
	"github.com/agrocoin/agrocoind/rpc/ratelimit"
	"github.com/agrocoin/agrocoind/version"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Status - chain state shown to clients
type Status interface {
	Height() int32
	Tip() blockdigest.Digest
	TransactionCount() int
}

// Network - connection state shown to clients
type Network interface {
	PeerCount() int
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	status  Status
	network Network
	counter *counter.Counter
}

// New - create the Node RPC receiver
func New(log *logger.L, start time.Time, version string, counter *counter.Counter, status Status, network Network) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		status:  status,
		network: network,
		counter: counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain        string    `json:"chain"`
	Mode         string    `json:"mode"`
	Block        BlockInfo `json:"block"`
	RPCs         uint64    `json:"rpcs"`
	Peers        uint64    `json:"peers"`
	Transactions int       `json:"transactions"`
	Version      string    `json:"version"`
	SubVersion   string    `json:"subVersion"`
	Protocol     int32     `json:"protocol"`
	Uptime       string    `json:"uptime"`
}

// BlockInfo - the highest block held by the node
type BlockInfo struct {
	Height int32  `json:"height"`
	Hash   string `json:"hash"`
}

// Info - return some information about this node
// only enough for clients to determine node state
// for per-peer detail use Peers.List
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.status || nil == node.network {
		return fault.ErrNotInitialised
	}

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.Block = BlockInfo{
		Height: node.status.Height(),
		Hash:   node.status.Tip().String(),
	}
	reply.RPCs = node.counter.Uint64()
	reply.Peers = uint64(node.network.PeerCount())
	reply.Transactions = node.status.TransactionCount()
	reply.Version = node.Version
	reply.SubVersion = version.SubVersion()
	reply.Protocol = version.ProtocolVersion
	reply.Uptime = time.Since(node.Start).String()
	return nil
}

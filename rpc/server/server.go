// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/agrocoin/agrocoind/counter"
	"github.com/agrocoin/agrocoind/rpc/node"
	"github.com/agrocoin/agrocoind/rpc/peers"
)

// Network - everything the RPC services need from the peer server
type Network interface {
	node.Network
	peers.Manager
}

// Create - an RPC server with every client service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, status node.Status, network Network) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(node.New(log, start, version, rpcCount, status, network))
	_ = server.Register(peers.New(log, network))

	return server
}

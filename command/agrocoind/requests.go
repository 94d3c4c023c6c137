// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/agrocoin/agrocoind/blockdigest"
	"github.com/agrocoin/agrocoind/p2p"
	"github.com/agrocoin/agrocoind/peer"
	"github.com/agrocoin/agrocoind/wire"
)

type tipSource interface {
	Height() int32
	Tip() blockdigest.Digest
}

func registerRequestHandlers(server *p2p.Server, chain tipSource) {
	server.RegisterRequestHandler(wire.CmdGetTip, tipHandler(chain))
}

// answer with the local best height and block
func tipHandler(chain tipSource) p2p.RequestHandler {
	return func(_ *peer.Connection, _ []byte) ([]byte, error) {
		return wire.EncodeTip(chain.Height(), chain.Tip()), nil
	}
}

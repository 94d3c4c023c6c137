// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"fmt"

	"github.com/agrocoin/agrocoind/peer"
	"github.com/agrocoin/agrocoind/wire"
)

// Chain - the block and transaction store behind the network
type Chain interface {
	// current best height
	Height() int32

	// true if the item is already held
	HaveInventory(inv wire.InvVect) bool

	// raw transaction or block for a getdata request
	Fetch(inv wire.InvVect) ([]byte, bool)

	// accept new objects, a *Rejection error gives a misbehaviour score
	AcceptTransaction(payload []byte) error
	AcceptBlock(payload []byte) error

	// height a block would have once connected, false if its parent
	// is unknown
	ConnectHeight(block []byte) (uint64, bool)
}

// AddressSource - supplies addresses for outbound connections
type AddressSource interface {
	Add(addresses []wire.NetAddress, source wire.NetAddress)
	Sample(n int) []wire.NetAddress
	SelectOutboundCandidate() (wire.NetAddress, bool)
	MarkAttempt(address wire.NetAddress)
	MarkGood(address wire.NetAddress)
}

// Publisher - external notification of newly accepted objects
type Publisher interface {
	Publish(kind string, payload []byte)
}

// RequestHandler - answers a request sent with PushRequest, the result
// is returned to the sender in a reply message
type RequestHandler func(c *peer.Connection, payload []byte) ([]byte, error)

// Rejection - an object refused by the chain
type Rejection struct {
	Reason string
	Score  int32
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("rejected: %s (score: %d)", r.Reason, r.Score)
}

// Reject - create a rejection
func Reject(reason string, score int32) error {
	return &Rejection{
		Reason: reason,
		Score:  score,
	}
}

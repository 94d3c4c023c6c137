// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"github.com/agrocoin/agrocoind/blockdigest"
	"github.com/agrocoin/agrocoind/fault"
)

// MaximumInventory - most entries allowed in an inv or getdata message
const MaximumInventory = 50000

// BlockHeaderSize - bytes of a serialised block header
const BlockHeaderSize = 80

// size of one serialised inventory vector
const invVectSize = 4 + blockdigest.Length

// InvType - kind of object referenced by an inventory vector
type InvType uint32

// inventory kinds
const (
	InvError InvType = 0
	InvTx    InvType = 1
	InvBlock InvType = 2
)

// String - name of the kind
func (t InvType) String() string {
	switch t {
	case InvError:
		return "error"
	case InvTx:
		return "tx"
	case InvBlock:
		return "block"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(t))
	}
}

// Command - the message carrying an object of this kind
func (t InvType) Command() string {
	switch t {
	case InvTx:
		return CmdTx
	case InvBlock:
		return CmdBlock
	default:
		return ""
	}
}

// InvVect - identifies a transaction or block
type InvVect struct {
	Type InvType
	Hash blockdigest.Digest
}

// String - "tx 00ab…" form for logging
func (inv InvVect) String() string {
	return inv.Type.String() + " " + inv.Hash.String()
}

// EncodeInv - payload for inv and getdata
func EncodeInv(items []InvVect) []byte {
	p := make(packed, 0, 9+len(items)*invVectSize).varint(uint64(len(items)))
	for _, inv := range items {
		p = p.uint32(uint32(inv.Type)).bytes(inv.Hash[:])
	}
	return p
}

// DecodeInv - parse an inv or getdata payload
func DecodeInv(payload []byte) ([]InvVect, error) {
	u := unpacker{buffer: payload}
	count := u.varint()
	if nil != u.err {
		return nil, u.err
	}
	if count > MaximumInventory {
		return nil, fault.ErrTooManyItems
	}
	if uint64(u.remaining()) < count*invVectSize {
		return nil, fault.ErrTruncatedPayload
	}

	items := make([]InvVect, count)
	for i := range items {
		items[i].Type = InvType(u.uint32())
		copy(items[i].Hash[:], u.bytes(blockdigest.Length))
	}
	return items, u.err
}

// TransactionHash - inventory hash of a serialised transaction
func TransactionHash(payload []byte) blockdigest.Digest {
	return blockdigest.NewDigest(payload)
}

// BlockHash - inventory hash of a serialised block, i.e. the hash of
// its header
func BlockHash(payload []byte) (blockdigest.Digest, error) {
	if len(payload) < BlockHeaderSize {
		return blockdigest.Digest{}, fault.ErrTruncatedPayload
	}
	return blockdigest.NewDigest(payload[:BlockHeaderSize]), nil
}

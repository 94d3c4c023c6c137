// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/agrocoin/agrocoind/fault"
)

// MsgVersion - the first message sent on a connection
type MsgVersion struct {
	ProtocolVersion int32
	Services        uint64
	Timestamp       int64
	AddrReceiver    NetAddress
	AddrFrom        NetAddress
	Nonce           uint64
	SubVersion      string
	StartHeight     int32
}

// EncodeVersion - payload for a version message
func EncodeVersion(m *MsgVersion) []byte {
	return make(packed, 0, 128).
		uint32(uint32(m.ProtocolVersion)).
		uint64(m.Services).
		uint64(uint64(m.Timestamp)).
		netAddress(m.AddrReceiver).
		netAddress(m.AddrFrom).
		uint64(m.Nonce).
		varString(m.SubVersion).
		uint32(uint32(m.StartHeight))
}

// DecodeVersion - parse a version payload
//
// the fields after the sender's address are optional on the wire
func DecodeVersion(payload []byte) (*MsgVersion, error) {
	u := unpacker{buffer: payload}

	m := &MsgVersion{
		ProtocolVersion: int32(u.uint32()),
		Services:        u.uint64(),
		Timestamp:       int64(u.uint64()),
		AddrReceiver:    u.netAddress(),
	}
	if nil != u.err {
		return nil, fault.ErrInvalidVersion
	}

	if u.remaining() > 0 {
		m.AddrFrom = u.netAddress()
		m.Nonce = u.uint64()
	}
	if u.remaining() > 0 {
		m.SubVersion = u.varString()
	}
	if u.remaining() > 0 {
		m.StartHeight = int32(u.uint32())
	}
	if nil != u.err {
		if fault.ErrVarStringTooLong == u.err {
			return nil, u.err
		}
		return nil, fault.ErrInvalidVersion
	}
	return m, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"

	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/util"
)

// MaximumVarString - longest variable length string accepted
const MaximumVarString = 256

// packed payload under construction
type packed []byte

func (p packed) uint16BE(v uint16) packed { return binary.BigEndian.AppendUint16(p, v) }
func (p packed) uint32(v uint32) packed   { return binary.LittleEndian.AppendUint32(p, v) }
func (p packed) uint64(v uint64) packed   { return binary.LittleEndian.AppendUint64(p, v) }
func (p packed) varint(v uint64) packed   { return append(p, util.ToVarint(v)...) }
func (p packed) bytes(b []byte) packed    { return append(p, b...) }

func (p packed) varString(s string) packed {
	return p.varint(uint64(len(s))).bytes([]byte(s))
}

// payload being decoded
//
// the first error sticks and all later reads return zero values
type unpacker struct {
	buffer []byte
	err    error
}

func (u *unpacker) need(n int) bool {
	if nil != u.err {
		return false
	}
	if len(u.buffer) < n {
		u.err = fault.ErrTruncatedPayload
		return false
	}
	return true
}

func (u *unpacker) remaining() int {
	return len(u.buffer)
}

func (u *unpacker) uint16BE() uint16 {
	if !u.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(u.buffer)
	u.buffer = u.buffer[2:]
	return v
}

func (u *unpacker) uint32() uint32 {
	if !u.need(4) {
		return 0
	}
	v := binary.LittleEndian.Uint32(u.buffer)
	u.buffer = u.buffer[4:]
	return v
}

func (u *unpacker) uint64() uint64 {
	if !u.need(8) {
		return 0
	}
	v := binary.LittleEndian.Uint64(u.buffer)
	u.buffer = u.buffer[8:]
	return v
}

func (u *unpacker) bytes(n int) []byte {
	if !u.need(n) {
		return nil
	}
	v := make([]byte, n)
	copy(v, u.buffer)
	u.buffer = u.buffer[n:]
	return v
}

func (u *unpacker) varint() uint64 {
	if nil != u.err {
		return 0
	}
	v, n := util.FromVarint(u.buffer)
	if 0 == n {
		u.err = fault.ErrTruncatedPayload
		return 0
	}
	u.buffer = u.buffer[n:]
	return v
}

func (u *unpacker) varString() string {
	n := u.varint()
	if nil != u.err {
		return ""
	}
	if n > MaximumVarString {
		u.err = fault.ErrVarStringTooLong
		return ""
	}
	return string(u.bytes(int(n)))
}

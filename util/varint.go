// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"encoding/binary"
)

// VarintMaximumBytes - maximum possible number of bytes in a varint
const VarintMaximumBytes = 9

// ToVarint - convert a 64 bit unsigned integer to the compact size
// encoding used on the wire
//
//	value < 0xfd         1 byte:  value
//	value <= 0xffff      3 bytes: 0xfd + uint16 LE
//	value <= 0xffffffff  5 bytes: 0xfe + uint32 LE
//	otherwise            9 bytes: 0xff + uint64 LE
func ToVarint(value uint64) []byte {
	switch {
	case value < 0xfd:
		return []byte{byte(value)}
	case value <= 0xffff:
		result := make([]byte, 3)
		result[0] = 0xfd
		binary.LittleEndian.PutUint16(result[1:], uint16(value))
		return result
	case value <= 0xffffffff:
		result := make([]byte, 5)
		result[0] = 0xfe
		binary.LittleEndian.PutUint32(result[1:], uint32(value))
		return result
	default:
		result := make([]byte, 9)
		result[0] = 0xff
		binary.LittleEndian.PutUint64(result[1:], value)
		return result
	}
}

// FromVarint - convert the compact size at the start of buffer
//
// also return the number of bytes used as second value
// returns 0, 0 if the buffer is truncated or the value is not
// minimally encoded
func FromVarint(buffer []byte) (uint64, int) {
	if 0 == len(buffer) {
		return 0, 0
	}

	switch buffer[0] {
	case 0xfd:
		if len(buffer) < 3 {
			return 0, 0
		}
		value := uint64(binary.LittleEndian.Uint16(buffer[1:]))
		if value < 0xfd {
			return 0, 0
		}
		return value, 3
	case 0xfe:
		if len(buffer) < 5 {
			return 0, 0
		}
		value := uint64(binary.LittleEndian.Uint32(buffer[1:]))
		if value <= 0xffff {
			return 0, 0
		}
		return value, 5
	case 0xff:
		if len(buffer) < 9 {
			return 0, 0
		}
		value := binary.LittleEndian.Uint64(buffer[1:])
		if value <= 0xffffffff {
			return 0, 0
		}
		return value, 9
	default:
		return uint64(buffer[0]), 1
	}
}

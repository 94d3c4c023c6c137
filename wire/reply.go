// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/agrocoin/agrocoind/fault"
)

// TokenSize - bytes of a request correlation token
const TokenSize = 32

// EncodeReply - prefix a payload with a correlation token
//
// used both for requests and for the matching reply
func EncodeReply(token [TokenSize]byte, payload []byte) []byte {
	return make(packed, 0, TokenSize+len(payload)).bytes(token[:]).bytes(payload)
}

// DecodeReply - split a correlation token from its payload
func DecodeReply(payload []byte) ([TokenSize]byte, []byte, error) {
	var token [TokenSize]byte
	if len(payload) < TokenSize {
		return token, nil, fault.ErrInvalidToken
	}
	copy(token[:], payload[:TokenSize])
	return token, payload[TokenSize:], nil
}

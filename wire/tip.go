// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"github.com/agrocoin/agrocoind/blockdigest"
	"github.com/agrocoin/agrocoind/fault"
)

// TipSize - bytes of a gettip answer
const TipSize = 4 + blockdigest.Length

// EncodeTip - height(4 LE) | tip hash(32)
func EncodeTip(height int32, tip blockdigest.Digest) []byte {
	return make(packed, 0, TipSize).uint32(uint32(height)).bytes(tip[:])
}

// DecodeTip - height and hash of a gettip answer
func DecodeTip(payload []byte) (int32, blockdigest.Digest, error) {
	var tip blockdigest.Digest
	if TipSize != len(payload) {
		return 0, tip, fault.ErrTruncatedPayload
	}
	u := unpacker{buffer: payload}
	height := int32(u.uint32())
	copy(tip[:], u.bytes(blockdigest.Length))
	return height, tip, u.err
}

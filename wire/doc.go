// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire - message framing and payload encoding for the peer
// protocol
//
// every message is a 24 byte header followed by the payload; the
// header carries the network magic, a NUL padded command, the payload
// length and the first four bytes of the payload's double SHA-256
package wire

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package peer - one connection to a remote node
//
// a connection owns its socket and runs a reader and a writer:
//
//   - the reader decodes frames and hands each message to a delivery
//     function
//   - the writer drains a queue of complete frames
//
// messages are built with a MessageWriter and framed as a whole, so
// frames from different senders are never interleaved on the wire
//
// the connection also carries the per-peer gossip state: known and
// pending inventory, known and pending addresses, outstanding data
// requests, outstanding request/reply tokens and the misbehaviour
// score
package peer

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package p2p - the peer network
//
// the server owns the registry of connections and the shared gossip
// state: the relay cache, the data request scheduler and the ban list
//
// background processes:
//
//   - listener: accepts inbound connections
//   - dialer: makes outbound connections
//   - dispatchers: handle received messages, one per bus shard
//   - sweeper: timeouts and removal of dead connections
//   - flusher: sends queued inventory, addresses and keep-alives
//   - drainer: sends data requests as they become due
package p2p

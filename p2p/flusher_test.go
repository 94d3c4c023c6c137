// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/agrocoin/agrocoind/wire"
)

func TestFlushChunksInventory(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := newFixture(t, ctl, false)
	defer f.server.Stop()

	c, r := activeRegistered(t, f.server, publicAddress, true, false)
	for i := 0; i < 2500; i += 1 {
		c.QueueInventoryAnnouncement(txInv(fmt.Sprintf("tx %d", i)))
	}

	now := time.Now()
	f.server.flushPeer(c, now)

	for i, expected := range []int{1000, 1000, 500} {
		fr, ok := r.next()
		if !assert.True(t, ok, "missing frame: %d", i) {
			return
		}
		if !assert.Equal(t, wire.CmdInv, fr.command, "frame: %d", i) {
			return
		}
		items, err := wire.DecodeInv(fr.payload)
		assert.Nil(t, err, "decode inv: %d", i)
		assert.Equal(t, expected, len(items), "chunk size: %d", i)
	}
	assert.Equal(t, 0, len(c.PendingInventory()), "inventory left behind")

	// nothing queued, only the keep-alive once the link has been quiet
	f.server.flushPeer(c, now.Add(keepAliveTime+time.Minute))
	fr, ok := r.next()
	if assert.True(t, ok, "no keep-alive") {
		assert.Equal(t, wire.CmdPing, fr.command, "wrong keep-alive")
	}
}

func TestSweepIdlePeer(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := newFixture(t, ctl, false)
	defer f.server.Stop()

	c, _ := activeRegistered(t, f.server, publicAddress, true, false)
	now := time.Now()

	f.server.sweep(now.Add(idleTimeout - time.Minute))
	assert.True(t, c.IsActive(), "disconnected before idle timeout")
	assert.Equal(t, 1, f.server.PeerCount(), "removed before idle timeout")

	f.server.sweep(now.Add(idleTimeout + time.Minute))
	assert.True(t, c.IsDisconnecting(), "idle peer kept")
	assert.Equal(t, "inactivity", c.DisconnectReason(), "wrong reason")
	assert.Equal(t, 0, f.server.PeerCount(), "idle peer still registered")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"net"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/agrocoin/agrocoind/blockdigest"
	"github.com/agrocoin/agrocoind/peer"
	"github.com/agrocoin/agrocoind/version"
	"github.com/agrocoin/agrocoind/wire"
)

// dial out over a pipe and complete the handshake from the far end
func outboundHandshake(t *testing.T, f *fixture) (*peer.Connection, *remote) {
	local, far := net.Pipe()
	t.Cleanup(func() { _ = far.Close() })
	r := newRemote(t, far)

	f.addresses.EXPECT().MarkGood(gomock.Any())

	c, err := f.server.AddConnection(local, false, false)
	if nil != err {
		t.Fatalf("add connection error: %s", err)
	}
	if nil == r.expect(wire.CmdVersion) {
		t.Fatalf("no version")
	}
	r.sendVersion(version.ProtocolVersion)
	if !waitFor(c.IsActive) {
		t.Fatalf("not active: %s", c.State())
	}
	return c, r
}

// answer the gettip request with the given tip
func (r *remote) answerTip(height int32, tip blockdigest.Digest) bool {
	request := r.expect(wire.CmdGetTip)
	if nil == request {
		return false
	}
	token, _, err := wire.DecodeReply(request)
	if nil != err {
		return false
	}
	r.send(wire.CmdReply, wire.EncodeReply(token, wire.EncodeTip(height, tip)))
	return true
}

func TestOutboundAheadFetchesTip(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := newFixture(t, ctl, true)
	defer f.server.Stop()

	c, r := outboundHandshake(t, f)

	tip := blockdigest.NewDigest([]byte("tip at 70000"))
	if !assert.True(t, r.answerTip(70000, tip), "no gettip") {
		return
	}

	payload := r.expect(wire.CmdGetData)
	if !assert.NotNil(t, payload, "tip not requested") {
		return
	}
	items, err := wire.DecodeInv(payload)
	assert.Nil(t, err, "decode getdata")
	assert.Equal(t, []wire.InvVect{{Type: wire.InvBlock, Hash: tip}}, items, "wrong item")
	assert.Equal(t, int32(70000), c.Stats().TipHeight, "tip height not recorded")
	assert.Equal(t, 0, c.PendingRequests(), "request left pending")
}

func TestOutboundBehindNotAsked(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := newFixture(t, ctl, true)
	defer f.server.Stop()

	c, r := outboundHandshake(t, f)

	if !assert.True(t, r.answerTip(100, blockdigest.NewDigest([]byte("old tip"))), "no gettip") {
		return
	}
	assert.True(t, waitFor(func() bool { return 100 == c.Stats().TipHeight }), "tip height not recorded")
	assert.Equal(t, 0, c.OutstandingRequests(), "older tip requested")
}

func TestOutboundBadTipMisbehaves(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := newFixture(t, ctl, true)
	defer f.server.Stop()

	c, r := outboundHandshake(t, f)

	request := r.expect(wire.CmdGetTip)
	if !assert.NotNil(t, request, "no gettip") {
		return
	}
	token, _, err := wire.DecodeReply(request)
	assert.Nil(t, err, "decode request")
	r.send(wire.CmdReply, wire.EncodeReply(token, []byte{1, 2, 3}))

	assert.True(t, waitFor(func() bool { return earlyMessagePenalty == c.Misbehavior() }), "short tip not penalised")
}

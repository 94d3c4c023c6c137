// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"

	"github.com/agrocoin/agrocoind/ban"
	"github.com/agrocoin/agrocoind/p2p/mocks"
	"github.com/agrocoin/agrocoind/peer"
	"github.com/agrocoin/agrocoind/version"
	"github.com/agrocoin/agrocoind/wire"
)

const (
	testingDirName = "testing"
)

var testMagic = wire.Magic{0xfc, 0xc1, 0xb7, 0xdc}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

type fixture struct {
	server    *Server
	chain     *mocks.MockChain
	addresses *mocks.MockAddressSource
	publisher *mocks.MockPublisher
}

// a server with permissive collaborators; background processes are
// only started when start is set
func newFixture(t *testing.T, ctl *gomock.Controller, start bool) *fixture {
	f := newConfiguredFixture(t, ctl, Configuration{})
	f.addresses.EXPECT().SelectOutboundCandidate().Return(wire.NetAddress{}, false).AnyTimes()
	f.addresses.EXPECT().Sample(gomock.Any()).Return(nil).AnyTimes()

	if start {
		if err := f.server.Start(); nil != err {
			t.Fatalf("start error: %s", err)
		}
	}
	return f
}

// a stopped server where only the chain is permissive, the test sets
// up the address source
func newConfiguredFixture(t *testing.T, ctl *gomock.Controller, configuration Configuration) *fixture {
	chain := mocks.NewMockChain(ctl)
	addresses := mocks.NewMockAddressSource(ctl)
	publisher := mocks.NewMockPublisher(ctl)

	chain.EXPECT().Height().Return(int32(66101)).AnyTimes()
	chain.EXPECT().HaveInventory(gomock.Any()).Return(false).AnyTimes()

	s, err := New(logger.New("p2p"), testMagic, configuration, Collaborators{
		Chain:     chain,
		Addresses: addresses,
		Bans:      ban.New(logger.New("ban"), nil),
		Publisher: publisher,
	})
	if nil != err {
		t.Fatalf("new server error: %s", err)
	}
	return &fixture{
		server:    s,
		chain:     chain,
		addresses: addresses,
		publisher: publisher,
	}
}

type frame struct {
	command string
	payload []byte
}

// the far end of a connection
type remote struct {
	t      *testing.T
	conn   net.Conn
	frames chan frame
}

func newRemote(t *testing.T, conn net.Conn) *remote {
	r := &remote{
		t:      t,
		conn:   conn,
		frames: make(chan frame, 100),
	}
	go func() {
		defer close(r.frames)
		for {
			command, payload, _, err := wire.ReadMessage(conn, testMagic, wire.DefaultMaximumPayload)
			if nil != err {
				return
			}
			r.frames <- frame{command: command, payload: payload}
		}
	}()
	return r
}

func (r *remote) send(command string, payload []byte) {
	buffer, err := wire.Frame(testMagic, command, payload)
	if nil != err {
		r.t.Fatalf("frame error: %s", err)
	}
	_ = r.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := r.conn.Write(buffer); nil != err {
		r.t.Fatalf("write error: %s", err)
	}
}

func (r *remote) sendVersion(protocol int32) {
	r.send(wire.CmdVersion, wire.EncodeVersion(&wire.MsgVersion{
		ProtocolVersion: protocol,
		Services:        wire.NodeNetwork,
		Timestamp:       time.Now().Unix(),
		Nonce:           0x0102030405060708,
		SubVersion:      "/remote:0.1/",
		StartHeight:     10,
	}))
}

// wait for a command, skipping any others; nil if the connection
// closed or nothing arrived in time
func (r *remote) expect(command string) []byte {
	timeout := time.After(5 * time.Second)
	for {
		select {
		case f, ok := <-r.frames:
			if !ok {
				return nil
			}
			if command == f.command {
				if nil == f.payload {
					return []byte{}
				}
				return f.payload
			}
		case <-timeout:
			return nil
		}
	}
}

// inbound connection over a pipe, handshake completed
func (f *fixture) activePeer(t *testing.T) (*remote, func()) {
	local, far := net.Pipe()
	r := newRemote(t, far)

	c, err := f.server.AddConnection(local, true, false)
	if nil != err {
		t.Fatalf("add connection error: %s", err)
	}
	r.sendVersion(version.ProtocolVersion)
	if nil == r.expect(wire.CmdVerAck) {
		t.Fatalf("no verack")
	}
	if !waitFor(c.IsActive) {
		t.Fatalf("not active: %s", c.State())
	}
	return r, func() { _ = far.Close() }
}

// the next frame in arrival order
func (r *remote) next() (frame, bool) {
	select {
	case f, ok := <-r.frames:
		return f, ok
	case <-time.After(5 * time.Second):
		return frame{}, false
	}
}

// a connection registered directly and made active without a
// handshake on the wire
func activeRegistered(t *testing.T, s *Server, address wire.NetAddress, inbound bool, oneshot bool) (*peer.Connection, *remote) {
	local, far := net.Pipe()
	t.Cleanup(func() { _ = far.Close() })
	r := newRemote(t, far)

	c := peer.New(logger.New("peer"), local, address, inbound, oneshot, s.peerConfig, s.scheduler, s)
	if err := s.register(c); nil != err {
		t.Fatalf("register error: %s", err)
	}
	c.Transition(peer.Connecting, peer.Handshaking)
	c.Start(s.deliver)

	c.MarkVersionSent()
	_ = c.SetRemoteVersion(&wire.MsgVersion{ProtocolVersion: version.ProtocolVersion})
	if !c.TryActivate() {
		t.Fatalf("not active: %s", c.State())
	}
	return c, r
}

func waitFor(f func() bool) bool {
	for i := 0; i < 500; i += 1 {
		if f() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrocoin/agrocoind/blockdigest"
	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/util"
	"github.com/agrocoin/agrocoind/wire"
)

func TestInventory(t *testing.T) {
	items := []wire.InvVect{
		{Type: wire.InvTx, Hash: blockdigest.NewDigest([]byte("tx one"))},
		{Type: wire.InvBlock, Hash: blockdigest.NewDigest([]byte("block one"))},
	}

	payload := wire.EncodeInv(items)
	assert.Equal(t, 1+2*36, len(payload), "wrong payload size")
	assert.Equal(t, byte(2), payload[0], "wrong count")
	assert.Equal(t, []byte{1, 0, 0, 0}, payload[1:5], "type not little endian")

	decoded, err := wire.DecodeInv(payload)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, items, decoded, "wrong items")

	_, err = wire.DecodeInv(payload[:len(payload)-1])
	assert.Equal(t, fault.ErrTruncatedPayload, err, "truncated")

	_, err = wire.DecodeInv(util.ToVarint(wire.MaximumInventory + 1))
	assert.Equal(t, fault.ErrTooManyItems, err, "too many")

	assert.Equal(t, "tx "+items[0].Hash.String(), items[0].String(), "wrong string")
	assert.Equal(t, wire.CmdBlock, wire.InvBlock.Command(), "block command")
}

func TestAddresses(t *testing.T) {
	addresses := []wire.NetAddress{
		{Timestamp: 1600000000, Services: wire.NodeNetwork, IP: net.ParseIP("10.1.2.3").To4(), Port: 9333},
		{Timestamp: 1600000001, Services: 0, IP: net.ParseIP("2001:db8::1"), Port: 19333},
	}

	payload := wire.EncodeAddr(addresses)
	assert.Equal(t, 1+2*30, len(payload), "wrong payload size")

	// port is big endian
	assert.Equal(t, []byte{0x24, 0x75}, payload[1+28:1+30], "wrong port bytes")

	decoded, err := wire.DecodeAddr(payload)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, len(addresses), len(decoded), "wrong count")
	for i := range addresses {
		assert.Equal(t, addresses[i].Timestamp, decoded[i].Timestamp, "%d: timestamp", i)
		assert.Equal(t, addresses[i].Services, decoded[i].Services, "%d: services", i)
		assert.True(t, addresses[i].IP.Equal(decoded[i].IP), "%d: IP", i)
		assert.Equal(t, addresses[i].Port, decoded[i].Port, "%d: port", i)
	}

	_, err = wire.DecodeAddr(util.ToVarint(wire.MaximumAddresses + 1))
	assert.Equal(t, fault.ErrTooManyItems, err, "too many")
}

func TestAddressClassification(t *testing.T) {
	local := wire.NetAddress{IP: net.ParseIP("127.0.0.1"), Port: 9333}
	assert.True(t, local.IsLocal(), "loopback")
	assert.False(t, local.IsRoutable(), "loopback routable")

	public := wire.NetAddress{IP: net.ParseIP("203.0.113.9"), Port: 9333}
	assert.False(t, public.IsLocal(), "public is local")
	assert.True(t, public.IsRoutable(), "public not routable")
	assert.Equal(t, "203.0.113.9:9333", public.String(), "wrong string")

	v6 := wire.NetAddress{IP: net.ParseIP("2001:db8::1"), Port: 9333}
	assert.Equal(t, "[2001:db8::1]:9333", v6.Key(), "wrong key")
}

func TestVersion(t *testing.T) {
	m := &wire.MsgVersion{
		ProtocolVersion: 60001,
		Services:        wire.NodeNetwork,
		Timestamp:       1600000000,
		AddrReceiver:    wire.NetAddress{IP: net.ParseIP("10.0.0.1").To4(), Port: 9333},
		AddrFrom:        wire.NetAddress{IP: net.ParseIP("10.0.0.2").To4(), Port: 9334, Services: wire.NodeNetwork},
		Nonce:           0x0123456789abcdef,
		SubVersion:      "/Satoshi:0.6.3/",
		StartHeight:     66101,
	}

	payload := wire.EncodeVersion(m)
	assert.Equal(t, 4+8+8+26+26+8+1+len(m.SubVersion)+4, len(payload), "wrong size")

	decoded, err := wire.DecodeVersion(payload)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, m.ProtocolVersion, decoded.ProtocolVersion, "protocol")
	assert.Equal(t, m.Services, decoded.Services, "services")
	assert.Equal(t, m.Timestamp, decoded.Timestamp, "timestamp")
	assert.Equal(t, m.Nonce, decoded.Nonce, "nonce")
	assert.Equal(t, m.SubVersion, decoded.SubVersion, "subversion")
	assert.Equal(t, m.StartHeight, decoded.StartHeight, "start height")
	assert.True(t, m.AddrFrom.IP.Equal(decoded.AddrFrom.IP), "from IP")
	assert.Equal(t, m.AddrFrom.Port, decoded.AddrFrom.Port, "from port")

	// old peers stop after the receiver address
	short, err := wire.DecodeVersion(payload[:4+8+8+26])
	assert.Nil(t, err, "short version")
	assert.Equal(t, int32(60001), short.ProtocolVersion, "short protocol")
	assert.Equal(t, uint64(0), short.Nonce, "short nonce")

	_, err = wire.DecodeVersion(payload[:10])
	assert.Equal(t, fault.ErrInvalidVersion, err, "truncated")
}

func TestReply(t *testing.T) {
	var token [wire.TokenSize]byte
	for i := range token {
		token[i] = byte(i)
	}

	payload := wire.EncodeReply(token, []byte("answer"))
	assert.Equal(t, wire.TokenSize+6, len(payload), "wrong size")

	decodedToken, rest, err := wire.DecodeReply(payload)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, token, decodedToken, "wrong token")
	assert.Equal(t, []byte("answer"), rest, "wrong payload")

	_, _, err = wire.DecodeReply(payload[:wire.TokenSize-1])
	assert.Equal(t, fault.ErrInvalidToken, err, "short token")
}

func TestTip(t *testing.T) {
	tip := blockdigest.NewDigest([]byte("tip"))

	payload := wire.EncodeTip(66101, tip)
	assert.Equal(t, wire.TipSize, len(payload), "wrong size")

	height, decoded, err := wire.DecodeTip(payload)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, int32(66101), height, "wrong height")
	assert.Equal(t, tip, decoded, "wrong tip")

	_, _, err = wire.DecodeTip(payload[:wire.TipSize-1])
	assert.Equal(t, fault.ErrTruncatedPayload, err, "short tip")
}

func TestHashes(t *testing.T) {
	tx := []byte("transaction")
	assert.Equal(t, blockdigest.NewDigest(tx), wire.TransactionHash(tx), "tx hash")

	block := make([]byte, 200)
	for i := range block {
		block[i] = byte(i)
	}
	h, err := wire.BlockHash(block)
	assert.Nil(t, err, "block hash error")
	assert.Equal(t, blockdigest.NewDigest(block[:wire.BlockHeaderSize]), h, "block hash covers header only")

	_, err = wire.BlockHash(block[:79])
	assert.Equal(t, fault.ErrTruncatedPayload, err, "short block")
}

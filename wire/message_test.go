// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/wire"
)

var testMagic = wire.Magic{0xfa, 0xbf, 0xb5, 0xda}

func TestFrameRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x00},
		[]byte("hello world"),
		bytes.Repeat([]byte{0xa5}, 70000),
	}
	commands := []string{wire.CmdVerAck, wire.CmdTx, "twelve_chars"}

	for _, command := range commands {
		for i, payload := range payloads {
			frame, err := wire.Frame(testMagic, command, payload)
			assert.Nil(t, err, "frame error")
			assert.Equal(t, wire.HeaderSize+len(payload), len(frame), "%d: wrong frame size", i)

			c, p, err := wire.Decode(testMagic, frame, wire.DefaultMaximumPayload)
			assert.Nil(t, err, "%d: decode error", i)
			assert.Equal(t, command, c, "%d: wrong command", i)
			assert.Equal(t, 0, bytes.Compare(payload, p), "%d: wrong payload", i)
		}
	}
}

func TestHeaderLayout(t *testing.T) {
	frame, err := wire.Frame(testMagic, wire.CmdVerAck, nil)
	assert.Nil(t, err, "frame error")

	expected := []byte{
		0xfa, 0xbf, 0xb5, 0xda,
		'v', 'e', 'r', 'a', 'c', 'k', 0, 0, 0, 0, 0, 0,
		0x00, 0x00, 0x00, 0x00,
		0x5d, 0xf6, 0xe0, 0xe2,
	}
	assert.Equal(t, expected, frame, "wrong header bytes")

	frame, err = wire.Frame(testMagic, wire.CmdPing, []byte{1, 2, 3})
	assert.Nil(t, err, "frame error")
	assert.Equal(t, []byte{3, 0, 0, 0}, frame[16:20], "length not little endian")
}

func TestChecksumMutation(t *testing.T) {
	payload := []byte("some transaction bytes")
	frame, err := wire.Frame(testMagic, wire.CmdTx, payload)
	assert.Nil(t, err, "frame error")

	for offset := 20; offset < wire.HeaderSize; offset += 1 {
		for _, mask := range []byte{0x01, 0x80, 0xff} {
			corrupt := append([]byte{}, frame...)
			corrupt[offset] ^= mask

			_, p, err := wire.Decode(testMagic, corrupt, wire.DefaultMaximumPayload)
			assert.Equal(t, fault.ErrChecksumMismatch, err, "offset: %d mask: %02x", offset, mask)
			assert.Nil(t, p, "payload returned for corrupt frame")
			assert.True(t, fault.IsErrFraming(err), "not a framing error")
		}
	}
}

func TestPayloadMutation(t *testing.T) {
	frame, err := wire.Frame(testMagic, wire.CmdTx, []byte("payload"))
	assert.Nil(t, err, "frame error")

	frame[wire.HeaderSize+2] ^= 0x10
	_, _, err = wire.Decode(testMagic, frame, wire.DefaultMaximumPayload)
	assert.Equal(t, fault.ErrChecksumMismatch, err, "corrupt payload accepted")
}

func TestDecodeErrors(t *testing.T) {
	frame, err := wire.Frame(testMagic, wire.CmdTx, []byte("payload"))
	assert.Nil(t, err, "frame error")

	_, _, err = wire.Decode(wire.Magic{1, 2, 3, 4}, frame, wire.DefaultMaximumPayload)
	assert.Equal(t, fault.ErrBadMagic, err, "bad magic")

	_, _, err = wire.Decode(testMagic, frame, 3)
	assert.Equal(t, fault.ErrOversizedPayload, err, "oversized")
	assert.True(t, fault.IsErrProtocol(err), "oversized is a protocol violation")

	_, _, err = wire.Decode(testMagic, frame[:len(frame)-1], wire.DefaultMaximumPayload)
	assert.Equal(t, fault.ErrFrameLength, err, "short frame")

	_, _, err = wire.Decode(testMagic, append(frame, 0), wire.DefaultMaximumPayload)
	assert.Equal(t, fault.ErrFrameLength, err, "long frame")

	_, _, err = wire.Decode(testMagic, frame[:10], wire.DefaultMaximumPayload)
	assert.Equal(t, fault.ErrTruncatedMessage, err, "truncated header")

	bad := append([]byte{}, frame...)
	bad[4+3] = 0x01
	_, _, err = wire.Decode(testMagic, bad, wire.DefaultMaximumPayload)
	assert.Equal(t, fault.ErrInvalidCommand, err, "control character in command")

	bad = append([]byte{}, frame...)
	bad[4+10] = 'x'
	_, _, err = wire.Decode(testMagic, bad, wire.DefaultMaximumPayload)
	assert.Equal(t, fault.ErrInvalidCommand, err, "data after NUL padding")

	_, err = wire.Frame(testMagic, "thirteen_char", nil)
	assert.Equal(t, fault.ErrCommandTooLong, err, "long command")
}

func TestReadMessageStream(t *testing.T) {
	first, _ := wire.Frame(testMagic, wire.CmdInv, []byte("first"))
	second, _ := wire.Frame(testMagic, wire.CmdTx, []byte("second"))
	third, _ := wire.Frame(testMagic, wire.CmdPing, nil)

	// corrupt the second payload
	second[wire.HeaderSize] ^= 0xff

	stream := bytes.NewBuffer(nil)
	stream.Write(first)
	stream.Write(second)
	stream.Write(third)

	command, payload, n, err := wire.ReadMessage(stream, testMagic, wire.DefaultMaximumPayload)
	assert.Nil(t, err, "first message")
	assert.Equal(t, wire.CmdInv, command, "first command")
	assert.Equal(t, []byte("first"), payload, "first payload")
	assert.Equal(t, len(first), n, "first size")

	command, payload, n, err = wire.ReadMessage(stream, testMagic, wire.DefaultMaximumPayload)
	assert.Equal(t, fault.ErrChecksumMismatch, err, "second message")
	assert.Equal(t, wire.CmdTx, command, "second command")
	assert.Nil(t, payload, "second payload")
	assert.Equal(t, len(second), n, "second size")

	// stream must still be in step
	command, payload, _, err = wire.ReadMessage(stream, testMagic, wire.DefaultMaximumPayload)
	assert.Nil(t, err, "third message")
	assert.Equal(t, wire.CmdPing, command, "third command")
	assert.Equal(t, 0, len(payload), "third payload")

	_, _, _, err = wire.ReadMessage(stream, testMagic, wire.DefaultMaximumPayload)
	assert.Equal(t, io.EOF, err, "end of stream")
}

func TestReadMessageOversized(t *testing.T) {
	frame, _ := wire.Frame(testMagic, wire.CmdBlock, make([]byte, 100))
	_, _, _, err := wire.ReadMessage(bytes.NewReader(frame), testMagic, 99)
	assert.Equal(t, fault.ErrOversizedPayload, err, "oversized")
}

func TestEmptyAllowed(t *testing.T) {
	for _, c := range []string{wire.CmdVerAck, wire.CmdGetAddr, wire.CmdPing} {
		assert.True(t, wire.EmptyAllowed(c), "command: %s", c)
	}
	for _, c := range []string{wire.CmdVersion, wire.CmdInv, wire.CmdGetData, wire.CmdTx, wire.CmdBlock, wire.CmdAddr, wire.CmdReply} {
		assert.False(t, wire.EmptyAllowed(c), "command: %s", c)
	}
}

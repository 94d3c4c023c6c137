// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/agrocoin/agrocoind/blockdigest"
	"github.com/agrocoin/agrocoind/fault"
)

// header layout
//
//	magic(4) | command(12, NUL padded) | length(4 LE) | checksum(4)
const (
	MagicSize    = 4
	CommandSize  = 12
	ChecksumSize = 4
	HeaderSize   = MagicSize + CommandSize + 4 + ChecksumSize

	commandOffset  = MagicSize
	lengthOffset   = commandOffset + CommandSize
	checksumOffset = lengthOffset + 4
)

// DefaultMaximumPayload - largest payload accepted from a peer
const DefaultMaximumPayload = 0x02000000

// Magic - network identifier at the start of every message
type Magic [MagicSize]byte

// String - hex form for logging
func (m Magic) String() string {
	return hex.EncodeToString(m[:])
}

// Header - decoded message header
type Header struct {
	Magic    Magic
	Command  string
	Length   uint32
	Checksum [ChecksumSize]byte
}

// Checksum - first 4 bytes of the double SHA-256 of the payload
func Checksum(payload []byte) [ChecksumSize]byte {
	var checksum [ChecksumSize]byte
	digest := blockdigest.NewDigest(payload)
	copy(checksum[:], digest[:ChecksumSize])
	return checksum
}

// Bytes - serialise a header
func (h *Header) Bytes() []byte {
	buffer := make([]byte, HeaderSize)
	copy(buffer, h.Magic[:])
	copy(buffer[commandOffset:lengthOffset], h.Command)
	binary.LittleEndian.PutUint32(buffer[lengthOffset:], h.Length)
	copy(buffer[checksumOffset:], h.Checksum[:])
	return buffer
}

// ParseHeader - split a serialised header into its fields
//
// the command must be printable ASCII followed only by NUL padding
func ParseHeader(buffer []byte) (*Header, error) {
	if len(buffer) < HeaderSize {
		return nil, fault.ErrTruncatedMessage
	}

	h := &Header{}
	copy(h.Magic[:], buffer[:MagicSize])

	command := buffer[commandOffset:lengthOffset]
	end := bytes.IndexByte(command, 0)
	if end < 0 {
		end = CommandSize
	}
	for i, c := range command {
		if i < end {
			if c < 0x20 || c > 0x7e {
				return nil, fault.ErrInvalidCommand
			}
		} else if 0 != c {
			return nil, fault.ErrInvalidCommand
		}
	}
	h.Command = string(command[:end])

	h.Length = binary.LittleEndian.Uint32(buffer[lengthOffset:])
	copy(h.Checksum[:], buffer[checksumOffset:HeaderSize])
	return h, nil
}

// Frame - produce a complete message: header followed by payload
func Frame(magic Magic, command string, payload []byte) ([]byte, error) {
	if len(command) > CommandSize {
		return nil, fault.ErrCommandTooLong
	}

	h := Header{
		Magic:    magic,
		Command:  command,
		Length:   uint32(len(payload)),
		Checksum: Checksum(payload),
	}
	frame := make([]byte, 0, HeaderSize+len(payload))
	frame = append(frame, h.Bytes()...)
	return append(frame, payload...), nil
}

// Decode - validate a complete frame and return its command and payload
func Decode(magic Magic, frame []byte, maximumPayload uint32) (string, []byte, error) {
	h, err := ParseHeader(frame)
	if nil != err {
		return "", nil, err
	}
	if h.Magic != magic {
		return "", nil, fault.ErrBadMagic
	}
	if h.Length > maximumPayload {
		return h.Command, nil, fault.ErrOversizedPayload
	}
	if uint64(len(frame)-HeaderSize) != uint64(h.Length) {
		return h.Command, nil, fault.ErrFrameLength
	}

	payload := frame[HeaderSize:]
	if Checksum(payload) != h.Checksum {
		return h.Command, nil, fault.ErrChecksumMismatch
	}
	return h.Command, payload, nil
}

// ReadHeader - read and check the next header from a stream
//
// a bad magic leaves the stream out of step, the caller must not
// continue reading
func ReadHeader(r io.Reader, magic Magic) (*Header, error) {
	buffer := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buffer); nil != err {
		return nil, err
	}
	h, err := ParseHeader(buffer)
	if nil != err {
		return nil, err
	}
	if h.Magic != magic {
		return h, fault.ErrBadMagic
	}
	return h, nil
}

// ReadPayload - read the payload for a header and verify its checksum
//
// a checksum mismatch consumes the payload so the stream remains in
// step for the next message
func ReadPayload(r io.Reader, h *Header) ([]byte, error) {
	payload := make([]byte, h.Length)
	if _, err := io.ReadFull(r, payload); nil != err {
		return nil, err
	}
	if Checksum(payload) != h.Checksum {
		return nil, fault.ErrChecksumMismatch
	}
	return payload, nil
}

// ReadMessage - read one complete message from a stream
//
// returns the command, the payload and the number of bytes consumed
func ReadMessage(r io.Reader, magic Magic, maximumPayload uint32) (string, []byte, int, error) {
	h, err := ReadHeader(r, magic)
	if nil != err {
		return "", nil, 0, err
	}
	if h.Length > maximumPayload {
		return h.Command, nil, HeaderSize, fault.ErrOversizedPayload
	}
	payload, err := ReadPayload(r, h)
	if nil != err {
		return h.Command, nil, HeaderSize + int(h.Length), err
	}
	return h.Command, payload, HeaderSize + len(payload), nil
}

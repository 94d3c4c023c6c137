// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockdigest

import (
	"encoding/hex"
	"fmt"
	"math/big"

	sha256 "github.com/minio/sha256-simd"

	"github.com/agrocoin/agrocoind/fault"
)

// Length - number of bytes in the digest
const Length = 32

// Digest - type for a digest
// stored as little endian byte array
// represented as big endian hex value for print
// represented as little endian hex text for JSON encoding
type Digest [Length]byte

// NewDigest - double SHA-256 of a byte slice
func NewDigest(record []byte) Digest {
	first := sha256.Sum256(record)
	return Digest(sha256.Sum256(first[:]))
}

// IsZero - true for the all zero digest
func (digest Digest) IsZero() bool {
	return Digest{} == digest
}

// Cmp - compare the digest, taken as a big endian number, with a big.Int
func (digest Digest) Cmp(target *big.Int) int {
	result := new(big.Int)
	return result.SetBytes(reversed(digest)).Cmp(target)
}

// internal function to return a reversed byte order copy of a digest
func reversed(d Digest) []byte {
	result := make([]byte, Length)
	for i := 0; i < Length; i += 1 {
		result[i] = d[Length-1-i]
	}
	return result
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
//
// the stored version is in little endian, but the output string is big endian
func (digest Digest) String() string {
	return hex.EncodeToString(reversed(digest))
}

// GoString - convert a binary digest to big endian hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA256d:" + hex.EncodeToString(reversed(digest)) + ">"
}

// Scan - convert a big endian hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	if hex.EncodedLen(Length) != len(token) {
		return fault.ErrInvalidDigest
	}
	buffer := make([]byte, Length)
	_, err = hex.Decode(buffer, token)
	if nil != err {
		return err
	}

	for i, v := range buffer {
		digest[Length-1-i] = v
	}
	return nil
}

// MarshalText - convert digest to big endian hex text
func (digest Digest) MarshalText() ([]byte, error) {
	return []byte(digest.String()), nil
}

// UnmarshalText - convert big endian hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	d, err := FromString(string(s))
	if nil != err {
		return err
	}
	*digest = d
	return nil
}

// FromString - convert a big endian hex string into a digest
func FromString(s string) (Digest, error) {
	var digest Digest
	if hex.EncodedLen(Length) != len(s) {
		return digest, fault.ErrInvalidDigest
	}
	buffer, err := hex.DecodeString(s)
	if nil != err {
		return digest, err
	}
	for i, v := range buffer {
		digest[Length-1-i] = v
	}
	return digest, nil
}

// DigestFromBytes - convert and validate little endian binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if Length != len(buffer) {
		return fault.ErrInvalidDigest
	}
	copy(digest[:], buffer)
	return nil
}

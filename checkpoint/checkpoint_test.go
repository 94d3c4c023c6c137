// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package checkpoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrocoin/agrocoind/blockdigest"
	"github.com/agrocoin/agrocoind/checkpoint"
)

const (
	genesisHash = "d3e775371fcd45b9894ff58fe909a5050742a12e14f99172a1eee0aca45a6b8e"
	laterHash   = "7ba9a0f0f89bc4a92e46279fd0ced2ef546fcfdd89df4e1466c90ef1bf1c4e73"
)

func digest(t *testing.T, s string) blockdigest.Digest {
	d, err := blockdigest.FromString(s)
	assert.Nil(t, err, "digest: %s", s)
	return d
}

func TestValidate(t *testing.T) {
	c := checkpoint.New(false)

	genesis := digest(t, genesisHash)
	later := digest(t, laterHash)
	other := blockdigest.NewDigest([]byte("competing block"))

	assert.True(t, c.Validate(0, genesis), "genesis rejected")
	assert.False(t, c.Validate(0, other), "competing genesis accepted")
	assert.True(t, c.Validate(66101, later), "checkpoint rejected")
	assert.False(t, c.Validate(66101, genesis), "wrong hash accepted")
	assert.True(t, c.Validate(12345, other), "unknown height rejected")

	assert.Equal(t, uint64(66101), c.TotalBlocksEstimate(), "wrong estimate")
}

func TestTestingChain(t *testing.T) {
	c := checkpoint.New(true)

	other := blockdigest.NewDigest([]byte("competing block"))
	assert.True(t, c.Validate(0, other), "testing chain enforced checkpoint")
	assert.Equal(t, uint64(0), c.TotalBlocksEstimate(), "testing estimate")

	_, _, ok := c.LastCheckpoint(func(blockdigest.Digest) bool { return true })
	assert.False(t, ok, "testing chain has a checkpoint")
}

func TestLastCheckpoint(t *testing.T) {
	c := checkpoint.New(false)

	genesis := digest(t, genesisHash)
	later := digest(t, laterHash)

	height, hash, ok := c.LastCheckpoint(func(d blockdigest.Digest) bool {
		return d == genesis
	})
	assert.True(t, ok, "no checkpoint")
	assert.Equal(t, uint64(0), height, "wrong height")
	assert.Equal(t, genesis, hash, "wrong hash")

	height, hash, ok = c.LastCheckpoint(func(d blockdigest.Digest) bool {
		return true
	})
	assert.True(t, ok, "no checkpoint")
	assert.Equal(t, uint64(66101), height, "not the highest")
	assert.Equal(t, later, hash, "wrong hash")

	_, _, ok = c.LastCheckpoint(func(d blockdigest.Digest) bool {
		return false
	})
	assert.False(t, ok, "checkpoint without blocks")
}

func TestBadTable(t *testing.T) {
	_, err := checkpoint.NewFromMap(false, map[uint64]string{1: "not hex"})
	assert.NotNil(t, err, "bad table accepted")
}

func TestGenesis(t *testing.T) {
	hash, ok := checkpoint.New(false).Genesis()
	assert.True(t, ok, "no genesis")
	assert.Equal(t, digest(t, genesisHash), hash, "wrong genesis")

	_, ok = checkpoint.New(true).Genesis()
	assert.False(t, ok, "genesis on test chain")
}

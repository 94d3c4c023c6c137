// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package checkpoint - known good block hashes at fixed heights
//
// a block at a checkpointed height must have the recorded hash,
// preventing a competing history from replacing the early chain
package checkpoint

import (
	"sort"

	"github.com/agrocoin/agrocoind/blockdigest"
	"github.com/agrocoin/agrocoind/fault"
)

// height → hash, hashes in the usual reversed hex form
var agrocoinCheckpoints = map[uint64]string{
	0:     "d3e775371fcd45b9894ff58fe909a5050742a12e14f99172a1eee0aca45a6b8e",
	66101: "7ba9a0f0f89bc4a92e46279fd0ced2ef546fcfdd89df4e1466c90ef1bf1c4e73",
}

// Checker - checkpoints for one chain
type Checker struct {
	testing bool
	heights []uint64
	hashes  map[uint64]blockdigest.Digest
}

// New - checkpoints for the main chain, or none for a test chain
func New(testing bool) *Checker {
	c, err := NewFromMap(testing, agrocoinCheckpoints)
	fault.PanicIfError("checkpoint.New", err)
	return c
}

// NewFromMap - checkpoints from a table of height to hash
func NewFromMap(testing bool, table map[uint64]string) (*Checker, error) {
	c := &Checker{
		testing: testing,
		heights: make([]uint64, 0, len(table)),
		hashes:  make(map[uint64]blockdigest.Digest, len(table)),
	}
	for height, s := range table {
		d, err := blockdigest.FromString(s)
		if nil != err {
			return nil, err
		}
		c.hashes[height] = d
		c.heights = append(c.heights, height)
	}
	sort.Slice(c.heights, func(i, j int) bool {
		return c.heights[i] < c.heights[j]
	})
	return c, nil
}

// Validate - false only if height is checkpointed with a different hash
func (c *Checker) Validate(height uint64, hash blockdigest.Digest) bool {
	if c.testing {
		return true
	}
	expected, ok := c.hashes[height]
	if !ok {
		return true
	}
	return expected == hash
}

// TotalBlocksEstimate - height of the highest checkpoint
func (c *Checker) TotalBlocksEstimate() uint64 {
	if c.testing || 0 == len(c.heights) {
		return 0
	}
	return c.heights[len(c.heights)-1]
}

// LastCheckpoint - highest checkpoint whose block is already held
func (c *Checker) LastCheckpoint(have func(blockdigest.Digest) bool) (uint64, blockdigest.Digest, bool) {
	if c.testing {
		return 0, blockdigest.Digest{}, false
	}
	for i := len(c.heights) - 1; i >= 0; i -= 1 {
		height := c.heights[i]
		hash := c.hashes[height]
		if have(hash) {
			return height, hash, true
		}
	}
	return 0, blockdigest.Digest{}, false
}

// Genesis - checkpointed hash of the first block
func (c *Checker) Genesis() (blockdigest.Digest, bool) {
	if c.testing {
		return blockdigest.Digest{}, false
	}
	hash, ok := c.hashes[0]
	return hash, ok
}

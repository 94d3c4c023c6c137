// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reservoir

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/agrocoin/agrocoind/blockdigest"
	"github.com/agrocoin/agrocoind/p2p"
	"github.com/agrocoin/agrocoind/wire"
)

const (
	expiryTime      = 2 * time.Hour
	cleanupInterval = 10 * time.Minute
	maximumPending  = 50000
	minimumTxSize   = 10
	maximumTxSize   = 100000
	prevBlockOffset = 4

	// misbehaviour scores
	malformedPenalty = 100
	oversizePenalty  = 100
)

type block struct {
	height  uint64
	payload []byte
}

// Reservoir - pending transactions and received blocks
type Reservoir struct {
	sync.RWMutex

	log     *logger.L
	pending *cache.Cache
	blocks  map[blockdigest.Digest]block
	genesis blockdigest.Digest
	best    uint64
	tip     blockdigest.Digest
}

// New - create an empty reservoir; blocks whose parent is genesis
// (zero on a test chain) are at height one
func New(log *logger.L, genesis blockdigest.Digest) *Reservoir {
	r := &Reservoir{
		log:     log,
		pending: cache.New(expiryTime, cleanupInterval),
		blocks:  make(map[blockdigest.Digest]block),
		genesis: genesis,
		tip:     genesis,
	}
	r.pending.OnEvicted(func(id string, _ interface{}) {
		log.Tracef("expired transaction: %s", id)
	})
	return r
}

// Height - height of the best block
func (r *Reservoir) Height() int32 {
	r.RLock()
	defer r.RUnlock()
	return int32(r.best)
}

// Tip - hash of the best block
func (r *Reservoir) Tip() blockdigest.Digest {
	r.RLock()
	defer r.RUnlock()
	return r.tip
}

// HaveInventory - item is already held
func (r *Reservoir) HaveInventory(inv wire.InvVect) bool {
	switch inv.Type {
	case wire.InvTx:
		_, ok := r.pending.Get(inv.Hash.String())
		return ok
	case wire.InvBlock:
		r.RLock()
		defer r.RUnlock()
		if inv.Hash == r.genesis {
			return true
		}
		_, ok := r.blocks[inv.Hash]
		return ok
	default:
		return false
	}
}

// Fetch - serialised object for a getdata request
func (r *Reservoir) Fetch(inv wire.InvVect) ([]byte, bool) {
	switch inv.Type {
	case wire.InvTx:
		if tx, ok := r.pending.Get(inv.Hash.String()); ok {
			return tx.([]byte), true
		}
	case wire.InvBlock:
		r.RLock()
		defer r.RUnlock()
		if b, ok := r.blocks[inv.Hash]; ok {
			return b.payload, true
		}
	}
	return nil, false
}

// AcceptTransaction - hold a transaction until it expires
func (r *Reservoir) AcceptTransaction(payload []byte) error {
	if len(payload) < minimumTxSize {
		return p2p.Reject("transaction too short", malformedPenalty)
	}
	if len(payload) > maximumTxSize {
		return p2p.Reject("transaction too large", oversizePenalty)
	}
	if r.pending.ItemCount() >= maximumPending {
		return p2p.Reject("pool full", 0)
	}

	id := wire.TransactionHash(payload).String()
	tx := make([]byte, len(payload))
	copy(tx, payload)
	if err := r.pending.Add(id, tx, cache.DefaultExpiration); nil != err {
		return p2p.Reject("duplicate transaction", 0)
	}
	r.log.Debugf("transaction: %s  size: %d", id, len(payload))
	return nil
}

// parent hash from a block header
func parent(payload []byte) (blockdigest.Digest, bool) {
	var d blockdigest.Digest
	if len(payload) < wire.BlockHeaderSize {
		return d, false
	}
	copy(d[:], payload[prevBlockOffset:prevBlockOffset+blockdigest.Length])
	return d, true
}

// lock must be held
func (r *Reservoir) heightOf(hash blockdigest.Digest) (uint64, bool) {
	if hash == r.genesis {
		return 0, true
	}
	b, ok := r.blocks[hash]
	return b.height, ok
}

// ConnectHeight - the height a block would have
func (r *Reservoir) ConnectHeight(payload []byte) (uint64, bool) {
	prev, ok := parent(payload)
	if !ok {
		return 0, false
	}

	r.RLock()
	defer r.RUnlock()
	h, ok := r.heightOf(prev)
	if !ok {
		return 0, false
	}
	return h + 1, true
}

// AcceptBlock - store a block whose parent is known
func (r *Reservoir) AcceptBlock(payload []byte) error {
	hash, err := wire.BlockHash(payload)
	if nil != err {
		return p2p.Reject("short block", malformedPenalty)
	}
	prev, _ := parent(payload)

	r.Lock()
	defer r.Unlock()

	if _, ok := r.blocks[hash]; ok {
		return p2p.Reject("duplicate block", 0)
	}
	h, ok := r.heightOf(prev)
	if !ok {
		return p2p.Reject("unknown parent", 0)
	}

	stored := make([]byte, len(payload))
	copy(stored, payload)
	r.blocks[hash] = block{
		height:  h + 1,
		payload: stored,
	}
	if h+1 > r.best {
		r.best = h + 1
		r.tip = hash
	}
	r.log.Infof("block: %s  height: %d", hash, h+1)
	return nil
}

// TransactionCount - pending transactions
func (r *Reservoir) TransactionCount() int {
	return r.pending.ItemCount()
}

// BlockCount - blocks held
func (r *Reservoir) BlockCount() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.blocks)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrbook

import (
	"math/rand"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/agrocoin/agrocoind/storage"
	"github.com/agrocoin/agrocoind/wire"
)

// limits
const (
	MaximumEntries = 2500
	retryInterval  = 10 * time.Minute
	staleAge       = 14 * 24 * time.Hour
)

type entry struct {
	address     wire.NetAddress
	source      string
	lastAttempt time.Time
	attempts    int
}

// Book - the address pool
type Book struct {
	sync.Mutex

	log        *logger.L
	pool       *storage.PoolHandle
	allowLocal bool
	entries    map[string]*entry
	now        func() time.Time
	rng        *rand.Rand
}

// New - create an address book
//
// pool may be nil for a memory only book; allowLocal accepts loopback
// addresses, for a chain running on one host
func New(log *logger.L, pool *storage.PoolHandle, allowLocal bool) *Book {
	return &Book{
		log:        log,
		pool:       pool,
		allowLocal: allowLocal,
		entries:    make(map[string]*entry),
		now:        time.Now,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Load - restore the persisted addresses, dropping stale ones
func (b *Book) Load() error {
	if nil == b.pool {
		return nil
	}

	b.Lock()
	defer b.Unlock()

	cutoff := uint32(b.now().Add(-staleAge).Unix())
	stale := make([][]byte, 0)
	err := b.pool.NewFetchCursor().Map(func(key []byte, value []byte) error {
		addresses, err := wire.DecodeAddr(value)
		if nil != err || 1 != len(addresses) || addresses[0].Timestamp < cutoff {
			stale = append(stale, key)
			return nil
		}
		a := addresses[0]
		b.entries[a.Key()] = &entry{
			address: a,
			source:  "storage",
		}
		return nil
	})
	for _, key := range stale {
		b.pool.Delete(key)
	}
	b.log.Infof("restored addresses: %d  removed stale: %d", len(b.entries), len(stale))
	return err
}

// acceptable - address worth keeping
func (b *Book) acceptable(a wire.NetAddress) bool {
	if a.IsRoutable() {
		return true
	}
	return b.allowLocal && nil != a.IP && !a.IP.IsUnspecified() && 0 != a.Port
}

// Add - record addresses learned from source; an address already
// known only has its time stamp refreshed
func (b *Book) Add(addresses []wire.NetAddress, source wire.NetAddress) {
	b.Lock()
	defer b.Unlock()

	now := uint32(b.now().Unix())
	for _, a := range addresses {
		if !b.acceptable(a) {
			continue
		}
		// never trust a time in the future
		if 0 == a.Timestamp || a.Timestamp > now {
			a.Timestamp = now
		}

		k := a.Key()
		if e, ok := b.entries[k]; ok {
			if a.Timestamp > e.address.Timestamp {
				e.address.Timestamp = a.Timestamp
				e.address.Services |= a.Services
				b.save(e.address)
			}
			continue
		}

		if len(b.entries) >= MaximumEntries {
			b.evictOldest()
		}
		b.entries[k] = &entry{
			address: a,
			source:  source.String(),
		}
		b.save(a)
		b.log.Debugf("add: %s  from: %s", a, source)
	}
}

// lock must be held
func (b *Book) evictOldest() {
	var oldest *entry
	for _, e := range b.entries {
		if nil == oldest || e.address.Timestamp < oldest.address.Timestamp {
			oldest = e
		}
	}
	if nil == oldest {
		return
	}
	delete(b.entries, oldest.address.Key())
	if nil != b.pool {
		b.pool.Delete([]byte(oldest.address.Key()))
	}
}

// lock must be held
func (b *Book) save(a wire.NetAddress) {
	if nil == b.pool {
		return
	}
	b.pool.Put([]byte(a.Key()), wire.EncodeAddr([]wire.NetAddress{a}))
}

// Sample - up to n addresses in random order
func (b *Book) Sample(n int) []wire.NetAddress {
	b.Lock()
	defer b.Unlock()

	all := make([]wire.NetAddress, 0, len(b.entries))
	for _, e := range b.entries {
		all = append(all, e.address)
	}
	b.rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// SelectOutboundCandidate - a random address not tried recently
//
// addresses with many failed attempts are chosen less often
func (b *Book) SelectOutboundCandidate() (wire.NetAddress, bool) {
	b.Lock()
	defer b.Unlock()

	now := b.now()
	candidates := make([]*entry, 0, len(b.entries))
	for _, e := range b.entries {
		if now.Sub(e.lastAttempt) < retryInterval {
			continue
		}
		candidates = append(candidates, e)
	}
	if 0 == len(candidates) {
		return wire.NetAddress{}, false
	}

	for tries := 0; tries < 10; tries += 1 {
		e := candidates[b.rng.Intn(len(candidates))]
		if b.rng.Intn(e.attempts+1) == 0 {
			return e.address, true
		}
	}
	return candidates[b.rng.Intn(len(candidates))].address, true
}

// MarkAttempt - a connection to the address is being tried
func (b *Book) MarkAttempt(address wire.NetAddress) {
	b.Lock()
	defer b.Unlock()

	if e, ok := b.entries[address.Key()]; ok {
		e.lastAttempt = b.now()
		e.attempts += 1
	}
}

// MarkGood - a handshake with the address succeeded
func (b *Book) MarkGood(address wire.NetAddress) {
	b.Lock()
	defer b.Unlock()

	e, ok := b.entries[address.Key()]
	if !ok {
		if !b.acceptable(address) {
			return
		}
		e = &entry{
			address: address,
			source:  "self",
		}
		b.entries[address.Key()] = e
	}
	e.attempts = 0
	e.address.Timestamp = uint32(b.now().Unix())
	b.save(e.address)
}

// Count - number of known addresses
func (b *Book) Count() int {
	b.Lock()
	defer b.Unlock()
	return len(b.entries)
}

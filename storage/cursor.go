// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/agrocoin/agrocoind/fault"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
}

// NewFetchCursor - initialise a cursor to the start of a key range
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// Fetch - return up to count elements and advance the cursor past them
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	results := make([]Element, 0, count)
	err := cursor.iterate(func(key []byte, value []byte) bool {
		results = append(results, Element{
			Key:   key,
			Value: value,
		})
		return len(results) < count
	})

	if n := len(results); n > 0 {
		// next start is the key immediately after the last one returned
		next := cursor.pool.prefixKey(results[n-1].Key)
		cursor.maxRange.Start = append(next, 0x00)
	}
	return results, err
}

// Map - run a function on all elements in the range
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	var err error
	iterErr := cursor.iterate(func(key []byte, value []byte) bool {
		err = f(key, value)
		return nil == err
	})
	if nil != err {
		return err
	}
	return iterErr
}

// call f with copies of each key (prefix stripped) and value until it
// returns false
func (cursor *FetchCursor) iterate(f func(key []byte, value []byte) bool) error {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.database {
		return nil
	}

	iter := poolData.database.NewIterator(&cursor.maxRange, nil)
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		if !f(dataKey, dataValue) {
			break
		}
	}
	iter.Release()
	return iter.Error()
}

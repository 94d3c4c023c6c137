// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ban

import (
	"encoding/binary"
	"time"

	"github.com/agrocoin/agrocoind/storage"
)

type poolStore struct {
	pool *storage.PoolHandle
}

// NewPoolStore - persist bans in a storage pool
func NewPoolStore(pool *storage.PoolHandle) Store {
	return &poolStore{
		pool: pool,
	}
}

func (s *poolStore) Save(ip string, until time.Time) {
	s.pool.PutN([]byte(ip), uint64(until.Unix()))
}

func (s *poolStore) Remove(ip string) {
	s.pool.Delete([]byte(ip))
}

func (s *poolStore) Load(f func(ip string, until time.Time)) error {
	return s.pool.NewFetchCursor().Map(func(key []byte, value []byte) error {
		if len(value) < 8 {
			return nil
		}
		f(string(key), time.Unix(int64(binary.BigEndian.Uint64(value)), 0))
		return nil
	})
}

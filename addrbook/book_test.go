// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package addrbook

import (
	"net"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/agrocoin/agrocoind/storage"
	"github.com/agrocoin/agrocoind/wire"
)

const (
	testingDirName   = "testing"
	databaseFileName = "testing/addrbook"
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

func address(ip string, port uint16) wire.NetAddress {
	return wire.NetAddress{
		Services: wire.NodeNetwork,
		IP:       net.ParseIP(ip).To4(),
		Port:     port,
	}
}

var source = address("198.51.100.1", 9333)

func TestAddSkipsUnroutable(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	b := New(logger.New("addrbook"), nil, false)
	b.Add([]wire.NetAddress{
		address("127.0.0.1", 9333),
		address("0.0.0.0", 9333),
		address("203.0.113.5", 0),
		address("203.0.113.5", 9333),
	}, source)

	assert.Equal(t, 1, b.Count(), "wrong count")

	local := New(logger.New("addrbook"), nil, true)
	local.Add([]wire.NetAddress{address("127.0.0.1", 29333)}, source)
	assert.Equal(t, 1, local.Count(), "loopback refused on local chain")
}

func TestFutureTimestampClamped(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	now := time.Unix(1600000000, 0)
	b := New(logger.New("addrbook"), nil, false)
	b.now = func() time.Time { return now }

	a := address("203.0.113.5", 9333)
	a.Timestamp = uint32(now.Add(time.Hour).Unix())
	b.Add([]wire.NetAddress{a}, source)

	sample := b.Sample(10)
	if assert.Equal(t, 1, len(sample), "wrong sample") {
		assert.Equal(t, uint32(now.Unix()), sample[0].Timestamp, "future time kept")
	}
}

func TestSampleLimit(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	b := New(logger.New("addrbook"), nil, false)
	for i := 1; i <= 20; i += 1 {
		b.Add([]wire.NetAddress{address("203.0.113.5", uint16(9000+i))}, source)
	}
	assert.Equal(t, 20, b.Count(), "wrong count")
	assert.Equal(t, 5, len(b.Sample(5)), "sample not limited")
	assert.Equal(t, 20, len(b.Sample(100)), "sample truncated")
}

func TestSelectOutboundCandidate(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	now := time.Unix(1600000000, 0)
	b := New(logger.New("addrbook"), nil, false)
	b.now = func() time.Time { return now }

	_, ok := b.SelectOutboundCandidate()
	assert.False(t, ok, "candidate from empty book")

	a := address("203.0.113.5", 9333)
	b.Add([]wire.NetAddress{a}, source)

	candidate, ok := b.SelectOutboundCandidate()
	assert.True(t, ok, "no candidate")
	assert.Equal(t, a.Key(), candidate.Key(), "wrong candidate")

	b.MarkAttempt(candidate)
	_, ok = b.SelectOutboundCandidate()
	assert.False(t, ok, "retried too soon")

	now = now.Add(retryInterval + time.Second)
	_, ok = b.SelectOutboundCandidate()
	assert.True(t, ok, "not retried")
}

func TestEvictsOldest(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	b := New(logger.New("addrbook"), nil, false)
	oldest := address("203.0.113.1", 9333)
	oldest.Timestamp = 1000
	b.Add([]wire.NetAddress{oldest}, source)

	for i := 1; i < MaximumEntries; i += 1 {
		a := address("198.51.100.2", uint16(i))
		a.Timestamp = 2000
		b.Add([]wire.NetAddress{a}, source)
	}
	assert.Equal(t, MaximumEntries, b.Count(), "not full")

	b.Add([]wire.NetAddress{address("203.0.113.9", 9333)}, source)
	assert.Equal(t, MaximumEntries, b.Count(), "grew past limit")
	for _, a := range b.Sample(MaximumEntries) {
		assert.NotEqual(t, oldest.Key(), a.Key(), "oldest kept")
	}
}

func TestPersistence(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	if !assert.Nil(t, err, "storage") {
		return
	}
	defer storage.Finalise()

	b := New(logger.New("addrbook"), storage.Pool.Addresses, false)
	a := address("203.0.113.5", 9333)
	b.Add([]wire.NetAddress{a}, source)
	b.MarkGood(address("203.0.113.6", 9333))

	restored := New(logger.New("addrbook"), storage.Pool.Addresses, false)
	assert.Nil(t, restored.Load(), "load")
	assert.Equal(t, 2, restored.Count(), "not restored")
}

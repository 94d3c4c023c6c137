// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ban_test

import (
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/agrocoin/agrocoind/ban"
	"github.com/agrocoin/agrocoind/storage"
)

const (
	testingDirName   = "testing"
	databaseFileName = "testing/ban"
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

func TestBanAndExpire(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	l := ban.New(logger.New("ban"), nil)

	ip := net.ParseIP("203.0.113.7")
	assert.False(t, l.IsBanned(ip), "banned before ban")

	l.BanFor(ip, 50*time.Millisecond)
	assert.True(t, l.IsBanned(ip), "not banned")
	assert.True(t, l.IsBanned(net.ParseIP("::ffff:203.0.113.7")), "mapped form not banned")
	assert.False(t, l.IsBanned(net.ParseIP("203.0.113.8")), "neighbour banned")

	time.Sleep(100 * time.Millisecond)
	assert.False(t, l.IsBanned(ip), "ban did not expire")
}

func TestPastBanIgnored(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	l := ban.New(logger.New("ban"), nil)
	ip := net.ParseIP("203.0.113.7")
	l.Ban(ip, time.Now().Add(-time.Minute))
	assert.False(t, l.IsBanned(ip), "ban in the past applied")
	assert.Equal(t, 0, l.Count(), "entry stored")
}

func TestLongerBanKept(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	l := ban.New(logger.New("ban"), nil)
	ip := net.ParseIP("2001:db8::7")

	long := time.Now().Add(time.Hour).Truncate(time.Second)
	l.Ban(ip, long)
	l.BanFor(ip, time.Minute)

	entries := l.List()
	assert.Equal(t, 1, len(entries), "wrong count")
	assert.Equal(t, "2001:db8::7", entries[0].IP, "wrong ip")
	assert.True(t, long.Equal(entries[0].Until), "longer ban shortened")
}

func TestConcurrentBansKeepLongest(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	l := ban.New(logger.New("ban"), nil)
	ip := net.ParseIP("198.51.100.20")

	base := time.Now().Add(time.Hour).Truncate(time.Second)
	longest := base.Add(49 * time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i += 1 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Ban(ip, base.Add(time.Duration(n)*time.Minute))
		}(i)
	}
	wg.Wait()

	entries := l.List()
	if !assert.Equal(t, 1, len(entries), "wrong count") {
		return
	}
	assert.True(t, longest.Equal(entries[0].Until), "shorter ban replaced the longest")
}

func TestClear(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	l := ban.New(logger.New("ban"), nil)
	for _, s := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		l.BanFor(net.ParseIP(s), time.Hour)
	}
	assert.Equal(t, 3, l.Count(), "wrong count")

	l.Unban(net.ParseIP("10.0.0.2"))
	assert.False(t, l.IsBanned(net.ParseIP("10.0.0.2")), "unban failed")

	l.Clear()
	assert.Equal(t, 0, l.Count(), "clear failed")
	assert.Equal(t, 0, len(l.List()), "list not empty")
}

func TestPersistence(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	err := storage.Initialise(databaseFileName, storage.ReadWrite)
	assert.Nil(t, err, "storage initialise")
	defer storage.Finalise()

	store := ban.NewPoolStore(storage.Pool.Bans)

	l := ban.New(logger.New("ban"), store)
	l.BanFor(net.ParseIP("198.51.100.1"), time.Hour)
	l.BanFor(net.ParseIP("198.51.100.2"), time.Hour)
	l.Unban(net.ParseIP("198.51.100.2"))

	restored := ban.New(logger.New("ban"), store)
	err = restored.Load()
	assert.Nil(t, err, "load error")
	assert.True(t, restored.IsBanned(net.ParseIP("198.51.100.1")), "ban not restored")
	assert.False(t, restored.IsBanned(net.ParseIP("198.51.100.2")), "lifted ban restored")
}

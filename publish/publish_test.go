// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish_test

import (
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"
	"github.com/stretchr/testify/assert"

	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/publish"
)

const (
	testingDirName = "testing"
	endpoint       = "inproc://publish-test"
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

func TestPublish(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	p, err := publish.New(logger.New("publish"), publish.Configuration{
		Broadcast: []string{endpoint},
	})
	if !assert.Nil(t, err, "new publisher") {
		return
	}
	defer p.Stop()

	sub, err := zmq.NewSocket(zmq.SUB)
	if !assert.Nil(t, err, "sub socket") {
		return
	}
	defer sub.Close()
	_ = sub.SetSubscribe("")
	_ = sub.SetRcvtimeo(50 * time.Millisecond)
	assert.Nil(t, sub.Connect(endpoint), "connect")

	// subscriptions propagate asynchronously so keep publishing
	// until the first message arrives
	var parts [][]byte
	for i := 0; i < 100 && 0 == len(parts); i += 1 {
		p.Publish("tx", []byte("payload"))
		parts, _ = sub.RecvMessageBytes(0)
	}
	if assert.Equal(t, 2, len(parts), "wrong part count") {
		assert.Equal(t, "tx", string(parts[0]), "wrong kind")
		assert.Equal(t, []byte("payload"), parts[1], "wrong payload")
	}
}

func TestNoBroadcast(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	_, err := publish.New(logger.New("publish"), publish.Configuration{})
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")
}

func TestKeys(t *testing.T) {
	public, private, err := publish.MakeKeyPair()
	if !assert.Nil(t, err, "make key pair") {
		return
	}

	key, isPrivate, err := publish.ParseKey(public)
	assert.Nil(t, err, "parse public")
	assert.False(t, isPrivate, "public parsed as private")
	assert.Equal(t, 32, len(key), "wrong length")

	key, isPrivate, err = publish.ParseKey(private)
	assert.Nil(t, err, "parse private")
	assert.True(t, isPrivate, "private parsed as public")
	assert.Equal(t, 32, len(key), "wrong length")

	_, _, err = publish.ParseKey("SECRET:00")
	assert.Equal(t, fault.ErrInvalidKeyFile, err, "untagged key accepted")

	_, _, err = publish.ParseKey("PUBLIC:0011")
	assert.Equal(t, fault.ErrInvalidKeyFile, err, "short key accepted")
}

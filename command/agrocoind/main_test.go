// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/agrocoin/agrocoind/blockdigest"
	"github.com/agrocoin/agrocoind/chain"
	"github.com/agrocoin/agrocoind/fault"
)

const testConfiguration = `
local M = {}
M.data_directory = arg["data"]
M.chain = "Testing"
M.peering = {
    listen = { "127.0.0.1:19333" },
    seed = { "seed.example.org:19333" },
    maximum_outbound = 4,
}
M.publishing = {
    broadcast = { "127.0.0.1:19335" },
}
M.logging = {
    file = "agrocoind.log",
    levels = {
        DEFAULT = "info",
    },
}
return M
`

func writeConfiguration(t *testing.T) (string, string) {
	dir := t.TempDir()
	name := filepath.Join(dir, "agrocoind.conf")
	err := ioutil.WriteFile(name, []byte(testConfiguration), 0600)
	if nil != err {
		t.Fatalf("write error: %s", err)
	}
	return dir, name
}

func TestGetConfiguration(t *testing.T) {
	dir, name := writeConfiguration(t)

	options, err := getConfiguration(name, map[string]string{"data": dir})
	if !assert.Nil(t, err, "configuration") {
		return
	}

	assert.Equal(t, chain.Testing, options.Chain, "chain not lower cased")
	assert.Equal(t, filepath.Join(dir, "data", defaultTestingDatabase), options.Database.Name, "wrong database")
	assert.Equal(t, filepath.Join(dir, defaultCertificateFile), options.ClientRPC.Certificate, "certificate not absolute")
	assert.Equal(t, []string{"127.0.0.1:19333"}, options.Peering.Listen, "wrong listen")
	assert.Equal(t, 4, options.Peering.MaximumOutbound, "wrong outbound")
	assert.Equal(t, []string{"127.0.0.1:19335"}, options.Publishing.Broadcast, "wrong broadcast")
	assert.Equal(t, "", options.Publishing.PrivateKey, "publish key should be optional")

	info, err := os.Stat(filepath.Join(dir, "log"))
	if assert.Nil(t, err, "log directory") {
		assert.True(t, info.IsDir(), "log is not a directory")
	}
}

func TestSampleConfiguration(t *testing.T) {
	sample, err := ioutil.ReadFile("agrocoind.conf.sample")
	if !assert.Nil(t, err, "read sample") {
		return
	}
	dir := t.TempDir()
	name := filepath.Join(dir, "agrocoind.conf")
	if err := ioutil.WriteFile(name, sample, 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}

	options, err := getConfiguration(name, map[string]string{"data": dir})
	if !assert.Nil(t, err, "sample configuration") {
		return
	}

	assert.Equal(t, chain.Local, options.Chain, "wrong chain")
	assert.Equal(t, filepath.Join(dir, "data", defaultLocalDatabase), options.Database.Name, "wrong database")
	assert.Equal(t, 8, options.Peering.MaximumOutbound, "wrong outbound")
	assert.Equal(t, 100, options.Peering.BanScore, "wrong ban score")
	assert.Equal(t, []string{"127.0.0.0/8", "::1/128"}, options.HttpsRPC.Allow["metrics"], "wrong metrics allow list")
	assert.Equal(t, "info", options.Logging.Levels["p2p"], "wrong p2p level")
}

func TestGetConfigurationInvalidChain(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "agrocoind.conf")
	_ = ioutil.WriteFile(name, []byte(`return { data_directory = ".", chain = "bitcoin" }`), 0600)

	_, err := getConfiguration(name, nil)
	assert.NotNil(t, err, "invalid chain accepted")
}

func TestGetConfigurationMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "agrocoind.conf")
	_ = ioutil.WriteFile(name, []byte(`return { chain = "local" }`), 0600)

	_, err := getConfiguration(name, nil)
	assert.NotNil(t, err, "blank data directory accepted")
}

func TestConfigTestCommand(t *testing.T) {
	dir, name := writeConfiguration(t)

	options, err := getConfiguration(name, map[string]string{"data": dir})
	if !assert.Nil(t, err, "configuration") {
		return
	}

	var out bytes.Buffer
	assert.True(t, processConfigCommand(&out, []string{"config-test"}, options), "not processed")

	var decoded Configuration
	err = json.Unmarshal(out.Bytes(), &decoded)
	assert.Nil(t, err, "output is not JSON")
	assert.Equal(t, options.Chain, decoded.Chain, "wrong chain")

	assert.False(t, processConfigCommand(&out, []string{"run"}, options), "run processed")
}

func TestParseDefines(t *testing.T) {
	variables, err := parseDefines([]string{"data=/tmp/x", "empty=", "eq=a=b"})
	assert.Nil(t, err, "parse")
	assert.Equal(t, map[string]string{"data": "/tmp/x", "empty": "", "eq": "a=b"}, variables, "wrong variables")

	_, err = parseDefines([]string{"novalue"})
	assert.NotNil(t, err, "missing = accepted")
}

func TestMakeKeyPair(t *testing.T) {
	dir := t.TempDir()
	public := filepath.Join(dir, publishPublicKeyFilename)
	private := filepath.Join(dir, publishPrivateKeyFilename)

	err := makeKeyPair(public, private)
	assert.Nil(t, err, "make key pair")

	err = makeKeyPair(public, private)
	assert.Equal(t, fault.ErrKeyFileAlreadyExists, err, "overwrote keys")
}

type fixedTip struct {
	height int32
	tip    blockdigest.Digest
}

func (f fixedTip) Height() int32           { return f.height }
func (f fixedTip) Tip() blockdigest.Digest { return f.tip }

func TestTipHandler(t *testing.T) {
	tip := blockdigest.NewDigest([]byte("tip"))
	handler := tipHandler(fixedTip{height: 66101, tip: tip})

	reply, err := handler(nil, nil)
	assert.Nil(t, err, "handler")
	if assert.Equal(t, 36, len(reply), "wrong reply length") {
		assert.Equal(t, uint32(66101), binary.LittleEndian.Uint32(reply), "wrong height")
		assert.Equal(t, tip[:], reply[4:], "wrong tip")
	}
}

func TestInitialiseLogging(t *testing.T) {
	dir := t.TempDir()
	err := initialiseLogging(logger.Configuration{
		Directory: dir,
		File:      "agrocoind.log",
		Size:      1048576,
		Count:     2,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	if !assert.Nil(t, err, "initialise logging") {
		return
	}
	defer logger.Finalise()
	defer fault.Finalise()

	// the panic log channel is already open
	assert.Equal(t, fault.ErrAlreadyInitialised, fault.Initialise(), "fault log not initialised")
}

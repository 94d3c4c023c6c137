// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/rpc/certificate"
	"github.com/agrocoin/agrocoind/rpc/fixtures"
)

func TestGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, key, err := fixtures.CertificatePair()
	if !assert.Nil(t, err, "certificate pair") {
		return
	}

	tlsConfig, fingerprint, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		cer,
		key,
	)
	assert.Nil(t, err, "wrong Get")

	pair, _ := tls.X509KeyPair([]byte(cer), []byte(key))

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair, tlsConfig.Certificates[0], "wrong config")
}

func TestGetInvalid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", "not a certificate", "not a key")
	assert.NotNil(t, err, "invalid pair accepted")
}

func TestMakeSelfSignedAndLoad(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir := t.TempDir()
	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")

	err := certificate.MakeSelfSigned("test", cer, key, []string{"127.0.0.1"})
	assert.Nil(t, err, "make self signed")

	_, _, err = certificate.Load(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.Nil(t, err, "load")

	err = certificate.MakeSelfSigned("test", cer, key, nil)
	assert.Equal(t, fault.ErrCertificateFileAlreadyExists, err, "overwrote certificate")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared set up for the rpc tests
package fixtures

import (
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

const (
	testingDirName = "testing"

	// LogCategory - log channel for tests
	LogCategory = "testing"
)

// SetupTestLogger - log to a scratch directory at critical level
func SetupTestLogger() {
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

// TeardownTestLogger - remove the scratch directory
func TeardownTestLogger() {
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// CertificatePair - a fresh self signed certificate and key in PEM form
func CertificatePair() (string, string, error) {
	validUntil := time.Now().Add(24 * time.Hour)
	cert, key, err := certgen.NewTLSCertPair("agrocoind test certificate", validUntil, false, []string{"127.0.0.1"})
	if nil != err {
		return "", "", err
	}
	return string(cert), string(key), nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/agrocoin/agrocoind/storage"
)

// open a fresh database in a scratch directory
func setup(t *testing.T) {
	database := filepath.Join(t.TempDir(), "test")
	if err := storage.Initialise(database, storage.ReadWrite); nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
}

// close the database, the directory is removed by the test framework
func teardown(_ *testing.T) {
	storage.Finalise()
}

// build elements from key/value text pairs
func makeElements(pairs ...[2]string) []storage.Element {
	output := make([]storage.Element, len(pairs))
	for i, p := range pairs {
		output[i] = storage.Element{
			Key:   []byte(p[0]),
			Value: []byte(p[1]),
		}
	}
	return output
}

// keys in leveldb order after the updates made by the tests
var expectedElements = makeElements(
	[2]string{"key-five", "data-five"},
	[2]string{"key-four", "data-four"},
	[2]string{"key-one", "data-one(NEW)"},
	[2]string{"key-seven", "data-seven"},
	[2]string{"key-six", "data-six"},
	[2]string{"key-three", "data-three"},
	[2]string{"key-two", "data-two"},
)

var nonExistantKey = []byte("/nonexistant")

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
)

// EnsureAbsolute - relative paths are taken from directory
func EnsureAbsolute(directory string, filePath string) string {
	if filepath.IsAbs(filePath) {
		return filepath.Clean(filePath)
	}
	return filepath.Join(directory, filePath)
}

// EnsureFileExists - true if anything exists at name
func EnsureFileExists(name string) bool {
	_, err := os.Stat(name)
	return nil == err
}

// EnsureDirectory - make an absolute directory below base, creating
// any missing parents with owner only access
func EnsureDirectory(base string, directory string) (string, error) {
	directory = EnsureAbsolute(base, directory)
	if err := os.MkdirAll(directory, 0700); nil != err {
		return "", err
	}
	return directory, nil
}

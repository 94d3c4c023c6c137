// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockdigest - transaction, block and message checksum hashing
//
// using double SHA-256
package blockdigest

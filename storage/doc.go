// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
//  1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
//  2. ++        = concatenation of byte data
//  3. ip:port   = canonical host and port text ("1.2.3.4:9333", "[::1]:9333")
//  4. ip        = canonical IP text
//  5. timestamp = big endian uint64 unix seconds (8 bytes)
//
// Addresses:
//
//	A ++ ip:port  - known peer addresses
//	                data: last seen timestamp ++ last attempt timestamp ++ services(8 bytes)
//
// Bans:
//
//	B ++ ip       - banned peers
//	                data: ban expiry timestamp
//
// Testing:
//
//	Z ++ key      - testing data
package storage

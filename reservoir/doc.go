// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reservoir - in memory store of relayed objects
//
// holds well formed transactions until they expire and blocks linked
// to a known parent; no consensus rules are checked here
package reservoir

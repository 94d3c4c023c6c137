// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cache - short lived store of recently relayed objects
//
// peers that ask for an object by inventory id shortly after it was
// announced are served from here without going back to the chain
package cache

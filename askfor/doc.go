// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package askfor - pacing of data requests so that the same object is
// not requested from several peers at once
//
// the Scheduler is shared by all peers and hands out request times on
// a strictly increasing microsecond clock; each peer keeps its own
// Queue of requests ordered by that time
package askfor

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package publish - ZeroMQ notification of newly accepted objects
//
// each notification is a two part message:
//
//	kind    - "tx" or "block"
//	payload - the serialised object
package publish

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package addrbook - known peer addresses
//
// addresses learned from addr messages and configuration are kept in
// memory, persisted in a storage pool and handed to the dialer as
// outbound candidates
package addrbook

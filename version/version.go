// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package version - client identification sent to peers
package version

import (
	"fmt"
)

// client identity
const (
	ClientName = "Satoshi"
	Suffix     = "-agrowallet"

	Major    = 0
	Minor    = 6
	Revision = 3
	Build    = 0
)

// protocol versions
const (
	// version sent in our version message
	ProtocolVersion = 60001

	// peers older than this are disconnected during the handshake
	MinimumPeerProtocol = 209
)

// Commit - source revision, set at link time with:
//
//	-ldflags "-X github.com/agrocoin/agrocoind/version.Commit=..."
var Commit = "Beta"

// Version - dotted version number
func Version() string {
	return fmt.Sprintf("%d.%d.%d.%d", Major, Minor, Revision, Build)
}

// BuildDescription - version with the source revision
func BuildDescription() string {
	return fmt.Sprintf("v%s-A%s", Version(), Commit)
}

// FullBuild - full build string as shown to users
func FullBuild() string {
	return BuildDescription() + Suffix
}

// SubVersion - client string carried in the version message
func SubVersion() string {
	return fmt.Sprintf("/%s:%d.%d.%d/", ClientName, Major, Minor, Revision)
}

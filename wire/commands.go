// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// message commands
const (
	CmdVersion = "version"
	CmdVerAck  = "verack"
	CmdAddr    = "addr"
	CmdInv     = "inv"
	CmdGetData = "getdata"
	CmdGetAddr = "getaddr"
	CmdTx      = "tx"
	CmdBlock   = "block"
	CmdPing    = "ping"
	CmdReply   = "reply"

	// request carried with a correlation token, answered by reply
	CmdGetTip = "gettip"
)

// commands that are sent without a payload
var emptyAllowed = map[string]struct{}{
	CmdVerAck:  {},
	CmdGetAddr: {},
	CmdPing:    {},
}

// EmptyAllowed - true if a message with no payload is meaningful for
// the command
func EmptyAllowed(command string) bool {
	_, ok := emptyAllowed[command]
	return ok
}

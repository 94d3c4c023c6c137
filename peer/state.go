// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

// State - lifecycle of a connection
type State int32

// states in the order they are passed through
const (
	// socket exists, nothing exchanged
	Connecting State = iota

	// version messages being exchanged
	Handshaking

	// handshake complete, normal traffic
	Active

	// marked for disconnect, I/O is being torn down
	Disconnecting

	// socket released
	Closed
)

func (state State) String() string {
	switch state {
	case Connecting:
		return "Connecting"
	case Handshaking:
		return "Handshaking"
	case Active:
		return "Active"
	case Disconnecting:
		return "Disconnecting"
	case Closed:
		return "Closed"
	default:
		return "*Unknown*"
	}
}

// State - current state
func (c *Connection) State() State {
	return State(c.state.Load())
}

// Transition - move from one state to another, fails if the connection
// is not in the expected state or the move would go backwards
func (c *Connection) Transition(from State, to State) bool {
	if to <= from {
		return false
	}
	if !c.state.CAS(int32(from), int32(to)) {
		return false
	}
	c.log.Debugf("state: %s → %s", from, to)
	return true
}

// IsActive - handshake has completed and the connection is usable
func (c *Connection) IsActive() bool {
	return Active == c.State()
}

// IsDisconnecting - marked for disconnect or already closed
func (c *Connection) IsDisconnecting() bool {
	return c.State() >= Disconnecting
}

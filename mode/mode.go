// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mode

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/agrocoin/agrocoind/chain"
	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/wire"
)

// Mode - type to hold the mode
type Mode int

// all possible modes
const (
	Stopped Mode = iota
	Starting
	Normal
	maximum
)

// network parameters for each chain
var (
	agrocoinMagic = wire.Magic{0xfa, 0xbf, 0xb5, 0xda}
	testingMagic  = wire.Magic{0xfc, 0xc1, 0xb7, 0xdc}
)

const (
	agrocoinPort = 9333
	testingPort  = 19333
	localPort    = 29333
)

var globalData struct {
	sync.RWMutex
	log     *logger.L
	mode    Mode
	testing bool
	chain   string
	magic   wire.Magic
	port    uint16

	// set once during initialise
	initialised bool
}

// Initialise - set up the mode system
func Initialise(chainName string) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("mode")
	globalData.log.Info("starting…")

	// default settings
	globalData.chain = chainName
	globalData.testing = false
	globalData.mode = Starting
	globalData.magic = agrocoinMagic
	globalData.port = agrocoinPort

	// override for specific chain
	switch chainName {
	case chain.Agrocoin:
		// no change
	case chain.Testing:
		globalData.testing = true
		globalData.magic = testingMagic
		globalData.port = testingPort
	case chain.Local:
		globalData.testing = true
		globalData.magic = testingMagic
		globalData.port = localPort
	default:
		globalData.log.Criticalf("mode cannot handle chain: '%s'", chainName)
		return fault.ErrInvalidChain
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - shutdown mode handling
func Finalise() error {

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	Set(Stopped)

	// finally...
	globalData.Lock()
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// Set - change mode
func Set(mode Mode) {

	if mode >= Stopped && mode < maximum {
		globalData.Lock()
		globalData.mode = mode
		globalData.Unlock()

		globalData.log.Infof("set: %s", mode)
	} else {
		globalData.log.Errorf("ignore invalid set: %d", mode)
	}
}

// Is - detect mode
func Is(mode Mode) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return mode == globalData.mode
}

// IsTesting - special for testing
//
// checkpoints are not enforced on test chains
func IsTesting() bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.testing
}

// ChainName - name of the current chain
func ChainName() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.chain
}

// Magic - message start bytes for the current chain
func Magic() wire.Magic {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.magic
}

// DefaultPort - peer listening port for the current chain
func DefaultPort() uint16 {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.port
}

// String - current mode represented as a string
func String() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.mode.String()
}

// String - mode represented as a string
func (m Mode) String() string {
	switch m {
	case Stopped:
		return "Stopped"
	case Starting:
		return "Starting"
	case Normal:
		return "Normal"
	default:
		return "*Unknown*"
	}
}

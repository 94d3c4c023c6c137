// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"time"

	"github.com/agrocoin/agrocoind/wire"
)

// defaults
const (
	DefaultSendBufferSize    = 1000 * 1000
	DefaultReceiveBufferSize = 5 * 1000 * 1000
	DefaultBanThreshold      = 100
	DefaultBanTime           = 24 * time.Hour
	DefaultMessageRate       = 500.0
	DefaultMessageBurst      = 1000
	DefaultIdleTimeout       = 90 * time.Minute
	DefaultWriteTimeout      = 2 * time.Minute

	// send queue size that forces a disconnect, as a multiple of the
	// send buffer size
	hardSendLimitFactor = 10

	// bound on the known address set
	knownAddressesSize = 5000

	// penalty for a damaged frame
	framingPenalty = 10
)

// Config - per connection limits
type Config struct {
	Magic             wire.Magic
	SendBufferSize    int
	ReceiveBufferSize int
	MaximumPayload    uint32
	BanThreshold      int32
	BanTime           time.Duration
	MessageRate       float64
	MessageBurst      int
	IdleTimeout       time.Duration
	WriteTimeout      time.Duration

	// optional, called for each framed message
	Sent func(command string, bytes int)
}

// DefaultConfig - a configuration for a network
func DefaultConfig(magic wire.Magic) Config {
	return Config{
		Magic:             magic,
		SendBufferSize:    DefaultSendBufferSize,
		ReceiveBufferSize: DefaultReceiveBufferSize,
		MaximumPayload:    wire.DefaultMaximumPayload,
		BanThreshold:      DefaultBanThreshold,
		BanTime:           DefaultBanTime,
		MessageRate:       DefaultMessageRate,
		MessageBurst:      DefaultMessageBurst,
		IdleTimeout:       DefaultIdleTimeout,
		WriteTimeout:      DefaultWriteTimeout,
	}
}

// fill zero fields with defaults
func (config Config) withDefaults() Config {
	if config.SendBufferSize <= 0 {
		config.SendBufferSize = DefaultSendBufferSize
	}
	if config.ReceiveBufferSize <= 0 {
		config.ReceiveBufferSize = DefaultReceiveBufferSize
	}
	if 0 == config.MaximumPayload {
		config.MaximumPayload = wire.DefaultMaximumPayload
	}
	if config.BanThreshold <= 0 {
		config.BanThreshold = DefaultBanThreshold
	}
	if config.BanTime <= 0 {
		config.BanTime = DefaultBanTime
	}
	if config.MessageRate <= 0 {
		config.MessageRate = DefaultMessageRate
	}
	if config.MessageBurst <= 0 {
		config.MessageBurst = DefaultMessageBurst
	}
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = DefaultIdleTimeout
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = DefaultWriteTimeout
	}
	return config
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - pace RPC calls with a token bucket
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/agrocoin/agrocoind/fault"
)

// Limit - pace a single request, sleeping out the reservation
//
// a reservation that can never be met is refused
func Limit(limiter *rate.Limiter) error {
	r := limiter.Reserve()
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}

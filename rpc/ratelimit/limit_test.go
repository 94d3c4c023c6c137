// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/rpc/ratelimit"
)

func TestLimit(t *testing.T) {
	limiter := rate.NewLimiter(100, 10)
	for i := 0; i < 10; i += 1 {
		assert.Nil(t, ratelimit.Limit(limiter), "request within burst limited")
	}
}

func TestLimitPaces(t *testing.T) {
	limiter := rate.NewLimiter(100, 1)
	start := time.Now()
	assert.Nil(t, ratelimit.Limit(limiter), "first request")
	assert.Nil(t, ratelimit.Limit(limiter), "second request")
	assert.True(t, time.Since(start) >= 5*time.Millisecond, "second request not delayed")
}

func TestLimitZeroBurst(t *testing.T) {
	limiter := rate.NewLimiter(100, 0)
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.Limit(limiter), "unsatisfiable request accepted")
}

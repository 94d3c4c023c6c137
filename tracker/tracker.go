// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tracker - correlates requests sent to a peer with the
// replies that come back for them
package tracker

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"

	"github.com/agrocoin/agrocoind/wire"
)

// DefaultTimeout - unanswered requests are dropped after this
const DefaultTimeout = 10 * time.Minute

// Token - random correlation value carried by a request and its reply
type Token [wire.TokenSize]byte

// String - hex form
func (t Token) String() string {
	return hex.EncodeToString(t[:])
}

// Callback - receives the reply payload and the context given at
// registration
type Callback func(payload []byte, context interface{})

type entry struct {
	once     sync.Once
	callback Callback
	context  interface{}
}

// Tracker - outstanding requests for one connection
type Tracker struct {
	sync.Mutex
	log     *logger.L
	timeout time.Duration
	pending *cache.Cache
}

// New - create a tracker, timeout <= 0 selects DefaultTimeout
func New(log *logger.L, timeout time.Duration) *Tracker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	// expiry is driven by Expire from the caller's sweep
	pending := cache.New(timeout, 0)
	pending.OnEvicted(func(key string, _ interface{}) {
		log.Debugf("removed: %s", key)
	})

	return &Tracker{
		log:     log,
		timeout: timeout,
		pending: pending,
	}
}

// NewToken - a fresh unpredictable token
func NewToken() (Token, error) {
	var t Token
	_, err := rand.Read(t[:])
	return t, err
}

// Register - remember a callback and return the token that its reply
// must carry
func (t *Tracker) Register(callback Callback, context interface{}) (Token, error) {
	token, err := NewToken()
	if nil != err {
		return token, err
	}

	t.pending.Set(token.String(), &entry{
		callback: callback,
		context:  context,
	}, t.timeout)

	return token, nil
}

// Pending - completion handle for a request registered with Await
type Pending struct {
	Token Token
	reply chan []byte
}

// Await - register a request whose reply is collected with Wait
// instead of a callback
func (t *Tracker) Await() (*Pending, error) {
	p := &Pending{
		reply: make(chan []byte, 1),
	}
	token, err := t.Register(func(payload []byte, _ interface{}) {
		p.reply <- payload
	}, nil)
	if nil != err {
		return nil, err
	}
	p.Token = token
	return p, nil
}

// Wait - block for the reply
//
// an expired or cancelled request is never answered, so the context
// must carry a deadline
func (p *Pending) Wait(ctx context.Context) ([]byte, error) {
	select {
	case payload := <-p.reply:
		return payload, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Resolve - deliver a reply; the callback runs at most once and only
// for the first matching reply, returns false if the token was unknown
func (t *Tracker) Resolve(token Token, payload []byte) bool {
	key := token.String()

	t.Lock()
	item, ok := t.pending.Get(key)
	if ok {
		t.pending.Delete(key)
	}
	t.Unlock()

	if !ok || nil == item {
		t.log.Debugf("no request for token: %s", key)
		return false
	}

	e := item.(*entry)
	called := false
	e.once.Do(func() {
		called = true
		if nil != e.callback {
			e.callback(payload, e.context)
		}
	})
	return called
}

// Cancel - forget a request without calling it back
func (t *Tracker) Cancel(token Token) {
	t.Lock()
	t.pending.Delete(token.String())
	t.Unlock()
}

// Expire - drop timed out requests
func (t *Tracker) Expire() {
	t.Lock()
	t.pending.DeleteExpired()
	t.Unlock()
}

// Count - requests still outstanding, including any that have timed
// out but not yet been expired
func (t *Tracker) Count() int {
	return t.pending.ItemCount()
}

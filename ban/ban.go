// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ban - addresses refused for a period after misbehaving
package ban

import (
	"net"
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"
)

// DefaultBanTime - default duration of a ban
const DefaultBanTime = 24 * time.Hour

const cleanupInterval = 10 * time.Minute

// Store - optional persistence for bans
type Store interface {
	Save(ip string, until time.Time)
	Remove(ip string)
	Load(func(ip string, until time.Time)) error
}

// Entry - one banned address
type Entry struct {
	IP    string    `json:"ip"`
	Until time.Time `json:"until"`
}

// List - banned addresses keyed by canonical IP text
type List struct {
	sync.Mutex
	log   *logger.L
	store Store
	bans  *cache.Cache
	now   func() time.Time
}

// New - create a ban list; store may be nil
func New(log *logger.L, store Store) *List {
	l := &List{
		log:   log,
		store: store,
		bans:  cache.New(cache.NoExpiration, cleanupInterval),
		now:   time.Now,
	}
	l.bans.OnEvicted(func(ip string, _ interface{}) {
		log.Infof("ban lifted: %s", ip)
		if nil != store {
			store.Remove(ip)
		}
	})
	return l
}

// Load - restore unexpired bans from the store
func (l *List) Load() error {
	if nil == l.store {
		return nil
	}
	now := l.now()
	n := 0
	err := l.store.Load(func(ip string, until time.Time) {
		if !now.Before(until) {
			l.store.Remove(ip)
			return
		}
		l.bans.Set(ip, until, until.Sub(now))
		n += 1
	})
	l.log.Infof("restored bans: %d", n)
	return err
}

func key(ip net.IP) string {
	if ip4 := ip.To4(); nil != ip4 {
		return ip4.String()
	}
	return ip.String()
}

// Ban - refuse ip until the given time; an existing longer ban is kept
func (l *List) Ban(ip net.IP, until time.Time) {
	k := key(ip)
	d := until.Sub(l.now())
	if d <= 0 {
		return
	}

	// compare and set under one lock so a shorter ban never wins
	l.Lock()
	if current, ok := l.bans.Get(k); ok && current.(time.Time).After(until) {
		l.Unlock()
		return
	}
	l.bans.Set(k, until, d)
	if nil != l.store {
		l.store.Save(k, until)
	}
	l.Unlock()

	l.log.Warnf("banned: %s until: %s", k, until.Format(time.RFC3339))
}

// BanFor - refuse ip for a duration from now
func (l *List) BanFor(ip net.IP, d time.Duration) {
	l.Ban(ip, l.now().Add(d))
}

// IsBanned - true if ip has a ban expiring in the future
func (l *List) IsBanned(ip net.IP) bool {
	if nil == ip {
		return false
	}
	_, ok := l.bans.Get(key(ip))
	return ok
}

// Unban - lift a single ban
func (l *List) Unban(ip net.IP) {
	l.bans.Delete(key(ip))
}

// Clear - lift every ban
func (l *List) Clear() {
	for _, e := range l.List() {
		l.bans.Delete(e.IP)
	}
}

// List - current bans ordered by address
func (l *List) List() []Entry {
	items := l.bans.Items()
	entries := make([]Entry, 0, len(items))
	for ip, item := range items {
		entries = append(entries, Entry{
			IP:    ip,
			Until: item.Object.(time.Time),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].IP < entries[j].IP
	})
	return entries
}

// Count - number of current bans
func (l *List) Count() int {
	return l.bans.ItemCount()
}

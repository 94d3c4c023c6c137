// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"github.com/agrocoin/agrocoind/wire"
)

// AddKnownInventory - the peer has this item so never announce it
func (c *Connection) AddKnownInventory(inv wire.InvVect) {
	c.knownInventory.Add(inv)
}

// HasKnownInventory - true if the peer is known to have the item
func (c *Connection) HasKnownInventory(inv wire.InvVect) bool {
	return c.knownInventory.Exists(inv)
}

// QueueInventoryAnnouncement - schedule an item for announcement
//
// nothing is queued if the peer already knows the item or it is
// already pending; returns true if the item was queued
func (c *Connection) QueueInventoryAnnouncement(inv wire.InvVect) bool {
	if c.knownInventory.Exists(inv) {
		return false
	}

	c.inventoryLock.Lock()
	defer c.inventoryLock.Unlock()

	if !c.pendingSet.Add(inv) {
		return false
	}
	c.pendingInventory = append(c.pendingInventory, inv)
	return true
}

// TakePendingInventory - remove up to max pending items for sending,
// marking them as known; max <= 0 takes everything
func (c *Connection) TakePendingInventory(max int) []wire.InvVect {
	c.inventoryLock.Lock()
	defer c.inventoryLock.Unlock()

	n := len(c.pendingInventory)
	if max > 0 && n > max {
		n = max
	}

	items := make([]wire.InvVect, 0, n)
	for _, inv := range c.pendingInventory[:n] {
		c.pendingSet.Remove(inv)

		// learned from the peer since it was queued
		if !c.knownInventory.Add(inv) {
			continue
		}
		items = append(items, inv)
	}
	c.pendingInventory = append(c.pendingInventory[:0], c.pendingInventory[n:]...)
	return items
}

// PendingInventory - copy of the items waiting to be announced
func (c *Connection) PendingInventory() []wire.InvVect {
	c.inventoryLock.Lock()
	defer c.inventoryLock.Unlock()

	items := make([]wire.InvVect, len(c.pendingInventory))
	copy(items, c.pendingInventory)
	return items
}

// AddKnownAddress - the peer knows this address
func (c *Connection) AddKnownAddress(address wire.NetAddress) {
	c.knownAddresses.Add(address.Key())
}

// QueueAddress - schedule an address for relay if the peer does not
// know it, returns true if queued
func (c *Connection) QueueAddress(address wire.NetAddress) bool {
	if c.knownAddresses.Exists(address.Key()) {
		return false
	}

	c.inventoryLock.Lock()
	c.pendingAddresses = append(c.pendingAddresses, address)
	c.inventoryLock.Unlock()
	return true
}

// TakePendingAddresses - remove up to max addresses for sending,
// marking them as known; max <= 0 takes everything
func (c *Connection) TakePendingAddresses(max int) []wire.NetAddress {
	c.inventoryLock.Lock()
	defer c.inventoryLock.Unlock()

	n := len(c.pendingAddresses)
	if max > 0 && n > max {
		n = max
	}

	addresses := make([]wire.NetAddress, 0, n)
	for _, a := range c.pendingAddresses[:n] {
		if c.knownAddresses.Add(a.Key()) {
			addresses = append(addresses, a)
		}
	}
	c.pendingAddresses = append(c.pendingAddresses[:0], c.pendingAddresses[n:]...)
	return addresses
}

// AskFor - schedule a data request for an item this peer announced
func (c *Connection) AskFor(inv wire.InvVect) int64 {
	at := c.scheduler.Schedule(inv)
	c.log.Debugf("ask for: %s  at: %d", inv, at)

	c.inventoryLock.Lock()
	c.askFor.Push(at, inv)
	c.inventoryLock.Unlock()
	return at
}

// DueRequests - items whose request time is not after now
// (microseconds), at most limit; limit <= 0 means no limit
func (c *Connection) DueRequests(now int64, limit int) []wire.InvVect {
	c.inventoryLock.Lock()
	defer c.inventoryLock.Unlock()
	return c.askFor.Due(now, limit)
}

// OutstandingRequests - items scheduled but not yet due
func (c *Connection) OutstandingRequests() int {
	c.inventoryLock.Lock()
	defer c.inventoryLock.Unlock()
	return c.askFor.Len()
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"github.com/agrocoin/agrocoind/peer"
)

// dispatcher - processes the messages of one bus shard in order
type dispatcher struct {
	s     *Server
	shard int
}

func (d *dispatcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := d.s.log
	queue := d.s.bus.Chan(d.shard)

	log.Infof("dispatcher: %d starting…", d.shard)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item := <-queue:
			c, ok := item.Item.(*peer.Connection)
			if !ok {
				log.Criticalf("dispatcher: %d  unexpected item: %v", d.shard, item.Item)
				continue loop
			}
			d.s.dispatch(c, item.Command, item.Parameters)
		}
	}
	log.Infof("dispatcher: %d stopped", d.shard)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"net"
)

// listener - accepts inbound connections
type listener struct {
	s *Server
	l net.Listener
}

func (l *listener) Run(args interface{}, shutdown <-chan struct{}) {
	log := l.s.log

	log.Infof("listener: %s starting…", l.l.Addr())

	go func() {
		<-shutdown
		_ = l.l.Close()
	}()

	for {
		conn, err := l.l.Accept()
		if nil != err {
			select {
			case <-shutdown:
			default:
				log.Errorf("listener: %s  accept error: %s", l.l.Addr(), err)
			}
			break
		}
		_, err = l.s.AddConnection(conn, true, false)
		if nil != err {
			log.Debugf("inbound from: %s  error: %s", conn.RemoteAddr(), err)
		}
	}
	log.Infof("listener: %s stopped", l.l.Addr())
}

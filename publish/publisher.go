// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/agrocoin/agrocoind/background"
	"github.com/agrocoin/agrocoind/fault"
)

const (
	queueSize      = 1000
	zapDomain      = "agrocoin-publish"
	lingerTime     = 0
	sendHighWater  = 10000
	heartbeatEvery = 15 * time.Second
)

// Configuration - publisher settings, keys are optional and enable
// curve encryption when both are given
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

type item struct {
	kind    string
	payload []byte
}

// Publisher - a PUB socket fed from a queue
//
// the socket is only used by the background process
type Publisher struct {
	log        *logger.L
	socket     *zmq.Socket
	queue      chan item
	background *background.T
}

// New - bind the broadcast addresses and start publishing
func New(log *logger.L, configuration Configuration) (*Publisher, error) {
	if 0 == len(configuration.Broadcast) {
		return nil, fault.ErrMissingParameters
	}

	socket, err := newSocket(log, configuration)
	if nil != err {
		return nil, err
	}

	for i, address := range configuration.Broadcast {
		endpoint := canonicalEndpoint(address)
		err := socket.Bind(endpoint)
		if nil != err {
			log.Errorf("cannot bind[%d]: %q  error: %s", i, endpoint, err)
			_ = socket.Close()
			return nil, err
		}
		log.Infof("bind[%d]: %q", i, endpoint)
	}

	p := &Publisher{
		log:    log,
		socket: socket,
		queue:  make(chan item, queueSize),
	}
	p.background = background.Start(background.Processes{p}, nil)
	return p, nil
}

func newSocket(log *logger.L, configuration Configuration) (*zmq.Socket, error) {
	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return nil, err
	}
	_ = socket.SetLinger(lingerTime)
	_ = socket.SetSndhwm(sendHighWater)
	_ = socket.SetHeartbeatIvl(heartbeatEvery)

	if "" == configuration.PrivateKey || "" == configuration.PublicKey {
		return socket, nil
	}

	privateKey, private, err := ReadKeyFile(configuration.PrivateKey)
	if nil == err && !private {
		err = fault.ErrInvalidKeyFile
	}
	if nil != err {
		log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
		_ = socket.Close()
		return nil, err
	}
	publicKey, private, err := ReadKeyFile(configuration.PublicKey)
	if nil == err && private {
		err = fault.ErrInvalidKeyFile
	}
	if nil != err {
		log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
		_ = socket.Close()
		return nil, err
	}

	if err := startAuthentication(); nil != err {
		_ = socket.Close()
		return nil, err
	}
	zmq.AuthCurveAdd(zapDomain, zmq.CURVE_ALLOW_ANY)
	_ = socket.SetCurveServer(1)
	_ = socket.SetCurveSecretkey(string(privateKey))
	_ = socket.SetZapDomain(zapDomain)
	_ = socket.SetIdentity(string(publicKey))
	return socket, nil
}

// host:port becomes tcp://host:port, full endpoints are kept
func canonicalEndpoint(address string) string {
	if strings.Contains(address, "://") {
		return address
	}
	return "tcp://" + address
}

// Publish - queue a notification, dropped if the queue is full
func (p *Publisher) Publish(kind string, payload []byte) {
	select {
	case p.queue <- item{kind: kind, payload: payload}:
	default:
		p.log.Warnf("queue full, dropped: %s", kind)
	}
}

// Run - send queued notifications
func (p *Publisher) Run(args interface{}, shutdown <-chan struct{}) {
	log := p.log

	log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case i := <-p.queue:
			_, err := p.socket.SendMessage(i.kind, i.payload)
			if nil != err {
				log.Errorf("send: %s  error: %s", i.kind, err)
			}
		}
	}
	_ = p.socket.Close()
	log.Info("stopped")
}

// Stop - close the socket
func (p *Publisher) Stop() {
	p.background.Stop()
}

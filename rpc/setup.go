// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/agrocoin/agrocoind/counter"
	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/rpc/certificate"
	"github.com/agrocoin/agrocoind/rpc/listeners"
	"github.com/agrocoin/agrocoind/rpc/node"
	"github.com/agrocoin/agrocoind/rpc/server"
)

const (
	tlsName   = "client_rpc"
	httpsName = "http_rpc"
)

// HTTPSConfiguration - configuration file data for HTTPS setup
type HTTPSConfiguration struct {
	MaximumConnections uint64              `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string            `gluamapper:"listen" json:"listen"`
	Certificate        string              `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string              `gluamapper:"private_key" json:"private_key"`
	Allow              map[string][]string `gluamapper:"allow" json:"allow"`
}

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listener listeners.Listener
	servers  []*http.Server

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of client connections across all listeners
var connectionCountRPC counter.Counter

// Initialise - start the JSON RPC and HTTPS listeners
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *HTTPSConfiguration, version string, status node.Status, network server.Network) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to Start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if 0 != len(rpcConfiguration.Listen) {
		var tlsConfig *tls.Config
		var fingerprint [32]byte
		if "" != rpcConfiguration.Certificate {
			var err error
			tlsConfig, fingerprint, err = certificate.Load(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
			if nil != err {
				return err
			}
		}

		rpcListener, err := listeners.NewRPC(
			rpcConfiguration,
			log,
			&connectionCountRPC,
			server.Create(log, version, &connectionCountRPC, status, network),
			tlsConfig,
			fingerprint,
		)
		if nil != err {
			return err
		}
		err = rpcListener.Serve()
		if nil != err {
			return err
		}
		globalData.listener = rpcListener
	} else {
		log.Infof("disable: %s", tlsName)
	}

	err := initialiseHTTPS(httpsConfiguration, version, status, network)
	if nil != err {
		if nil != globalData.listener {
			globalData.listener.Close()
		}
		return err
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	if nil != globalData.listener {
		globalData.listener.Close()
		globalData.listener = nil
	}
	for _, s := range globalData.servers {
		_ = s.Close()
	}
	globalData.servers = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// parse the allow lists into networks keyed by path
func allowList(allow map[string][]string) (map[string][]*net.IPNet, error) {
	local := make(map[string][]*net.IPNet)
	for path, addresses := range allow {
		set := make([]*net.IPNet, len(addresses))
		local[path] = set
		for i, ip := range addresses {
			_, cidr, err := net.ParseCIDR(strings.Trim(ip, " "))
			if nil != err {
				return nil, err
			}
			set[i] = cidr
		}
	}
	return local, nil
}

// start the HTTPS endpoints
func initialiseHTTPS(configuration *HTTPSConfiguration, version string, status node.Status, network server.Network) error {

	log := globalData.log

	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsName)
		return nil
	}

	if configuration.MaximumConnections < 1 {
		log.Errorf("invalid %s maximum connection limit: %d", httpsName, configuration.MaximumConnections)
		return fault.ErrMissingParameters
	}

	tlsConfiguration, fingerprint, err := certificate.Load(log, httpsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", httpsName, fingerprint)

	// create access control for matching http.Request.RemoteAddr
	local, err := allowList(configuration.Allow)
	if nil != err {
		return err
	}

	handler := newHTTPHandler(
		log,
		server.Create(log, version, &connectionCountRPC, status, network),
		local,
		&connectionCountRPC,
		configuration.MaximumConnections,
		version,
		status,
		network,
	)

	for _, listen := range configuration.Listen {
		log.Infof("starting server: %s on: %q", httpsName, listen)
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			listen = "[::]" + ":" + strings.Split(listen, ":")[1]
		}

		ln, err := net.Listen("tcp", listen)
		if nil != err {
			log.Errorf("%s listen error: %s", httpsName, err)
			return err
		}

		s := newHTTPServer(listen, handler.mux())
		globalData.servers = append(globalData.servers, s)
		go serveTLSKeyPair(log, s, ln, tlsConfiguration)
	}

	return nil
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (c net.Conn, err error) {
	tc, err := ln.AcceptTCP()
	if nil != err {
		return
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(3 * time.Minute)
	return tc, nil
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}

// serve HTTPS using an in-memory TLS key pair
func serveTLSKeyPair(log *logger.L, s *http.Server, ln net.Listener, cfg *tls.Config) {
	tlsConfig := cfg.Clone()
	tlsConfig.NextProtos = []string{"http/1.1"}

	tlsListener := tls.NewListener(tcpKeepAliveListener{ln.(*net.TCPListener)}, tlsConfig)

	err := s.Serve(tlsListener)
	if nil != err && http.ErrServerClosed != err {
		log.Errorf("%s terminated: %s", httpsName, err)
	}
}

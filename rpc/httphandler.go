// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrocoin/agrocoind/counter"
	"github.com/agrocoin/agrocoind/mode"
	"github.com/agrocoin/agrocoind/rpc/node"
	"github.com/agrocoin/agrocoind/rpc/server"
)

// InternalConnection - type to allow rpc system to interface to http request
type InternalConnection struct {
	in  io.Reader
	out io.Writer
}

func (c *InternalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}
func (c *InternalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}
func (c *InternalConnection) Close() error {
	return nil
}

// the argument passed to the handlers
type httpHandler struct {
	log                *logger.L
	server             *rpc.Server
	start              time.Time
	version            string
	allow              map[string][]*net.IPNet
	count              *counter.Counter
	maximumConnections uint64
	status             node.Status
	network            server.Network
	metrics            http.Handler
}

func newHTTPHandler(
	log *logger.L,
	s *rpc.Server,
	allow map[string][]*net.IPNet,
	count *counter.Counter,
	maximumConnections uint64,
	version string,
	status node.Status,
	network server.Network,
) *httpHandler {
	return &httpHandler{
		log:                log,
		server:             s,
		start:              time.Now(),
		version:            version,
		allow:              allow,
		count:              count,
		maximumConnections: maximumConnections,
		status:             status,
		network:            network,
		metrics:            promhttp.Handler(),
	}
}

func (s *httpHandler) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/agrocoind/rpc", s.rpc)
	mux.HandleFunc("/agrocoind/details", s.details)
	mux.HandleFunc("/agrocoind/peers", s.peers)
	mux.HandleFunc("/agrocoind/bans", s.bans)
	mux.HandleFunc("/metrics", s.prometheus)
	mux.HandleFunc("/", s.root)
	return mux
}

// check the remote address against the allow list of a path
func (s *httpHandler) allowed(path string, r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}
	for _, cidr := range s.allow[path] {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// count a connection, false if over the limit
func (s *httpHandler) enter() bool {
	if s.count.Increment() > s.maximumConnections {
		s.count.Decrement()
		return false
	}
	return true
}

// this matches anything not matched and returns error
func (s *httpHandler) root(w http.ResponseWriter, r *http.Request) {
	sendNotFound(w)
}

// performs a call to any normal RPC
func (s *httpHandler) rpc(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !s.enter() {
		sendServiceUnavailable(w)
		return
	}
	defer s.count.Decrement()

	serverCodec := jsonrpc.NewServerCodec(&InternalConnection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	err := s.server.ServeRequest(serverCodec)
	if nil != err {
		s.log.Warnf("rpc request error: %s", err)
	}
}

// guard a GET endpoint with its allow list and the connection limit
func (s *httpHandler) guard(name string, w http.ResponseWriter, r *http.Request) bool {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return false
	}
	if !s.allowed(name, r) {
		s.log.Warnf("Deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return false
	}
	if !s.enter() {
		sendServiceUnavailable(w)
		return false
	}
	return true
}

// DetailsReply - GET form of Node.Info
type DetailsReply struct {
	Chain        string `json:"chain"`
	Mode         string `json:"mode"`
	Height       int32  `json:"height"`
	Tip          string `json:"tip"`
	RPCs         uint64 `json:"rpcs"`
	Peers        int    `json:"peers"`
	Transactions int    `json:"transactions"`
	Version      string `json:"version"`
	Uptime       string `json:"uptime"`
}

// to allow a GET for the same response as Node.Info RPC
func (s *httpHandler) details(w http.ResponseWriter, r *http.Request) {
	if !s.guard("details", w, r) {
		return
	}
	defer s.count.Decrement()

	reply := DetailsReply{
		Chain:        mode.ChainName(),
		Mode:         mode.String(),
		Height:       s.status.Height(),
		Tip:          s.status.Tip().String(),
		RPCs:         s.count.Uint64(),
		Peers:        s.network.PeerCount(),
		Transactions: s.status.TransactionCount(),
		Version:      s.version,
		Uptime:       time.Since(s.start).String(),
	}

	sendReply(w, reply)
}

// GET statistics of every registered connection
func (s *httpHandler) peers(w http.ResponseWriter, r *http.Request) {
	if !s.guard("peers", w, r) {
		return
	}
	defer s.count.Decrement()

	sendReply(w, s.network.Peers())
}

// GET the current bans
func (s *httpHandler) bans(w http.ResponseWriter, r *http.Request) {
	if !s.guard("bans", w, r) {
		return
	}
	defer s.count.Decrement()

	sendReply(w, s.network.Banned())
}

// GET prometheus metrics
func (s *httpHandler) prometheus(w http.ResponseWriter, r *http.Request) {
	if !s.guard("metrics", w, r) {
		return
	}
	defer s.count.Decrement()

	s.metrics.ServeHTTP(w, r)
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

// selected errors as required above
func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}
func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}
func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}
func sendServiceUnavailable(w http.ResponseWriter) {
	sendError(w, "too many connections", http.StatusServiceUnavailable)
}
func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		// manually composed error just incase JSON fails
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package p2p

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsInitOnce sync.Once
	sharedMetrics   *networkMetrics
)

type networkMetrics struct {
	peers     *prometheus.GaugeVec
	messages  *prometheus.CounterVec
	bytes     *prometheus.CounterVec
	handshake *prometheus.CounterVec
	bans      prometheus.Counter
	relay     prometheus.Gauge
}

// all servers in a process share one set of collectors
func newNetworkMetrics() *networkMetrics {
	metricsInitOnce.Do(func() {
		nm := &networkMetrics{
			peers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "agrocoin_p2p_peers",
				Help: "Registered connections by direction.",
			}, []string{"direction"}),
			messages: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "agrocoin_p2p_messages_total",
				Help: "Messages by command and direction.",
			}, []string{"command", "direction"}),
			bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "agrocoin_p2p_bytes_total",
				Help: "Framed bytes by command and direction.",
			}, []string{"command", "direction"}),
			handshake: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "agrocoin_p2p_handshakes_total",
				Help: "Handshake outcomes.",
			}, []string{"result"}),
			bans: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "agrocoin_p2p_bans_total",
				Help: "Addresses banned for misbehaviour.",
			}),
			relay: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "agrocoin_p2p_relay_entries",
				Help: "Objects held in the relay cache.",
			}),
		}
		prometheus.MustRegister(nm.peers, nm.messages, nm.bytes, nm.handshake, nm.bans, nm.relay)
		sharedMetrics = nm
	})
	return sharedMetrics
}

func direction(inbound bool) string {
	if inbound {
		return "inbound"
	}
	return "outbound"
}

func (m *networkMetrics) sent(command string, bytes int) {
	m.messages.WithLabelValues(command, "sent").Inc()
	m.bytes.WithLabelValues(command, "sent").Add(float64(bytes))
}

func (m *networkMetrics) received(command string, bytes int) {
	m.messages.WithLabelValues(command, "received").Inc()
	m.bytes.WithLabelValues(command, "received").Add(float64(bytes))
}

func (m *networkMetrics) connected(inbound bool) {
	m.peers.WithLabelValues(direction(inbound)).Inc()
}

func (m *networkMetrics) disconnected(inbound bool) {
	m.peers.WithLabelValues(direction(inbound)).Dec()
}

func (m *networkMetrics) handshakeResult(result string) {
	m.handshake.WithLabelValues(result).Inc()
}

func (m *networkMetrics) relaySize(n int) {
	m.relay.Set(float64(n))
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"net"
	"strconv"

	"github.com/agrocoin/agrocoind/fault"
)

// MaximumAddresses - most entries allowed in an addr message
const MaximumAddresses = 1000

// sizes of serialised addresses
const (
	netAddressSize            = 8 + net.IPv6len + 2
	timestampedNetAddressSize = 4 + netAddressSize
)

// service bits
const (
	NodeNetwork uint64 = 1 << 0
)

// NetAddress - a peer endpoint
type NetAddress struct {
	Timestamp uint32 // last seen, unix seconds
	Services  uint64
	IP        net.IP
	Port      uint16
}

// NewNetAddress - address from a TCP endpoint
func NewNetAddress(addr *net.TCPAddr, services uint64) NetAddress {
	return NetAddress{
		Services: services,
		IP:       addr.IP,
		Port:     uint16(addr.Port),
	}
}

// String - canonical IP:port
func (a NetAddress) String() string {
	ip := "0.0.0.0"
	if nil != a.IP {
		ip = a.IP.String()
	}
	return net.JoinHostPort(ip, strconv.Itoa(int(a.Port)))
}

// Key - identity of an endpoint, ignoring services and time
func (a NetAddress) Key() string {
	return a.String()
}

// IsLocal - loopback or unspecified addresses
func (a NetAddress) IsLocal() bool {
	return nil == a.IP || a.IP.IsLoopback() || a.IP.IsUnspecified()
}

// IsRoutable - an address worth gossiping
func (a NetAddress) IsRoutable() bool {
	if a.IsLocal() || 0 == a.Port {
		return false
	}
	return !a.IP.IsLinkLocalUnicast() && !a.IP.IsMulticast()
}

func (p packed) netAddress(a NetAddress) packed {
	ip := a.IP.To16()
	if nil == ip {
		ip = make(net.IP, net.IPv6len)
	}
	return p.uint64(a.Services).bytes(ip).uint16BE(a.Port)
}

func (u *unpacker) netAddress() NetAddress {
	a := NetAddress{
		Services: u.uint64(),
		IP:       net.IP(u.bytes(net.IPv6len)),
		Port:     u.uint16BE(),
	}
	if ip4 := a.IP.To4(); nil != ip4 {
		a.IP = ip4
	}
	return a
}

// EncodeAddr - payload for an addr message
func EncodeAddr(addresses []NetAddress) []byte {
	p := make(packed, 0, 9+len(addresses)*timestampedNetAddressSize).varint(uint64(len(addresses)))
	for _, a := range addresses {
		p = p.uint32(a.Timestamp).netAddress(a)
	}
	return p
}

// DecodeAddr - parse an addr payload
func DecodeAddr(payload []byte) ([]NetAddress, error) {
	u := unpacker{buffer: payload}
	count := u.varint()
	if nil != u.err {
		return nil, u.err
	}
	if count > MaximumAddresses {
		return nil, fault.ErrTooManyItems
	}
	if uint64(u.remaining()) < count*timestampedNetAddressSize {
		return nil, fault.ErrTruncatedPayload
	}

	addresses := make([]NetAddress, count)
	for i := range addresses {
		timestamp := u.uint32()
		addresses[i] = u.netAddress()
		addresses[i].Timestamp = timestamp
	}
	return addresses, u.err
}

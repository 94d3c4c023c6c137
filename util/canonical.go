// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/agrocoin/agrocoind/fault"
)

// CanonicalIPandPort - make the IP:Port canonical
//
// examples:
//	IPv4:  127.0.0.1:1234
//	IPv6:  [::1]:1234
func CanonicalIPandPort(hostPort string) (string, error) {
	IP, port, err := SplitIPandPort(hostPort)
	if nil != err {
		return "", err
	}
	return net.JoinHostPort(IP.String(), strconv.Itoa(int(port))), nil
}

// SplitIPandPort - parse a numeric IP:Port
func SplitIPandPort(hostPort string) (net.IP, uint16, error) {

	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return nil, 0, fault.ErrInvalidIPAddress
	}

	IP := net.ParseIP(strings.TrimSpace(host))
	if nil == IP {
		return nil, 0, fault.ErrInvalidIPAddress
	}

	numericPort, err := strconv.Atoi(strings.TrimSpace(port))
	if nil != err || numericPort < 1 || numericPort > 65535 {
		return nil, 0, fault.ErrInvalidPortNumber
	}

	return IP, uint16(numericPort), nil
}

// ListenAddress - convert "*:PORT" to "[::]:PORT"
//
// on the assumption that this will listen on tcp4 and tcp6
func ListenAddress(listen string) string {
	listen = strings.TrimSpace(listen)
	if strings.HasPrefix(listen, "*:") {
		return "[::]:" + listen[2:]
	}
	return listen
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/hex"
	"io/ioutil"
	"strings"
	"sync"

	zmq "github.com/pebbe/zmq4"

	"github.com/agrocoin/agrocoind/fault"
)

const (
	taggedPublic  = "PUBLIC:"
	taggedPrivate = "PRIVATE:"
	keyLength     = 32
)

// to ensure only one auth start
var oneTimeAuthStart sync.Once

// initialise the ZMQ security subsystem
func startAuthentication() error {
	err := error(nil)
	oneTimeAuthStart.Do(func() {
		zmq.AuthSetVerbose(false)
		err = zmq.AuthStart()
	})
	return err
}

// ReadKeyFile - read a tagged hex key, returning the 32 raw bytes and
// whether it was a private key
func ReadKeyFile(fileName string) ([]byte, bool, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, false, err
	}
	return ParseKey(string(data))
}

// ParseKey - decode "PUBLIC:<hex>" or "PRIVATE:<hex>"
func ParseKey(data string) ([]byte, bool, error) {
	s := strings.TrimSpace(data)
	private := false
	switch {
	case strings.HasPrefix(s, taggedPrivate):
		s = s[len(taggedPrivate):]
		private = true
	case strings.HasPrefix(s, taggedPublic):
		s = s[len(taggedPublic):]
	default:
		return nil, false, fault.ErrInvalidKeyFile
	}

	h, err := hex.DecodeString(s)
	if nil != err {
		return nil, false, err
	}
	if keyLength != len(h) {
		return nil, false, fault.ErrInvalidKeyFile
	}
	return h, private, nil
}

// MakeKeyPair - new curve key pair in tagged hex form
func MakeKeyPair() (string, string, error) {
	publicKey, privateKey, err := zmq.NewCurveKeypair()
	if nil != err {
		return "", "", err
	}
	public := taggedPublic + hex.EncodeToString([]byte(zmq.Z85decode(publicKey))) + "\n"
	private := taggedPrivate + hex.EncodeToString([]byte(zmq.Z85decode(privateKey))) + "\n"
	return public, private, nil
}

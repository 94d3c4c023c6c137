// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/util"
)

// lifetime of generated certificates
const validity = 10 * 365 * 24 * time.Hour

// Get - TLS configuration from PEM certificate and key text, and the
// certificate fingerprint
func Get(log *logger.L, name, certificate, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if err != nil {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	fin = fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// Load - as Get but reading the PEM files
func Load(log *logger.L, name, certificateFileName, keyFileName string) (*tls.Config, [32]byte, error) {
	certificate, err := ioutil.ReadFile(certificateFileName)
	if nil != err {
		log.Errorf("%s certificate: %q  error: %s", name, certificateFileName, err)
		return nil, [32]byte{}, err
	}
	key, err := ioutil.ReadFile(keyFileName)
	if nil != err {
		log.Errorf("%s private key: %q  error: %s", name, keyFileName, err)
		return nil, [32]byte{}, err
	}
	return Get(log, name, string(certificate), string(key))
}

// MakeSelfSigned - create a self-signed certificate and key file
func MakeSelfSigned(name string, certificateFileName string, keyFileName string, extraHosts []string) error {
	if util.EnsureFileExists(certificateFileName) {
		return fault.ErrCertificateFileAlreadyExists
	}
	if util.EnsureFileExists(keyFileName) {
		return fault.ErrKeyFileAlreadyExists
	}

	org := "agrocoind self signed cert for: " + name
	cert, key, err := certgen.NewTLSCertPair(org, time.Now().Add(validity), false, extraHosts)
	if err != nil {
		return err
	}

	if err = ioutil.WriteFile(certificateFileName, cert, 0666); err != nil {
		return err
	}
	if err = ioutil.WriteFile(keyFileName, key, 0600); err != nil {
		_ = os.Remove(certificateFileName)
		return err
	}
	return nil
}

// fingerprint - compute the fingerprint of a certificate
//
// FreeBSD: openssl x509 -outform DER -in agrocoind-local-rpc.crt | sha3sum -a 256
func fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}

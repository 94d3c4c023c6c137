// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/agrocoin/agrocoind/addrbook"
	"github.com/agrocoin/agrocoind/ban"
	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/publish"
	"github.com/agrocoin/agrocoind/rpc/certificate"
	"github.com/agrocoin/agrocoind/storage"
	"github.com/agrocoin/agrocoind/util"
	"github.com/agrocoin/agrocoind/version"
)

const (
	publishPublicKeyFilename  = "publish.public"
	publishPrivateKeyFilename = "publish.private"

	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"

	// addresses shown by the addresses command
	addressListCount = 100
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-publish-identity", "publish":
		publicKeyFilename := getFilenameWithDirectory(arguments, publishPublicKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, publishPrivateKeyFilename)

		err := makeKeyPair(publicKeyFilename, privateKeyFilename)
		if nil != err {
			fmt.Printf("generate private key: %q and public key: %q error: %s\n", privateKeyFilename, publicKeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated private key: %q and public key: %q\n", privateKeyFilename, publicKeyFilename)

	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.MakeSelfSigned("rpc", certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "bans", "addresses", "addr", "clear-bans":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s %s\n", version.FullBuild(), version.SubVersion())
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-publish-identity [DIR] (publish) - create private key in: %q\n", "DIR/"+publishPrivateKeyFilename)
		fmt.Printf("                                        and the public key in: %q\n", "DIR/"+publishPublicKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...] (rpc)   - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  bans                                - list the stored bans\n")
		fmt.Printf("  clear-bans                          - remove every stored ban\n")
		fmt.Printf("  addresses                  (addr)   - list a sample of known peer addresses\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(out io.Writer, arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if nil != err {
			exitwithstatus.Message("error: %s", err)
		}
		var buffer bytes.Buffer
		_ = json.Indent(&buffer, b, "", "  ")
		buffer.WriteString("\n")
		_, _ = buffer.WriteTo(out)

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the storage pools are open so these commands can
// access and/or change the stored bans and addresses
func processDataCommand(log *logger.L, out io.Writer, arguments []string, allowLocal bool) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "bans":
		bans := ban.New(log, ban.NewPoolStore(storage.Pool.Bans))
		if err := bans.Load(); nil != err {
			exitwithstatus.Message("ban load error: %s", err)
		}
		printJSON(out, bans.List())

	case "clear-bans":
		bans := ban.New(log, ban.NewPoolStore(storage.Pool.Bans))
		if err := bans.Load(); nil != err {
			exitwithstatus.Message("ban load error: %s", err)
		}
		bans.Clear()
		fmt.Fprintf(out, "all bans cleared\n")

	case "addresses", "addr":
		book := addrbook.New(log, storage.Pool.Addresses, allowLocal)
		if err := book.Load(); nil != err {
			exitwithstatus.Message("address book load error: %s", err)
		}
		fmt.Fprintf(out, "known addresses: %d\n", book.Count())
		for _, a := range book.Sample(addressListCount) {
			fmt.Fprintf(out, "  %s  last seen: %s\n", a.String(), time.Unix(int64(a.Timestamp), 0).UTC())
		}

	default:
		exitwithstatus.Message("error: no such command: %q", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

func printJSON(out io.Writer, data interface{}) {
	b, err := json.MarshalIndent(data, "", "  ")
	if nil != err {
		exitwithstatus.Message("error: %s", err)
	}
	_, _ = out.Write(b)
	_, _ = out.Write([]byte("\n"))
}

func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 {
		dir = arguments[0]
	}

	return filepath.Join(dir, name)
}

// create the publisher CURVE key pair files
func makeKeyPair(publicKeyFilename string, privateKeyFilename string) error {
	if util.EnsureFileExists(publicKeyFilename) || util.EnsureFileExists(privateKeyFilename) {
		return fault.ErrKeyFileAlreadyExists
	}

	public, private, err := publish.MakeKeyPair()
	if nil != err {
		return err
	}

	if err := ioutil.WriteFile(publicKeyFilename, []byte(public), 0666); nil != err {
		return err
	}
	if err := ioutil.WriteFile(privateKeyFilename, []byte(private), 0600); nil != err {
		_ = os.Remove(publicKeyFilename)
		return err
	}
	return nil
}

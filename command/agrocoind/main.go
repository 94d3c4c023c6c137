// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/agrocoin/agrocoind/addrbook"
	"github.com/agrocoin/agrocoind/ban"
	"github.com/agrocoin/agrocoind/chain"
	"github.com/agrocoin/agrocoind/checkpoint"
	"github.com/agrocoin/agrocoind/fault"
	"github.com/agrocoin/agrocoind/mode"
	"github.com/agrocoin/agrocoind/p2p"
	"github.com/agrocoin/agrocoind/publish"
	"github.com/agrocoin/agrocoind/reservoir"
	"github.com/agrocoin/agrocoind/rpc"
	"github.com/agrocoin/agrocoind/storage"
	"github.com/agrocoin/agrocoind/version"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "define", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'd'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// variables passed to the configuration script
	variables, err := parseDefines(options["define"])
	if nil != err {
		exitwithstatus.Message("%s: %s", program, err)
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(os.Stdout, arguments, theConfiguration) {
		return
	}

	// start logging
	if err = initialiseLogging(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version.FullBuild())
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if nil != err {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// start a profiling http server
	// this uses the default builtin HTTP handler
	// and is not associated with the normal ClientRPC HTTPS server
	if "" != theConfiguration.ProfileHTTP {
		go func() {
			log.Warnf("profile listener on: %s", theConfiguration.ProfileHTTP)
			err := http.ListenAndServe(theConfiguration.ProfileHTTP, nil)
			exitwithstatus.Message("profile error: %s", err)
		}()
	}

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Peering", theConfiguration.Peering)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// local chain peers run on private addresses
	allowLocal := chain.Local == mode.ChainName()

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(logger.New("command"), os.Stdout, arguments, allowLocal) {
		return
	}

	// persistent ban list
	bans := ban.New(logger.New("ban"), ban.NewPoolStore(storage.Pool.Bans))
	err = bans.Load()
	if nil != err {
		log.Criticalf("ban list load error: %s", err)
		exitwithstatus.Message("ban list load error: %s", err)
	}

	// known peer addresses
	book := addrbook.New(logger.New("addrbook"), storage.Pool.Addresses, allowLocal)
	err = book.Load()
	if nil != err {
		log.Criticalf("address book load error: %s", err)
		exitwithstatus.Message("address book load error: %s", err)
	}

	// checkpoints are not enforced on test chains
	checkpoints := checkpoint.New(mode.IsTesting())
	genesis, _ := checkpoints.Genesis()

	// start the reservoir (received transactions and blocks)
	log.Info("initialise reservoir")
	pool := reservoir.New(logger.New("reservoir"), genesis)

	// optional block and transaction notifications
	var publisher p2p.Publisher
	if 0 != len(theConfiguration.Publishing.Broadcast) {
		pub, err := publish.New(logger.New("publish"), theConfiguration.Publishing)
		if nil != err {
			log.Criticalf("publish initialise error: %s", err)
			exitwithstatus.Message("publish initialise error: %s", err)
		}
		defer pub.Stop()
		publisher = pub
	}

	// start up the peering background processes
	peering := theConfiguration.Peering
	if 0 == len(peering.Listen) {
		peering.Listen = []string{fmt.Sprintf(":%d", mode.DefaultPort())}
	}
	server, err := p2p.New(logger.New("p2p"), mode.Magic(), peering, p2p.Collaborators{
		Chain:       pool,
		Addresses:   book,
		Checkpoints: checkpoints,
		Bans:        bans,
		Publisher:   publisher,
	})
	if nil != err {
		log.Criticalf("peer initialise error: %s", err)
		exitwithstatus.Message("peer initialise error: %s", err)
	}
	registerRequestHandlers(server, pool)

	err = server.Start()
	if nil != err {
		log.Criticalf("peer start error: %s", err)
		exitwithstatus.Message("peer start error: %s", err)
	}
	defer server.Stop()

	// start up the rpc background processes
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC, version.FullBuild(), pool, server)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	mode.Set(mode.Normal)

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}

// split NAME=VALUE definitions
func parseDefines(defines []string) (map[string]string, error) {
	variables := make(map[string]string)
	for _, d := range defines {
		s := strings.SplitN(d, "=", 2)
		if 2 != len(s) || "" == s[0] {
			return nil, fmt.Errorf("define: %q is not NAME=VALUE", d)
		}
		variables[s[0]] = s[1]
	}
	return variables, nil
}

// start the logger, then the fault panic log that writes through it
func initialiseLogging(configuration logger.Configuration) error {
	if err := logger.Initialise(configuration); nil != err {
		return err
	}
	return fault.Initialise()
}

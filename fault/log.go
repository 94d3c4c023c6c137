// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

// delay to let the log writer catch up before a panic
const panicDelay = 100 * time.Millisecond

// hold a logger channel
var log *logger.L

// Initialise - setup a log channel for last attempt to log something
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any data
func Finalise() {
	if nil != log {
		log.Flush()
	}
}

// Criticalf - log a formatted string with the caller's location
func Criticalf(format string, arguments ...interface{}) {
	internalCriticalf(withCaller(format), withCallerArguments(arguments)...)
}

// Panicf - log a formatted message then panic
func Panicf(format string, arguments ...interface{}) {
	internalCriticalf(withCaller(format), withCallerArguments(arguments)...)
	Panic("abort, see last messages in log file")
}

// Panic - final panic
func Panic(message string) {
	internalCriticalf("%s", message)
	time.Sleep(panicDelay)
	panic(message)
}

// PanicWithError - final panic with an error description
func PanicWithError(message string, err error) {
	s := fmt.Sprintf("%s failed with error: %v", message, err)
	internalCriticalf("%s", s)
	time.Sleep(panicDelay)
	panic(s)
}

// PanicIfError - conditional panic
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	PanicWithError(message, err)
}

// caller location is two frames up: withCaller <- Criticalf <- user
func withCaller(format string) string {
	if _, _, _, ok := runtime.Caller(2); ok {
		return "(%q:%d) " + format
	}
	return format
}

func withCallerArguments(arguments []interface{}) []interface{} {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return arguments
	}
	a := make([]interface{}, 2, 2+len(arguments))
	a[0] = file
	a[1] = line
	return append(a, arguments...)
}

// handle an uninitialised logger channel
func internalCriticalf(format string, arguments ...interface{}) {
	if nil == log {
		fmt.Printf("*** "+format+"\n", arguments...)
	} else {
		log.Criticalf(format, arguments...)
		log.Flush()
	}
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// network error classes
//
// FramingError   - bad magic, length or checksum; peer local
// ProtocolError  - handshake or message ordering violations
// TransientError - socket level problems; orderly teardown
// ResourceError  - a per-peer budget was exceeded
type FramingError GenericError
type ProtocolError GenericError
type TransientError GenericError
type ResourceError GenericError

// common errors - keep in alphabetic order
var (
	ErrAddressIsBanned              = ProtocolError("address is banned")
	ErrAlreadyInitialised           = ExistsError("already initialised")
	ErrBadMagic                     = FramingError("bad network magic")
	ErrCertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ErrChecksumMismatch             = FramingError("checksum mismatch")
	ErrCommandTooLong               = InvalidError("command too long")
	ErrConnectionClosed             = TransientError("connection closed")
	ErrDuplicateVersion             = ProtocolError("duplicate version message")
	ErrFrameLength                  = FramingError("frame length does not match header")
	ErrIncompatibleVersion          = ProtocolError("incompatible protocol version")
	ErrInvalidChain                 = InvalidError("invalid chain")
	ErrInvalidCommand               = FramingError("invalid command")
	ErrInvalidCount                 = InvalidError("invalid count")
	ErrInvalidDigest                = InvalidError("invalid digest")
	ErrInvalidIPAddress             = InvalidError("invalid IP address")
	ErrInvalidKeyFile               = InvalidError("invalid key file")
	ErrInvalidLoggerChannel         = InvalidError("invalid logger channel")
	ErrInvalidPortNumber            = InvalidError("invalid port number")
	ErrInvalidToken                 = InvalidError("invalid token")
	ErrInvalidVersion               = ProtocolError("invalid version message")
	ErrKeyFileAlreadyExists         = ExistsError("key file already exists")
	ErrMessageBeforeHandshake       = ProtocolError("message before handshake")
	ErrMessageNotOpen               = InvalidError("no message is open")
	ErrMissingParameters            = InvalidError("missing parameters")
	ErrNotInitialised               = NotFoundError("not initialised")
	ErrOversizedPayload             = ProtocolError("payload exceeds maximum size")
	ErrRateLimiting                 = InvalidError("rate limiting")
	ErrReceiveBufferExhausted       = ResourceError("receive buffer exhausted")
	ErrSelfConnection               = ProtocolError("connected to self")
	ErrSendBufferExhausted          = ResourceError("send buffer exhausted")
	ErrTooManyConnections           = ResourceError("too many connections")
	ErrTooManyItems                 = ProtocolError("too many items in message")
	ErrTruncatedMessage             = FramingError("truncated message")
	ErrTruncatedPayload             = InvalidError("truncated payload")
	ErrVarStringTooLong             = ProtocolError("variable length string too long")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string    { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }
func (e FramingError) Error() string   { return string(e) }
func (e ProtocolError) Error() string  { return string(e) }
func (e TransientError) Error() string { return string(e) }
func (e ResourceError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool    { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool   { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool  { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool   { _, ok := e.(ProcessError); return ok }
func IsErrFraming(e error) bool   { _, ok := e.(FramingError); return ok }
func IsErrProtocol(e error) bool  { _, ok := e.(ProtocolError); return ok }
func IsErrTransient(e error) bool { _, ok := e.(TransientError); return ok }
func IsErrResource(e error) bool  { _, ok := e.(ResourceError); return ok }

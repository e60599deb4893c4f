// go-pjlink
// Copyright (c) 2026 The OpenAV Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-pjlink.
//
// go-pjlink is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-pjlink is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-pjlink; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package pjlink

import (
	"errors"
	"fmt"
)

// Device-reported errors. These correspond to the PJLink ERR1..ERR4 and
// ERRA reply codes.
var (
	// ErrAuthFailed indicates the device rejected the authentication digest.
	ErrAuthFailed = errors.New("pjlink: authentication failed")
	// ErrUnsupported indicates the device answered ERR1 for a command it
	// does not implement. The command is skipped on subsequent polls.
	ErrUnsupported = errors.New("pjlink: command not supported by device")
	// ErrBadParameter indicates the device answered ERR2 (out of parameter).
	ErrBadParameter = errors.New("pjlink: parameter out of range")
	// ErrDeviceBusy indicates the device answered ERR3 (unavailable time).
	ErrDeviceBusy = errors.New("pjlink: device busy")
	// ErrDeviceFailure indicates the device answered ERR4.
	ErrDeviceFailure = errors.New("pjlink: device failure")
)

// Transport-level errors.
var (
	// ErrTransportClosed indicates the transport is not open.
	ErrTransportClosed = errors.New("pjlink: transport closed")
	// ErrTransportRead indicates a socket read failed.
	ErrTransportRead = errors.New("pjlink: transport read failed")
	// ErrTransportWrite indicates a socket write failed.
	ErrTransportWrite = errors.New("pjlink: transport write failed")
	// ErrTransportTimeout indicates a socket read deadline expired.
	ErrTransportTimeout = errors.New("pjlink: transport timeout")
)

// ErrUnknownInput is returned by a control attempt naming an input that is
// not present in the current input catalog.
var ErrUnknownInput = errors.New("pjlink: input not in catalog")

// ErrorType classifies errors for retry decisions
type ErrorType int

const (
	// ErrorTypeTransient indicates a temporary error that may succeed on retry
	ErrorTypeTransient ErrorType = iota
	// ErrorTypePermanent indicates an error that will not succeed on retry
	ErrorTypePermanent
	// ErrorTypeAuth indicates an authentication error
	ErrorTypeAuth
	// ErrorTypeDevice indicates an error reported by the device itself
	ErrorTypeDevice
)

// TransportError wraps a transport failure with operation context
type TransportError struct {
	Err       error
	Op        string
	Type      ErrorType
	Retryable bool
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("pjlink transport: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the classification for an error
func GetErrorType(err error) ErrorType {
	switch {
	case err == nil:
		return ErrorTypePermanent
	case errors.Is(err, ErrAuthFailed):
		return ErrorTypeAuth
	case errors.Is(err, ErrUnsupported),
		errors.Is(err, ErrBadParameter),
		errors.Is(err, ErrDeviceBusy),
		errors.Is(err, ErrDeviceFailure):
		return ErrorTypeDevice
	case errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrTransportWrite),
		errors.Is(err, ErrTransportTimeout),
		errors.Is(err, ErrTransportClosed):
		return ErrorTypeTransient
	default:
		return ErrorTypePermanent
	}
}

// IsRetryable reports whether the bounded resend loop in the transport gate
// should try the same bytes again.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}
	return GetErrorType(err) == ErrorTypeTransient
}

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

// State reports the connection state of a transport.
type State int

const (
	// StateDisconnected means the transport has no open connection.
	StateDisconnected State = iota
	// StateConnected means the transport believes its connection is usable.
	StateConnected
	// StateUnknown means the transport cannot tell.
	StateUnknown
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Transport is the byte-level connection to one PJLink device. The tcp
// subpackage provides the standard implementation; tests use a scripted
// mock.
//
// The client never calls Transport methods concurrently: every exchange is
// serialized behind its transport mutex.
type Transport interface {
	// Open establishes the connection. Opening an already-open transport
	// is a no-op.
	Open() error

	// Close tears the connection down. Closing a closed transport is a
	// no-op.
	Close() error

	// Write sends raw bytes to the device.
	Write(data []byte) error

	// ReadUntil reads one reply framed by the delimiter, delimiter
	// included.
	ReadUntil(delim byte) ([]byte, error)

	// State reports the current connection state.
	State() State
}

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

// Package tcp implements the PJLink transport over TCP.
package tcp

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	pjlink "github.com/openav/go-pjlink"
)

// DefaultPort is the IANA-registered PJLink port.
const DefaultPort = 4352

const (
	defaultDialTimeout = 5 * time.Second
	defaultReadTimeout = 10 * time.Second
)

// Transport is a pjlink.Transport over one TCP connection.
type Transport struct {
	addr        string
	dialTimeout time.Duration
	readTimeout time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

// Option configures a Transport.
type Option func(*Transport)

// WithPort overrides the default PJLink port.
func WithPort(port int) Option {
	return func(t *Transport) {
		host, _, err := net.SplitHostPort(t.addr)
		if err != nil {
			host = t.addr
		}
		t.addr = net.JoinHostPort(host, strconv.Itoa(port))
	}
}

// WithDialTimeout sets the connect timeout.
func WithDialTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.dialTimeout = d
	}
}

// WithReadTimeout sets the per-read deadline. Zero disables it.
func WithReadTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.readTimeout = d
	}
}

// New creates a transport for the given host. The connection is not opened
// until Open is called.
func New(host string, opts ...Option) *Transport {
	t := &Transport{
		addr:        net.JoinHostPort(host, strconv.Itoa(DefaultPort)),
		dialTimeout: defaultDialTimeout,
		readTimeout: defaultReadTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Addr returns the host:port this transport dials.
func (t *Transport) Addr() string {
	return t.addr
}

// Open dials the device. Opening an already-open transport is a no-op.
func (t *Transport) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return nil
	}

	conn, err := net.DialTimeout("tcp", t.addr, t.dialTimeout)
	if err != nil {
		return &pjlink.TransportError{
			Op:        "open",
			Err:       fmt.Errorf("dial %s: %w", t.addr, err),
			Type:      pjlink.ErrorTypeTransient,
			Retryable: true,
		}
	}
	t.conn = conn
	t.reader = bufio.NewReader(conn)
	return nil
}

// Close tears the connection down. Closing a closed transport is a no-op.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	t.reader = nil
	if err != nil {
		return fmt.Errorf("close %s: %w", t.addr, err)
	}
	return nil
}

// Write sends raw bytes to the device.
func (t *Transport) Write(data []byte) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return pjlink.ErrTransportClosed
	}

	if _, err := conn.Write(data); err != nil {
		return &pjlink.TransportError{
			Op:        "write",
			Err:       fmt.Errorf("%w: %w", pjlink.ErrTransportWrite, err),
			Type:      pjlink.ErrorTypeTransient,
			Retryable: true,
		}
	}
	return nil
}

// ReadUntil reads one reply framed by delim, delim included. A read
// deadline expiring surfaces as ErrTransportTimeout.
func (t *Transport) ReadUntil(delim byte) ([]byte, error) {
	t.mu.Lock()
	conn := t.conn
	reader := t.reader
	t.mu.Unlock()
	if conn == nil {
		return nil, pjlink.ErrTransportClosed
	}

	if t.readTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(t.readTimeout)); err != nil {
			return nil, fmt.Errorf("set read deadline: %w", err)
		}
	}

	data, err := reader.ReadBytes(delim)
	if err != nil {
		underlying := pjlink.ErrTransportRead
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			underlying = pjlink.ErrTransportTimeout
		}
		return nil, &pjlink.TransportError{
			Op:        "read",
			Err:       fmt.Errorf("%w: %w", underlying, err),
			Type:      pjlink.ErrorTypeTransient,
			Retryable: true,
		}
	}
	return data, nil
}

// State reports whether the transport currently holds a connection.
func (t *Transport) State() pjlink.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return pjlink.StateConnected
	}
	return pjlink.StateDisconnected
}

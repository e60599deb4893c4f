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
	"sync"
)

// MockTransport is a scripted transport for tests. Replies are consumed in
// FIFO order, one per ReadUntil, and every Write is recorded so tests can
// assert the exact bytes sent.
type MockTransport struct {
	OpenErr  error
	WriteErr error
	ReadErr  error

	mu      sync.Mutex
	replies [][]byte
	writes  []string
	opened  bool
	opens   int
	closes  int
}

// NewMockTransport creates an empty scripted transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// QueueLine scripts one reply line; the 0x0D terminator is appended.
func (m *MockTransport) QueueLine(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, []byte(line+"\r"))
}

// QueueLines scripts several reply lines at once.
func (m *MockTransport) QueueLines(lines ...string) {
	for _, line := range lines {
		m.QueueLine(line)
	}
}

// Writes returns every payload written so far, as strings.
func (m *MockTransport) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.writes))
	copy(out, m.writes)
	return out
}

// Remaining reports how many scripted replies are still queued.
func (m *MockTransport) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.replies)
}

// Opens reports how many times Open was called on a closed transport.
func (m *MockTransport) Opens() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opens
}

// Closes reports how many times Close was called on an open transport.
func (m *MockTransport) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

// Open implements Transport.
func (m *MockTransport) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OpenErr != nil {
		return m.OpenErr
	}
	if !m.opened {
		m.opened = true
		m.opens++
	}
	return nil
}

// Close implements Transport.
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.opened {
		m.opened = false
		m.closes++
	}
	return nil
}

// Write implements Transport.
func (m *MockTransport) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if !m.opened {
		return ErrTransportClosed
	}
	m.writes = append(m.writes, string(data))
	return nil
}

// ReadUntil implements Transport. An exhausted script returns
// ErrTransportRead, which the gate treats as a transport failure.
func (m *MockTransport) ReadUntil(_ byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	if !m.opened {
		return nil, ErrTransportClosed
	}
	if len(m.replies) == 0 {
		return nil, ErrTransportRead
	}
	next := m.replies[0]
	m.replies = m.replies[1:]
	return next, nil
}

// State implements Transport.
func (m *MockTransport) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.opened {
		return StateConnected
	}
	return StateDisconnected
}

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
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Timing defaults and floors.
const (
	// MinCommandCooldown is the floor for the inter-command gap; the
	// device drops commands that arrive faster.
	MinCommandCooldown = 200 * time.Millisecond
	// DefaultKeepAlivePeriod is the idle interval after which the
	// supervisor refreshes the TCP session. It must stay below the
	// device's idle timeout.
	DefaultKeepAlivePeriod = 25 * time.Second
	// DefaultInputRefreshPeriod is how often the input catalog is rebuilt.
	DefaultInputRefreshPeriod = 30 * time.Minute

	// controlCooldown suppresses polling right after a control so the
	// device is not re-queried while it settles.
	controlCooldown = 5 * time.Second
	// validStatsWindow is how long a poll keeps the session considered
	// host-active before the supervisor pauses it.
	validStatsWindow = 3 * time.Minute
	// scrollAttempts bounds the blank reads used to skip stale replies.
	scrollAttempts = 10
	// scrollPause separates consecutive scroll reads.
	scrollPause = 200 * time.Millisecond
	// exchangeAttempts bounds resends of the same bytes on transport
	// failure.
	exchangeAttempts = 10
	// supervisorTick is the keep-alive loop cadence.
	supervisorTick = time.Second
)

// sessionState tracks the PJLink session handshake.
type sessionState int

const (
	sessionDisconnected sessionState = iota
	sessionAuthenticating
	sessionReady
	sessionPaused
)

// Client is a PJLink protocol client bound to one device.
//
// All exported methods are safe for concurrent use: every byte exchange is
// serialized through mu, and Poll and Control hold it for their whole cycle
// so the two logical actors (host poll/control and the keep-alive
// supervisor) never interleave mid-sequence.
type Client struct {
	transport Transport
	meta      MetadataProvider
	log       *logrus.Entry

	password           string
	cooldown           time.Duration
	keepAlivePeriod    time.Duration
	inputRefreshPeriod time.Duration

	// test seams; production values come from the constants above
	scrollPause     time.Duration
	controlCooldown time.Duration
	statsWindow     time.Duration

	mu      sync.Mutex // transport mutex; guards everything below
	session sessionState
	class   int // 0 until the first CLSS reply
	// unsupported records command tags (and write-only control property
	// names) the device answered with ERR1. Additive; cleared by Reset.
	unsupported map[string]struct{}
	inputs      *inputCatalog
	inputsAt    time.Time // last catalog rebuild
	probed      bool      // one-shot volume capability probe done

	lastCommandAt   time.Time
	lastControlAt   time.Time
	validStatsUntil time.Time

	snap atomic.Pointer[Snapshot]

	stopOnce  sync.Once
	closed    atomic.Bool
	stopCh    chan struct{}
	startOnce sync.Once
}

// New creates a client over the given transport. The transport is opened
// lazily on the first exchange.
func New(transport Transport, opts ...Option) (*Client, error) {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	c := &Client{
		transport:          transport,
		log:                logrus.NewEntry(logger),
		cooldown:           MinCommandCooldown,
		keepAlivePeriod:    DefaultKeepAlivePeriod,
		inputRefreshPeriod: DefaultInputRefreshPeriod,
		scrollPause:        scrollPause,
		controlCooldown:    controlCooldown,
		statsWindow:        validStatsWindow,
		unsupported:        make(map[string]struct{}),
		stopCh:             make(chan struct{}),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Cached returns the most recent successful snapshot, or nil before the
// first poll. The returned snapshot is shared and must not be mutated.
func (c *Client) Cached() *Snapshot {
	return c.snap.Load()
}

// Class returns the device PJLink class, or 0 before the first poll.
func (c *Client) Class() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.class
}

// Reset clears everything learned about the device: class, unsupported
// commands, input catalog, volume probe result and the cached snapshot.
// The next poll rediscovers all of it.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.class = 0
	c.unsupported = make(map[string]struct{})
	c.inputs = nil
	c.inputsAt = time.Time{}
	c.probed = false
	c.snap.Store(nil)
}

// Close stops the keep-alive supervisor and closes the transport. It is
// idempotent.
func (c *Client) Close() error {
	var err error
	c.stopOnce.Do(func() {
		c.closed.Store(true)
		close(c.stopCh)
		c.mu.Lock()
		c.session = sessionDisconnected
		err = c.transport.Close()
		c.mu.Unlock()
	})
	return err
}

// markUnsupported records a command tag or control property the device
// rejected with ERR1. Callers hold mu.
func (c *Client) markUnsupported(key string) {
	c.unsupported[key] = struct{}{}
	c.log.WithField("command", key).Debug("marked unsupported")
}

// isUnsupported reports whether a key was previously rejected. Callers
// hold mu.
func (c *Client) isUnsupported(key string) bool {
	_, ok := c.unsupported[key]
	return ok
}

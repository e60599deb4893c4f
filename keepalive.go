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
	"context"
	"time"
)

// Start launches the keep-alive supervisor: a background loop that keeps
// the TCP session warm while the host is actively polling and closes it
// when the host goes quiet. With a keep-alive period of zero or less the
// supervisor is disabled and Start is a no-op.
//
// The supervisor stops when ctx is cancelled or the client is closed.
func (c *Client) Start(ctx context.Context) error {
	if c.keepAlivePeriod <= 0 {
		return nil
	}
	c.startOnce.Do(func() {
		go c.superviseSession(ctx)
	})
	return nil
}

// superviseSession ticks once a second. Past the valid-stats deadline the
// session is paused: the socket is closed and the handshake state released,
// so the next poll reconnects from scratch. While the host is active, an
// idle gap longer than the keep-alive period is bridged with a CLSS?
// exchange. Keep-alive failures are logged and never escalate.
func (c *Client) superviseSession(ctx context.Context) {
	ticker := time.NewTicker(supervisorTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.superviseTick(ctx)
		}
	}
}

func (c *Client) superviseTick(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if time.Now().After(c.validStatsUntil) {
		if c.session != sessionPaused {
			c.log.Debug("host idle past deadline, pausing session")
			_ = c.transport.Close()
			c.session = sessionPaused
		}
		return
	}

	if time.Since(c.lastCommandAt) <= c.keepAlivePeriod {
		return
	}

	c.log.Debug("refreshing idle session")
	if _, err := c.roundTrip(ctx, cmdClassQuery); err != nil {
		c.log.WithError(err).Warn("keep-alive refresh failed")
	}
}

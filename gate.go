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
	"fmt"
	"time"
)

const terminator = 0x0D

// exchange performs one request/response with the device: wait out the
// inter-command cooldown, write the bytes (none for a blank exchange), and
// read one reply framed by 0x0D. On a transport failure that IsRetryable
// accepts, the same bytes are sent again, for at most exchangeAttempts
// attempts in all; a non-retryable failure or exhaustion surfaces a
// TransportError that terminates the current caller.
//
// Callers hold mu.
func (c *Client) exchange(ctx context.Context, data []byte) ([]byte, error) {
	if err := c.cooldownWait(ctx); err != nil {
		return nil, err
	}
	c.lastCommandAt = time.Now()

	var lastErr error
	for attempt := 0; attempt < exchangeAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("exchange cancelled: %w", err)
		}
		if attempt > 0 {
			c.log.WithField("attempt", attempt).
				WithError(lastErr).Debug("retrying exchange")
		}

		if c.transport.State() != StateConnected {
			if err := c.transport.Open(); err != nil {
				lastErr = err
				if !IsRetryable(err) {
					break
				}
				continue
			}
			// A fresh connection means a fresh banner; the session
			// handshake has to run again.
			if c.session == sessionReady {
				c.session = sessionDisconnected
			}
		}

		if len(data) > 0 {
			if err := c.transport.Write(data); err != nil {
				lastErr = err
				_ = c.transport.Close()
				if !IsRetryable(err) {
					break
				}
				continue
			}
		}

		raw, err := c.transport.ReadUntil(terminator)
		if err != nil {
			lastErr = err
			_ = c.transport.Close()
			if !IsRetryable(err) {
				break
			}
			continue
		}
		return raw, nil
	}

	c.session = sessionDisconnected
	return nil, &TransportError{
		Op:        "exchange",
		Err:       lastErr,
		Type:      ErrorTypeTransient,
		Retryable: false,
	}
}

// cooldownWait sleeps out the remainder of the inter-command gap.
func (c *Client) cooldownWait(ctx context.Context) error {
	remaining := c.cooldown - time.Since(c.lastCommandAt)
	if remaining <= 0 {
		return nil
	}
	c.log.WithField("wait", remaining).Debug("waiting out command cooldown")
	select {
	case <-ctx.Done():
		return fmt.Errorf("cooldown interrupted: %w", ctx.Err())
	case <-time.After(remaining):
		return nil
	}
}

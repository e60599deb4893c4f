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
	"crypto/md5" //nolint:gosec // digest algorithm mandated by the PJLink protocol
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// authDigest derives the one-shot authentication prefix: the lowercase hex
// MD5 of the banner nonce concatenated with the password.
func authDigest(nonce, password string) string {
	sum := md5.Sum([]byte(nonce + password)) //nolint:gosec // see import note
	return hex.EncodeToString(sum[:])
}

// roundTrip sends one catalog command and returns its parsed reply.
//
// When the session is not established it first consumes the PJLINK banner
// with a blank exchange and, if the device demands authentication, prefixes
// the command with the MD5 digest. The reply to that single authenticated
// command decides the session: ERRA drops back to disconnected and raises
// ErrAuthFailed, anything else promotes the session to ready.
//
// The reply is accepted when it is a device error or names the expected
// tag. Anything else is assumed to be a stale reply still queued on the
// device; up to scrollAttempts blank exchanges are issued to scroll past
// them, after which the N/A sentinel is returned.
//
// Callers hold mu.
func (c *Client) roundTrip(ctx context.Context, cmd *command) (response, error) {
	return c.roundTripBytes(ctx, cmd.clone(), cmd.tag)
}

func (c *Client) roundTripBytes(ctx context.Context, data []byte, tag string) (response, error) {
	authed := false

	if c.session != sessionReady && len(data) > 0 {
		prefix, err := c.handshake(ctx)
		if err != nil {
			return response{}, err
		}
		if prefix != "" {
			data = append([]byte(prefix), data...)
			authed = true
		}
	}

	raw, err := c.exchange(ctx, data)
	if err != nil {
		return response{}, err
	}

	for scrolls := 0; ; scrolls++ {
		resp := parseResponse(raw)

		switch resp.kind {
		case respError:
			if errors.Is(resp.err, ErrAuthFailed) {
				c.session = sessionDisconnected
				return response{}, ErrAuthFailed
			}
			if authed {
				c.session = sessionReady
			}
			return resp, nil

		case respBanner:
			if c.session == sessionReady {
				// A greeting in the middle of a session means the device
				// restarted the conversation underneath us. Drop the
				// session and let the next caller redo the handshake.
				c.session = sessionDisconnected
				_ = c.transport.Close()
				return response{}, &TransportError{
					Op:        "roundTrip",
					Err:       fmt.Errorf("unexpected banner %q mid-session", resp.raw),
					Type:      ErrorTypeTransient,
					Retryable: false,
				}
			}
			// Stale greeting before the session settled; scroll past it.

		default:
			if authed {
				// Any non-ERRA reply to the authenticated command
				// establishes the session.
				c.session = sessionReady
				authed = false
			}
			if resp.hasTag(tag) {
				return resp, nil
			}
		}

		if scrolls == scrollAttempts {
			c.log.WithField("tag", tag).Debug("scroll attempts exhausted, returning N/A")
			return response{kind: respNA, value: naValue}, nil
		}

		if err := c.scrollWait(ctx); err != nil {
			return response{}, err
		}
		c.log.WithFields(logrus.Fields{"tag": tag, "scroll": scrolls + 1}).
			Debug("stale reply, scrolling")
		raw, err = c.exchange(ctx, nil)
		if err != nil {
			return response{}, err
		}
	}
}

// handshake consumes the connection banner and returns the digest prefix to
// prepend to the next command, or "" when the device grants open access.
func (c *Client) handshake(ctx context.Context) (string, error) {
	raw, err := c.exchange(ctx, nil)
	if err != nil {
		return "", err
	}

	greeting := parseResponse(raw)
	switch {
	case greeting.kind == respError && errors.Is(greeting.err, ErrAuthFailed):
		c.session = sessionDisconnected
		return "", ErrAuthFailed

	case greeting.kind == respBanner && greeting.requiresAuth:
		c.session = sessionAuthenticating
		return authDigest(greeting.nonce, c.password), nil

	default:
		// "PJLINK 0", an empty line, or any other greeting: no
		// authentication required.
		c.session = sessionReady
		return "", nil
	}
}

// scrollWait pauses between scroll reads.
func (c *Client) scrollWait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("scroll interrupted: %w", ctx.Err())
	case <-time.After(c.scrollPause):
		return nil
	}
}

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
	"time"

	"github.com/sirupsen/logrus"
)

// Option is a functional option for configuring a Client
type Option func(*Client) error

// WithPassword sets the credential used when the device requests digest
// authentication.
func WithPassword(password string) Option {
	return func(c *Client) error {
		c.password = password
		return nil
	}
}

// WithCommandCooldown sets the minimum gap between consecutive commands.
// Values below MinCommandCooldown are clamped to it.
func WithCommandCooldown(d time.Duration) Option {
	return func(c *Client) error {
		if d < MinCommandCooldown {
			d = MinCommandCooldown
		}
		c.cooldown = d
		return nil
	}
}

// WithKeepAlivePeriod sets the idle interval after which the supervisor
// refreshes the session. Zero or negative disables the supervisor.
func WithKeepAlivePeriod(d time.Duration) Option {
	return func(c *Client) error {
		c.keepAlivePeriod = d
		return nil
	}
}

// WithInputRefreshPeriod sets how often the input catalog is rebuilt.
func WithInputRefreshPeriod(d time.Duration) Option {
	return func(c *Client) error {
		if d > 0 {
			c.inputRefreshPeriod = d
		}
		return nil
	}
}

// WithLogger routes the client's log output through the given logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) error {
		c.log = logrus.NewEntry(logger)
		return nil
	}
}

// WithMetadataProvider supplies the adapter metadata copied into each
// snapshot. Without one the AdapterMetadata entries are omitted.
func WithMetadataProvider(meta MetadataProvider) Option {
	return func(c *Client) error {
		c.meta = meta
		return nil
	}
}

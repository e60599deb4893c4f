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

import "time"

// Metadata keys the poll engine reads from the provider.
const (
	MetadataKeyVersion   = "adapter.version"
	MetadataKeyBuildDate = "adapter.build.date"
)

// MetadataProvider supplies the host-side adapter metadata the poll engine
// copies into each snapshot. Implementations live in the host integration;
// the client only reads the two named keys and the start time.
type MetadataProvider interface {
	// Get returns the value for a metadata key, or "" when unset.
	Get(key string) string

	// StartedAt returns the time the hosting adapter started, used to
	// derive the uptime entry.
	StartedAt() time.Time
}

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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputCatalog_RoundTrip(t *testing.T) {
	t.Parallel()

	catalog := newInputCatalog()
	catalog.add("11", "COMPUTER")
	catalog.add("31", "HDMI1")
	catalog.add("32", "HDMI2")

	assert.Equal(t, "COMPUTER", catalog.name("11"))
	code, ok := catalog.code("HDMI1")
	require.True(t, ok)
	assert.Equal(t, "31", code)

	// Insertion order is preserved for the dropdown options.
	assert.Equal(t, []string{"COMPUTER", "HDMI1", "HDMI2"}, catalog.names())

	// Unknown codes fall back to the raw code.
	assert.Equal(t, "99", catalog.name("99"))

	_, ok = catalog.code("SDI")
	assert.False(t, ok)
}

func TestInputCatalog_NilSafe(t *testing.T) {
	t.Parallel()

	var catalog *inputCatalog
	assert.True(t, catalog.empty())
	assert.Equal(t, "11", catalog.name("11"))
	_, ok := catalog.code("COMPUTER")
	assert.False(t, ok)
	assert.Nil(t, catalog.names())
}

func TestSplitInputCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"11", "31", "32", "33", "51", "61"},
		splitInputCodes("11 31 32 33 51 61"))
	assert.Empty(t, splitInputCodes(""))
	// Malformed tokens are dropped.
	assert.Equal(t, []string{"21"}, splitInputCodes("215 21 7"))
}

func TestRefreshInputs_ReplacesCatalogAtomically(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	require.NoError(t, mock.Open())
	mock.QueueLines(
		"%2INST=11 31",
		"%2INNM=COMPUTER",
		"%2INNM=HDMI1",
	)
	c := newTestClient(t, mock)
	c.session = sessionReady

	previous := newInputCatalog()
	previous.add("21", "VIDEO")
	c.inputs = previous

	c.inputsAt = time.Now().Add(-time.Hour)
	c.inputRefreshPeriod = time.Minute

	require.NoError(t, c.refreshInputsIfDue(context.Background()))

	// The old catalog object is untouched; the new one replaced it whole.
	assert.Equal(t, []string{"VIDEO"}, previous.names())
	assert.Equal(t, []string{"COMPUTER", "HDMI1"}, c.inputs.names())
	assert.Equal(t, []string{"%2INST ?\r", "%2INNM ?11\r", "%2INNM ?31\r"}, mock.Writes())
}

func TestRefreshInputs_SkippedWhenFresh(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	c := newTestClient(t, mock)
	c.session = sessionReady

	catalog := newInputCatalog()
	catalog.add("11", "COMPUTER")
	c.inputs = catalog
	c.inputsAt = time.Now()

	require.NoError(t, c.refreshInputsIfDue(context.Background()))
	assert.Empty(t, mock.Writes())
	assert.Same(t, catalog, c.inputs)
}

func TestRefreshInputs_UnsupportedListKeepsOldCatalog(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	require.NoError(t, mock.Open())
	mock.QueueLine("%2INST=ERR1")
	c := newTestClient(t, mock)
	c.session = sessionReady

	require.NoError(t, c.refreshInputsIfDue(context.Background()))
	assert.True(t, c.inputs.empty())
	assert.True(t, c.isUnsupported("INST"))
}

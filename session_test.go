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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthDigest(t *testing.T) {
	t.Parallel()

	// Worked example from the PJLink specification.
	assert.Equal(t, "5d8409bc1c3fa39749434aa3a5c38682",
		authDigest("498e4a67", "JBMIAProjectorLink"))
	assert.Equal(t, "ef650c0973cfca59998f7095d0be4c76",
		authDigest("6b1aa0ba", "panasonic"))
}

func TestRoundTrip_OpenAccessHandshake(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueLines(
		"PJLINK 0",
		"%1CLSS=2",
	)
	c := newTestClient(t, mock)

	resp, err := c.roundTrip(context.Background(), cmdClassQuery)
	require.NoError(t, err)
	assert.Equal(t, respValue, resp.kind)
	assert.Equal(t, "2", resp.value)
	assert.Equal(t, sessionReady, c.session)

	// Only the command itself is written; the banner came from a blank read.
	assert.Equal(t, []string{"%1CLSS ?\r"}, mock.Writes())
}

func TestRoundTrip_EmptyBannerTreatedAsOpenAccess(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueLines(
		"",
		"%1CLSS=2",
	)
	c := newTestClient(t, mock)

	resp, err := c.roundTrip(context.Background(), cmdClassQuery)
	require.NoError(t, err)
	assert.Equal(t, "2", resp.value)
	assert.Equal(t, sessionReady, c.session)
}

func TestRoundTrip_DigestAuthentication(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueLines(
		"PJLINK 1 6b1aa0ba",
		"%1CLSS=1",
		"%1POWR=0",
	)
	c := newTestClient(t, mock, WithPassword("panasonic"))

	resp, err := c.roundTrip(context.Background(), cmdClassQuery)
	require.NoError(t, err)
	assert.Equal(t, "1", resp.value)
	assert.Equal(t, sessionReady, c.session)

	// After a successful auth the same session carries no digest prefix.
	_, err = c.roundTrip(context.Background(), cmdPowerQuery)
	require.NoError(t, err)

	writes := mock.Writes()
	require.Len(t, writes, 2)
	assert.Equal(t, "ef650c0973cfca59998f7095d0be4c76%1CLSS ?\r", writes[0])
	assert.Equal(t, "%1POWR ?\r", writes[1])
}

func TestRoundTrip_AuthRejected(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueLines(
		"PJLINK 1 498e4a67",
		"PJLINK ERRA",
	)
	c := newTestClient(t, mock, WithPassword("wrong"))

	_, err := c.roundTrip(context.Background(), cmdClassQuery)
	require.ErrorIs(t, err, ErrAuthFailed)
	assert.Equal(t, sessionDisconnected, c.session)
}

func TestRoundTrip_ImmediateERRABanner(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueLine("PJLINK ERRA")
	c := newTestClient(t, mock)

	_, err := c.roundTrip(context.Background(), cmdClassQuery)
	require.ErrorIs(t, err, ErrAuthFailed)
}

func TestRoundTrip_ScrollsPastStaleReplies(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	require.NoError(t, mock.Open())
	mock.QueueLines(
		"%1AVMT=31", // stale reply from an earlier query
		"%1POWR=0",
	)
	c := newTestClient(t, mock)
	c.session = sessionReady

	resp, err := c.roundTrip(context.Background(), cmdPowerQuery)
	require.NoError(t, err)
	assert.Equal(t, "0", resp.value)

	// The scroll read is blank: one write only.
	assert.Equal(t, []string{"%1POWR ?\r"}, mock.Writes())
}

func TestRoundTrip_NAAfterExactlyTenScrolls(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	require.NoError(t, mock.Open())
	// Initial reply plus exactly ten scroll reads, none matching POWR.
	for i := 0; i < 11; i++ {
		mock.QueueLine("%1AVMT=31")
	}
	c := newTestClient(t, mock)
	c.session = sessionReady

	resp, err := c.roundTrip(context.Background(), cmdPowerQuery)
	require.NoError(t, err)
	assert.Equal(t, respNA, resp.kind)
	assert.Equal(t, naValue, resp.value)

	// All eleven scripted replies were consumed and nothing extra was read.
	assert.Equal(t, 0, mock.Remaining())
	assert.Equal(t, []string{"%1POWR ?\r"}, mock.Writes())
}

func TestRoundTrip_DeviceErrorAcceptedImmediately(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	require.NoError(t, mock.Open())
	mock.QueueLine("%1LAMP=ERR1")
	c := newTestClient(t, mock)
	c.session = sessionReady

	resp, err := c.roundTrip(context.Background(), cmdLampQuery)
	require.NoError(t, err)
	require.Equal(t, respError, resp.kind)
	assert.ErrorIs(t, resp.err, ErrUnsupported)
}

func TestRoundTrip_MidSessionBannerDropsSession(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	require.NoError(t, mock.Open())
	mock.QueueLine("PJLINK 0")
	c := newTestClient(t, mock)
	c.session = sessionReady

	_, err := c.roundTrip(context.Background(), cmdPowerQuery)
	require.Error(t, err)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, sessionDisconnected, c.session)
	assert.Equal(t, 1, mock.Closes())
}

func TestExchange_SurfacesTransportErrorAfterRetries(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport() // nothing scripted: every read fails
	c := newTestClient(t, mock)

	_, err := c.exchange(context.Background(), []byte("%1CLSS ?\r"))
	require.Error(t, err)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, sessionDisconnected, c.session)
	// One reopen per attempt.
	assert.Equal(t, exchangeAttempts, mock.Opens())
}

func TestExchange_BlankWritesNothing(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	require.NoError(t, mock.Open())
	mock.QueueLine("PJLINK 0")
	c := newTestClient(t, mock)

	raw, err := c.exchange(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "PJLINK 0\r", string(raw))
	assert.Empty(t, mock.Writes())
}

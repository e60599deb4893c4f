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

func TestExchange_EnforcesCooldown(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	require.NoError(t, mock.Open())
	mock.QueueLines("%1POWR=0", "%1POWR=1")

	c := newTestClient(t, mock)
	c.cooldown = 40 * time.Millisecond

	start := time.Now()
	_, err := c.exchange(context.Background(), []byte("%1POWR ?\r"))
	require.NoError(t, err)
	_, err = c.exchange(context.Background(), []byte("%1POWR ?\r"))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestExchange_NoCooldownWaitWhenIdle(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	require.NoError(t, mock.Open())
	mock.QueueLine("%1POWR=0")

	c := newTestClient(t, mock)
	c.cooldown = time.Hour
	// Long idle: the first exchange must not sleep.
	c.lastCommandAt = time.Now().Add(-2 * time.Hour)

	done := make(chan struct{})
	go func() {
		_, _ = c.exchange(context.Background(), []byte("%1POWR ?\r"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("exchange blocked on cooldown despite long idle")
	}
}

func TestExchange_CancelledContext(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	require.NoError(t, mock.Open())
	mock.QueueLine("%1POWR=0")

	c := newTestClient(t, mock)
	c.cooldown = time.Hour
	c.lastCommandAt = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.exchange(ctx, []byte("%1POWR ?\r"))
	require.Error(t, err)
	assert.Empty(t, mock.Writes())
}

func TestExchange_ReopensClosedTransport(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueLine("PJLINK 0")
	c := newTestClient(t, mock)

	raw, err := c.exchange(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "PJLINK 0\r", string(raw))
	assert.Equal(t, 1, mock.Opens())
	assert.Equal(t, StateConnected, mock.State())
}

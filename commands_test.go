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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandPatch_ProducesExactBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cmd  *command
		name string
		want string
		vals []byte
	}{
		{
			name: "power on",
			cmd:  cmdPowerSet,
			vals: []byte{'1'},
			want: "%1POWR 1\r",
		},
		{
			name: "power off",
			cmd:  cmdPowerSet,
			vals: []byte{'0'},
			want: "%1POWR 0\r",
		},
		{
			name: "input select",
			cmd:  cmdInputSet,
			vals: []byte{'3', '1'},
			want: "%1INPT 31\r",
		},
		{
			name: "audio mute on",
			cmd:  cmdMuteSet,
			vals: []byte{'2', '1'},
			want: "%1AVMT 21\r",
		},
		{
			name: "video mute off",
			cmd:  cmdMuteSet,
			vals: []byte{'1', '0'},
			want: "%1AVMT 10\r",
		},
		{
			name: "freeze on",
			cmd:  cmdFreezeSet,
			vals: []byte{'1'},
			want: "%2FREZ 1\r",
		},
		{
			name: "speaker volume up",
			cmd:  cmdSpeakerVolumeSet,
			vals: []byte{'1'},
			want: "%2SVOL 1\r",
		},
		{
			name: "input name query",
			cmd:  cmdInputNameQuery,
			vals: []byte{'1', '1'},
			want: "%2INNM ?11\r",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.cmd.patch(tt.vals...)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

// Patching must never touch the catalog entry itself.
func TestCommandPatch_LeavesCatalogUntouched(t *testing.T) {
	t.Parallel()

	before := string(cmdPowerSet.bytes)
	_ = cmdPowerSet.patch('1')
	assert.Equal(t, before, string(cmdPowerSet.bytes))

	clone := cmdInputSet.clone()
	clone[7] = 'X'
	assert.NotEqual(t, string(clone), string(cmdInputSet.bytes))
}

func TestCommandCatalog_Shape(t *testing.T) {
	t.Parallel()

	queries := []*command{
		cmdClassQuery, cmdPowerQuery, cmdMuteQuery, cmdErrorStatusQuery,
		cmdLampQuery, cmdNameQuery, cmdManufacturerQuery, cmdProductQuery,
		cmdOtherInfoQuery, cmdSerialQuery, cmdSoftwareQuery, cmdFilterQuery,
		cmdFilterModelQuery, cmdLampModelQuery, cmdInputQuery, cmdFreezeQuery,
		cmdRecommendedResQuery, cmdInputResQuery, cmdInputListQuery,
	}
	for _, cmd := range queries {
		require.Len(t, cmd.tag, 4, "tag %q", cmd.tag)
		require.Equal(t, byte(0x0D), cmd.bytes[len(cmd.bytes)-1], "command %s missing terminator", cmd.tag)
		assert.Contains(t, string(cmd.bytes), cmd.tag)
	}

	assert.Empty(t, cmdBlank.bytes)

	// Parameter offsets must point at placeholder bytes.
	withParams := []*command{
		cmdPowerSet, cmdInputSet, cmdMuteSet, cmdFreezeSet,
		cmdSpeakerVolumeSet, cmdMicVolumeSet, cmdInputNameQuery,
	}
	for _, cmd := range withParams {
		require.NotEmpty(t, cmd.params, "command %s", cmd.tag)
		for _, off := range cmd.params {
			assert.Equal(t, byte(0x00), cmd.bytes[off], "command %s offset %d", cmd.tag, off)
		}
	}
}

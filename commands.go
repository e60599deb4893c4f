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

// command is one immutable catalog entry: the exact request bytes, the
// 4-letter tag that appears after %c in the device's reply, the PJLink class
// the command belongs to, and the offsets of parameter bytes that must be
// patched into a clone before sending. Entries with params have those bytes
// placeholder-initialized to 0x00; callers must never patch the catalog
// entry itself.
type command struct {
	tag    string
	bytes  []byte
	params []int
	class  int
}

// clone returns a mutable copy of the request bytes.
func (c *command) clone() []byte {
	out := make([]byte, len(c.bytes))
	copy(out, c.bytes)
	return out
}

// patch copies the request bytes and writes vals at the parameter offsets.
// vals must match the number of parameter offsets.
func (c *command) patch(vals ...byte) []byte {
	out := c.clone()
	for i, off := range c.params {
		out[off] = vals[i]
	}
	return out
}

// cmdBlank has no request bytes; exchanging it reads the next queued reply
// without writing anything. The scroll loop uses it to skip stale replies,
// and the session engine uses it to consume the connection banner.
var cmdBlank = &command{tag: "", bytes: nil, class: 1}

// Class 1 status queries.
var (
	cmdClassQuery        = &command{tag: "CLSS", bytes: []byte("%1CLSS ?\r"), class: 1}
	cmdPowerQuery        = &command{tag: "POWR", bytes: []byte("%1POWR ?\r"), class: 1}
	cmdMuteQuery         = &command{tag: "AVMT", bytes: []byte("%1AVMT ?\r"), class: 1}
	cmdErrorStatusQuery  = &command{tag: "ERST", bytes: []byte("%1ERST ?\r"), class: 1}
	cmdLampQuery         = &command{tag: "LAMP", bytes: []byte("%1LAMP ?\r"), class: 1}
	cmdNameQuery         = &command{tag: "NAME", bytes: []byte("%1NAME ?\r"), class: 1}
	cmdManufacturerQuery = &command{tag: "INF1", bytes: []byte("%1INF1 ?\r"), class: 1}
	cmdProductQuery      = &command{tag: "INF2", bytes: []byte("%1INF2 ?\r"), class: 1}
	cmdOtherInfoQuery    = &command{tag: "INFO", bytes: []byte("%1INFO ?\r"), class: 1}
)

// Class 2 status queries.
var (
	cmdSerialQuery         = &command{tag: "SNUM", bytes: []byte("%2SNUM ?\r"), class: 2}
	cmdSoftwareQuery       = &command{tag: "SVER", bytes: []byte("%2SVER ?\r"), class: 2}
	cmdFilterQuery         = &command{tag: "FILT", bytes: []byte("%2FILT ?\r"), class: 2}
	cmdFilterModelQuery    = &command{tag: "RFIL", bytes: []byte("%2RFIL ?\r"), class: 2}
	cmdLampModelQuery      = &command{tag: "RLMP", bytes: []byte("%2RLMP ?\r"), class: 2}
	cmdInputQuery          = &command{tag: "INPT", bytes: []byte("%2INPT ?\r"), class: 2}
	cmdFreezeQuery         = &command{tag: "FREZ", bytes: []byte("%2FREZ ?\r"), class: 2}
	cmdRecommendedResQuery = &command{tag: "RRES", bytes: []byte("%2RRES ?\r"), class: 2}
	cmdInputResQuery       = &command{tag: "IRES", bytes: []byte("%2IRES ?\r"), class: 2}
	cmdInputListQuery      = &command{tag: "INST", bytes: []byte("%2INST ?\r"), class: 2}

	// INNM takes the two-character input code after the '?'.
	cmdInputNameQuery = &command{
		tag:    "INNM",
		bytes:  []byte("%2INNM ?\x00\x00\r"),
		params: []int{8, 9},
		class:  2,
	}
)

// Control commands.
var (
	cmdPowerSet = &command{
		tag:    "POWR",
		bytes:  []byte("%1POWR \x00\r"),
		params: []int{7},
		class:  1,
	}
	cmdInputSet = &command{
		tag:    "INPT",
		bytes:  []byte("%1INPT \x00\x00\r"),
		params: []int{7, 8},
		class:  1,
	}
	// AVMT takes a channel digit (1=video, 2=audio) and an on/off digit.
	cmdMuteSet = &command{
		tag:    "AVMT",
		bytes:  []byte("%1AVMT \x00\x00\r"),
		params: []int{7, 8},
		class:  1,
	}
	cmdFreezeSet = &command{
		tag:    "FREZ",
		bytes:  []byte("%2FREZ \x00\r"),
		params: []int{7},
		class:  2,
	}
	cmdSpeakerVolumeSet = &command{
		tag:    "SVOL",
		bytes:  []byte("%2SVOL \x00\r"),
		params: []int{7},
		class:  2,
	}
	cmdMicVolumeSet = &command{
		tag:    "MVOL",
		bytes:  []byte("%2MVOL \x00\r"),
		params: []int{7},
		class:  2,
	}
)

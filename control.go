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
	"errors"
	"time"
)

// controlRequest is one resolved control action: the bytes to send, the tag
// to expect back, the key ERR1 should stick to, and the property value to
// cache on success.
type controlRequest struct {
	data        []byte
	tag         string
	errKey      string
	cachedValue string
}

// Control applies a (property, value) pair to the device. Unknown property
// names are a no-op. Device rejections surface as ErrUnsupported,
// ErrBadParameter, ErrDeviceBusy or ErrDeviceFailure; on success the cached
// snapshot is republished with the new value.
func (c *Client) Control(ctx context.Context, property, value string) error {
	if c.closed.Load() {
		return ErrTransportClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if property == PropInput {
		if _, ok := c.inputs.code(value); !ok {
			return ErrUnknownInput
		}
	}

	req, ok := c.resolveControl(property, value)
	if !ok {
		c.log.WithField("property", property).Warn("unknown control property, ignoring")
		return nil
	}

	if c.isUnsupported(req.errKey) {
		return ErrUnsupported
	}

	resp, err := c.roundTripBytes(ctx, req.data, req.tag)
	if err != nil {
		return err
	}

	if resp.kind == respError {
		if errors.Is(resp.err, ErrUnsupported) {
			c.markUnsupported(req.errKey)
		}
		return resp.err
	}

	c.updateCachedControl(property, req.cachedValue)
	c.lastControlAt = time.Now()
	return nil
}

// resolveControl maps a property name and value onto a patched command
// clone. The catalog entry is never mutated.
func (c *Client) resolveControl(property, value string) (controlRequest, bool) {
	onOff := func(v string) byte {
		if v == "1" {
			return '1'
		}
		return '0'
	}

	switch property {
	case PropPower:
		return controlRequest{
			data:        cmdPowerSet.patch(onOff(value)),
			tag:         cmdPowerSet.tag,
			errKey:      cmdPowerSet.tag,
			cachedValue: value,
		}, true

	case PropFreeze:
		return controlRequest{
			data:        cmdFreezeSet.patch(onOff(value)),
			tag:         cmdFreezeSet.tag,
			errKey:      cmdFreezeSet.tag,
			cachedValue: value,
		}, true

	case PropVideoMute:
		return controlRequest{
			data:        cmdMuteSet.patch('1', onOff(value)),
			tag:         cmdMuteSet.tag,
			errKey:      cmdMuteSet.tag,
			cachedValue: value,
		}, true

	case PropAudioMute:
		return controlRequest{
			data:        cmdMuteSet.patch('2', onOff(value)),
			tag:         cmdMuteSet.tag,
			errKey:      cmdMuteSet.tag,
			cachedValue: value,
		}, true

	case PropInput:
		code, ok := c.inputs.code(value)
		if !ok {
			return controlRequest{}, false
		}
		return controlRequest{
			data:        cmdInputSet.patch(code[0], code[1]),
			tag:         cmdInputSet.tag,
			errKey:      cmdInputSet.tag,
			cachedValue: value,
		}, true

	case PropSpeakerVolumeUp:
		return volumeRequest(cmdSpeakerVolumeSet, property, '1'), true
	case PropSpeakerVolumeDown:
		return volumeRequest(cmdSpeakerVolumeSet, property, '0'), true
	case PropMicrophoneVolumeUp:
		return volumeRequest(cmdMicVolumeSet, property, '1'), true
	case PropMicrophoneVolumeDown:
		return volumeRequest(cmdMicVolumeSet, property, '0'), true

	default:
		return controlRequest{}, false
	}
}

// volumeRequest builds the request for one volume button. Buttons carry no
// cached state, so cachedValue stays empty.
func volumeRequest(cmd *command, property string, dir byte) controlRequest {
	return controlRequest{
		data:   cmd.patch(dir),
		tag:    cmd.tag,
		errKey: property,
	}
}

// updateCachedControl republishes the cached snapshot with the new property
// value. A power-off additionally prunes the controls that need the device
// on.
func (c *Client) updateCachedControl(property, value string) {
	cached := c.snap.Load()
	if cached == nil || value == "" {
		return
	}

	snap := cached.clone()
	snap.Properties[property] = value
	if property == PropPower && value == "0" {
		snap.dropPowerControls()
	}
	c.snap.Store(snap)
}

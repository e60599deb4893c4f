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
	"strconv"
	"strings"
	"time"
)

// Poll runs one full status cycle and returns the resulting snapshot.
//
// The first command is always CLSS?, which pins the device class. Class 1
// status commands follow, then the Class 2 additions when the device is
// Class 2. Commands the device previously rejected with ERR1 are skipped.
// A control issued within the last five seconds short-circuits to the
// cached snapshot so the device is left alone while it settles.
func (c *Client) Poll(ctx context.Context) (*Snapshot, error) {
	if c.closed.Load() {
		return nil, ErrTransportClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached := c.snap.Load(); cached != nil &&
		time.Since(c.lastControlAt) < c.controlCooldown {
		return cached, nil
	}

	props := make(map[string]string)

	if err := c.probeClass(ctx, props); err != nil {
		return nil, err
	}

	if !c.probed {
		if err := c.probeVolume(ctx); err != nil {
			return nil, err
		}
		c.probed = true
	}

	if err := c.pollClass1(ctx, props); err != nil {
		return nil, err
	}
	if c.class == 2 {
		if err := c.pollClass2(ctx, props); err != nil {
			return nil, err
		}
	}

	c.writeMetadata(props)

	snap := &Snapshot{
		TakenAt:    time.Now(),
		Properties: props,
		Controls:   c.buildControls(props),
	}
	c.snap.Store(snap)
	c.validStatsUntil = time.Now().Add(c.statsWindow)
	return snap, nil
}

// pollQuery runs one status query under the polling error policy: ERR1
// marks the tag unsupported and the property is omitted, ERR2/ERR3 and the
// N/A sentinel omit the property, ERR4 aborts the cycle, and transport or
// authentication failures propagate.
func (c *Client) pollQuery(ctx context.Context, cmd *command) (string, bool, error) {
	if c.isUnsupported(cmd.tag) {
		return "", false, nil
	}

	resp, err := c.roundTrip(ctx, cmd)
	if err != nil {
		return "", false, err
	}

	switch resp.kind {
	case respError:
		switch {
		case errors.Is(resp.err, ErrUnsupported):
			c.markUnsupported(cmd.tag)
		case errors.Is(resp.err, ErrDeviceFailure):
			return "", false, ErrDeviceFailure
		}
		return "", false, nil
	case respValue:
		if resp.value == "" {
			return "", false, nil
		}
		return resp.value, true, nil
	default:
		return "", false, nil
	}
}

// probeClass issues CLSS? and records the device class. The class sticks
// for the session; if the device stops answering the previous value (or
// Class 1 before any answer) is used.
func (c *Client) probeClass(ctx context.Context, props map[string]string) error {
	value, ok, err := c.pollQuery(ctx, cmdClassQuery)
	if err != nil {
		return err
	}
	if ok && (value == "1" || value == "2") {
		c.class, _ = strconv.Atoi(value)
	}
	if c.class == 0 {
		c.class = 1
	}
	props[PropPJLinkClass] = strconv.Itoa(c.class)
	return nil
}

// probeVolume runs the one-shot volume capability probe: PJLink has no read
// query for volume, so one up command immediately cancelled by its down
// counterpart is issued per channel. ERR1 on either marks the pair
// unsupported.
func (c *Client) probeVolume(ctx context.Context) error {
	pairs := []struct {
		cmd      *command
		propUp   string
		propDown string
	}{
		{cmdSpeakerVolumeSet, PropSpeakerVolumeUp, PropSpeakerVolumeDown},
		{cmdMicVolumeSet, PropMicrophoneVolumeUp, PropMicrophoneVolumeDown},
	}

	for _, p := range pairs {
		supported := true
		for _, dir := range []byte{'1', '0'} {
			resp, err := c.roundTripBytes(ctx, p.cmd.patch(dir), p.cmd.tag)
			if err != nil {
				return err
			}
			if resp.kind == respError && errors.Is(resp.err, ErrUnsupported) {
				supported = false
			}
		}
		if !supported {
			c.markUnsupported(p.propUp)
			c.markUnsupported(p.propDown)
		}
	}
	return nil
}

// pollClass1 runs the fixed Class 1 status sequence.
func (c *Client) pollClass1(ctx context.Context, props map[string]string) error {
	if value, ok, err := c.pollQuery(ctx, cmdMuteQuery); err != nil {
		return err
	} else if ok {
		c.applyMuteValue(props, value)
	}

	if value, ok, err := c.pollQuery(ctx, cmdErrorStatusQuery); err != nil {
		return err
	} else if ok {
		applyErrorStatus(props, value)
	}

	if value, ok, err := c.pollQuery(ctx, cmdLampQuery); err != nil {
		return err
	} else if ok {
		applyLampValue(props, value)
	}

	simple := []struct {
		cmd  *command
		prop string
	}{
		{cmdNameQuery, PropDeviceName},
		{cmdManufacturerQuery, PropManufacturerDetails},
		{cmdProductQuery, PropProductDetails},
		{cmdOtherInfoQuery, PropDeviceDetails},
		{cmdPowerQuery, PropPower},
	}
	for _, q := range simple {
		value, ok, err := c.pollQuery(ctx, q.cmd)
		if err != nil {
			return err
		}
		if ok {
			props[q.prop] = value
		}
	}
	return nil
}

// pollClass2 runs the Class 2 additions, refreshing the input catalog when
// due so the INPT code can be rendered as a display name.
func (c *Client) pollClass2(ctx context.Context, props map[string]string) error {
	simple := []struct {
		cmd  *command
		prop string
	}{
		{cmdSerialQuery, PropSerialNumber},
		{cmdSoftwareQuery, PropSoftwareVersion},
		{cmdFilterQuery, PropFilterUsageTime},
		{cmdFilterModelQuery, PropFilterReplacementModel},
		{cmdLampModelQuery, PropLampReplacementModel},
	}
	for _, q := range simple {
		value, ok, err := c.pollQuery(ctx, q.cmd)
		if err != nil {
			return err
		}
		if ok {
			props[q.prop] = value
		}
	}

	if err := c.refreshInputsIfDue(ctx); err != nil {
		return err
	}

	if value, ok, err := c.pollQuery(ctx, cmdInputQuery); err != nil {
		return err
	} else if ok {
		props[PropInput] = c.inputs.name(value)
	}

	tail := []struct {
		cmd  *command
		prop string
	}{
		{cmdFreezeQuery, PropFreeze},
		{cmdRecommendedResQuery, PropRecommendedResolution},
		{cmdInputResQuery, PropInputResolution},
	}
	for _, q := range tail {
		value, ok, err := c.pollQuery(ctx, q.cmd)
		if err != nil {
			return err
		}
		if ok {
			props[q.prop] = value
		}
	}
	return nil
}

// refreshInputsIfDue rebuilds the input catalog when it is empty or older
// than the refresh period. The catalog is fully built before it replaces
// the previous one.
func (c *Client) refreshInputsIfDue(ctx context.Context) error {
	if !c.inputs.empty() && time.Since(c.inputsAt) < c.inputRefreshPeriod {
		return nil
	}

	value, ok, err := c.pollQuery(ctx, cmdInputListQuery)
	if err != nil || !ok {
		return err
	}

	catalog := newInputCatalog()
	for _, code := range splitInputCodes(value) {
		resp, err := c.roundTripBytes(ctx, cmdInputNameQuery.patch(code[0], code[1]), cmdInputNameQuery.tag)
		if err != nil {
			return err
		}
		if resp.kind != respValue || resp.value == "" {
			continue
		}
		catalog.add(code, resp.value)
	}

	c.inputs = catalog
	c.inputsAt = time.Now()
	return nil
}

// applyMuteValue decodes an AVMT reply into the audio and video mute
// properties. Values outside the four defined states leave both absent.
func (c *Client) applyMuteValue(props map[string]string, value string) {
	audio, video, ok := muteStates(value)
	if !ok {
		c.log.WithField("avmt", value).Debug("unrecognized AVMT value")
		return
	}
	props[PropAudioMute] = audio
	props[PropVideoMute] = video
}

func muteStates(value string) (audio, video string, ok bool) {
	switch value {
	case "30":
		return "0", "0", true
	case "31":
		return "1", "1", true
	case "21":
		return "1", "0", true
	case "11":
		return "0", "1", true
	default:
		return "", "", false
	}
}

// applyErrorStatus decodes the six positional ERST digits. Replies shorter
// than six digits are discarded.
func applyErrorStatus(props map[string]string, value string) {
	if len(value) < 6 {
		return
	}
	slots := []string{
		PropErrorFan, PropErrorLamp, PropErrorTemperature,
		PropErrorCoverOpen, PropErrorFilter, PropErrorOther,
	}
	for i, prop := range slots {
		switch value[i] {
		case '0':
			props[prop] = "OK"
		case '1':
			props[prop] = "WARNING"
		case '2':
			props[prop] = "ERROR"
		default:
			props[prop] = "N/A"
		}
	}
}

// applyLampValue decodes the LAMP reply: space-separated pairs of usage
// hours and a status flag, one pair per lamp.
func applyLampValue(props map[string]string, value string) {
	fields := strings.Fields(value)
	for i := 0; i+1 < len(fields); i += 2 {
		lamp := i/2 + 1
		props[PropLampUsageTime(lamp)] = fields[i]
		if fields[i+1] == "1" {
			props[PropLampStatus(lamp)] = "ON"
		} else {
			props[PropLampStatus(lamp)] = "OFF"
		}
	}
}

// writeMetadata copies the three adapter entries from the metadata
// provider.
func (c *Client) writeMetadata(props map[string]string) {
	if c.meta == nil {
		return
	}
	if v := c.meta.Get(MetadataKeyVersion); v != "" {
		props[PropAdapterVersion] = v
	}
	if v := c.meta.Get(MetadataKeyBuildDate); v != "" {
		props[PropAdapterBuildDate] = v
	}
	if started := c.meta.StartedAt(); !started.IsZero() {
		uptime := time.Since(started).Milliseconds()
		props[PropAdapterUptime] = strconv.FormatInt(uptime, 10)
	}
}

// buildControls assembles the ordered control descriptor list for the
// current snapshot. Power is always controllable; input, mutes and freeze
// only while the device is on; volume buttons whenever the probe found the
// channel supported.
func (c *Client) buildControls(props map[string]string) []ControlDescriptor {
	controls := []ControlDescriptor{
		{Property: PropPower, Type: ControlSwitch},
	}

	if props[PropPower] == "1" {
		if !c.isUnsupported(cmdMuteQuery.tag) {
			controls = append(controls,
				ControlDescriptor{Property: PropAudioMute, Type: ControlSwitch},
				ControlDescriptor{Property: PropVideoMute, Type: ControlSwitch},
			)
		}
		if c.class == 2 && !c.isUnsupported(cmdFreezeQuery.tag) {
			controls = append(controls,
				ControlDescriptor{Property: PropFreeze, Type: ControlSwitch})
		}
		if names := c.inputs.names(); len(names) > 0 && !c.isUnsupported(cmdInputQuery.tag) {
			controls = append(controls, ControlDescriptor{
				Property: PropInput,
				Type:     ControlDropdown,
				Options:  names,
			})
		}
	}

	volumes := []string{
		PropSpeakerVolumeUp, PropSpeakerVolumeDown,
		PropMicrophoneVolumeUp, PropMicrophoneVolumeDown,
	}
	for _, prop := range volumes {
		if !c.isUnsupported(prop) {
			controls = append(controls, ControlDescriptor{Property: prop, Type: ControlButton})
		}
	}
	return controls
}

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
	"fmt"
	"time"
)

// Property names emitted in snapshots and accepted by Control.
const (
	PropPower                  = "System#Power"
	PropFreeze                 = "System#Freeze"
	PropInput                  = "System#Input"
	PropVideoMute              = "System#VideoMute"
	PropRecommendedResolution  = "System#RecommendedResolution"
	PropInputResolution        = "System#InputResolution"
	PropFilterUsageTime        = "System#FilterUsageTime(hours)"
	PropFilterReplacementModel = "System#FilterReplacementModelNumber"

	PropAudioMute            = "Audio#AudioMute"
	PropSpeakerVolumeUp      = "Audio#SpeakerVolumeUp"
	PropSpeakerVolumeDown    = "Audio#SpeakerVolumeDown"
	PropMicrophoneVolumeUp   = "Audio#MicrophoneVolumeUp"
	PropMicrophoneVolumeDown = "Audio#MicrophoneVolumeDown"

	PropLampReplacementModel = "Lamp#LampReplacementModelNumber"

	PropErrorFan         = "ErrorStatus#Fan"
	PropErrorLamp        = "ErrorStatus#Lamp"
	PropErrorTemperature = "ErrorStatus#Temperature"
	PropErrorCoverOpen   = "ErrorStatus#CoverOpen"
	PropErrorFilter      = "ErrorStatus#Filter"
	PropErrorOther       = "ErrorStatus#Other"

	PropDeviceName          = "DeviceName"
	PropManufacturerDetails = "ManufacturerDetails"
	PropProductDetails      = "ProductDetails"
	PropDeviceDetails       = "DeviceDetails"
	PropSerialNumber        = "SerialNumber"
	PropSoftwareVersion     = "SoftwareVersion"
	PropPJLinkClass         = "PJLinkClass"

	PropAdapterVersion   = "AdapterMetadata#AdapterVersion"
	PropAdapterBuildDate = "AdapterMetadata#AdapterBuildDate"
	PropAdapterUptime    = "AdapterMetadata#AdapterUptime"
)

// PropLampUsageTime returns the usage-time property name for lamp i
// (1-based).
func PropLampUsageTime(i int) string {
	return fmt.Sprintf("Lamp#Lamp%dUsageTime", i)
}

// PropLampStatus returns the status property name for lamp i (1-based).
func PropLampStatus(i int) string {
	return fmt.Sprintf("Lamp#Lamp%dStatus", i)
}

// ControlType describes how a control property is operated.
type ControlType int

const (
	// ControlSwitch is a two-state toggle carrying "0" or "1".
	ControlSwitch ControlType = iota
	// ControlButton is a stateless trigger.
	ControlButton
	// ControlDropdown selects one option from a list.
	ControlDropdown
)

// String returns a human-readable control type name.
func (t ControlType) String() string {
	switch t {
	case ControlSwitch:
		return "switch"
	case ControlButton:
		return "button"
	default:
		return "dropdown"
	}
}

// ControlDescriptor describes one control the device currently accepts.
type ControlDescriptor struct {
	Property string
	Options  []string
	Type     ControlType
}

// Snapshot is one immutable view of the device state: a flat property map
// plus the ordered list of controls that were valid at the time it was
// taken. Snapshots are published by pointer swap; callers must not mutate
// them.
type Snapshot struct {
	TakenAt    time.Time
	Properties map[string]string
	Controls   []ControlDescriptor
}

// clone returns a deep copy the control dispatcher can edit before
// republishing.
func (s *Snapshot) clone() *Snapshot {
	out := &Snapshot{
		TakenAt:    s.TakenAt,
		Properties: make(map[string]string, len(s.Properties)),
		Controls:   make([]ControlDescriptor, len(s.Controls)),
	}
	for k, v := range s.Properties {
		out.Properties[k] = v
	}
	copy(out.Controls, s.Controls)
	return out
}

// dropPowerControls removes the controls that only make sense while the
// device is powered on.
func (s *Snapshot) dropPowerControls() {
	gated := map[string]bool{
		PropInput:     true,
		PropAudioMute: true,
		PropVideoMute: true,
		PropFreeze:    true,
	}
	kept := s.Controls[:0]
	for _, c := range s.Controls {
		if !gated[c.Property] {
			kept = append(kept, c)
		}
	}
	s.Controls = kept
}

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
	"strings"
)

const (
	bannerPrefix = "PJLINK "
	// naValue marks a reading the device reports as not applicable, and is
	// also what the scroll loop returns when it runs out of attempts.
	naValue = "-"
)

type responseKind int

const (
	// respValue carries the substring between '=' and the terminator.
	respValue responseKind = iota
	// respError carries one of the ERR1..ERR4 / ERRA sentinel errors.
	respError
	// respBanner is a PJLINK greeting line.
	respBanner
	// respNA is the not-applicable sentinel.
	respNA
)

// response is one parsed device reply.
type response struct {
	err          error
	raw          string
	value        string
	nonce        string
	kind         responseKind
	requiresAuth bool
}

var deviceErrors = map[string]error{
	"ERR1": ErrUnsupported,
	"ERR2": ErrBadParameter,
	"ERR3": ErrDeviceBusy,
	"ERR4": ErrDeviceFailure,
}

// parseResponse classifies one raw line read from the device. The trailing
// 0x0D is stripped if present. A line with neither the banner prefix nor an
// '=' parses as an empty value; the scroll loop treats that as a stale reply.
func parseResponse(raw []byte) response {
	line := strings.TrimSuffix(string(raw), "\r")

	if strings.HasPrefix(line, bannerPrefix) {
		return parseBanner(line)
	}

	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return response{kind: respValue, raw: line, value: ""}
	}

	value := line[eq+1:]
	if err, ok := deviceErrors[value]; ok {
		return response{kind: respError, raw: line, err: err}
	}
	if value == naValue {
		return response{kind: respNA, raw: line, value: naValue}
	}
	return response{kind: respValue, raw: line, value: value}
}

// parseBanner handles the three greeting forms: "PJLINK 0" (no auth),
// "PJLINK 1 <nonce>" (auth required) and "PJLINK ERRA" (auth rejected).
func parseBanner(line string) response {
	rest := strings.TrimPrefix(line, bannerPrefix)
	switch {
	case rest == "ERRA":
		return response{kind: respError, raw: line, err: ErrAuthFailed}
	case strings.HasPrefix(rest, "1 "):
		return response{
			kind:         respBanner,
			raw:          line,
			requiresAuth: true,
			nonce:        strings.TrimSpace(rest[2:]),
		}
	default:
		// "PJLINK 0" and any unrecognized variant: open access.
		return response{kind: respBanner, raw: line}
	}
}

// hasTag reports whether the reply body names the expected command tag.
func (r response) hasTag(tag string) bool {
	return tag != "" && strings.Contains(r.raw, tag)
}

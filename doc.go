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

/*
Package pjlink provides a pure Go client for PJLink Class 1 and Class 2
projectors and displays.

PJLink is an ASCII request/response protocol over TCP (default port 4352).
This library maintains a single session to one device, performs the one-shot
MD5 digest authentication when the device requests it, and exposes the device
state as a flat property map produced by a polling cycle. Control operations
share the same serialized transport as polling, so a control request can
never interleave into the middle of a status sweep.

Basic Usage:

	import (
	    "github.com/openav/go-pjlink"
	    "github.com/openav/go-pjlink/transport/tcp"
	)

	transport := tcp.New("10.0.0.20")

	client, err := pjlink.New(transport,
	    pjlink.WithPassword("JBMIAProjectorLink"),
	)
	if err != nil {
	    log.Fatal(err)
	}
	defer client.Close()

	// Launch the keep-alive supervisor.
	_ = client.Start(context.Background())

	snap, err := client.Poll(context.Background())
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(snap.Properties[pjlink.PropPower])

	// Switch the projector on.
	err = client.Control(context.Background(), pjlink.PropPower, "1")

Session Handling:

The client connects lazily. The first command of a session is preceded by a
blank read that consumes the PJLINK banner; if the banner carries a nonce the
next command is sent with the MD5 digest prefix. Authentication happens at
most once per session. When the host stops polling for three minutes the
keep-alive supervisor closes the socket; the next poll reconnects and
re-runs the handshake.

Error Handling:

Device-reported conditions surface as sentinel errors that can be inspected
with errors.Is:

	if errors.Is(err, pjlink.ErrAuthFailed) {
	    // wrong password
	}

Thread Safety:

All exported methods are safe for concurrent use. Every byte exchange with
the device is serialized through a single internal mutex, and Poll and
Control hold it for their whole cycle.
*/
package pjlink

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

import "strings"

// inputCatalog maps between human-readable input names and their two-byte
// PJLink codes. A catalog is built completely before it replaces the
// previous one, so readers always see either the old or the new mapping,
// never a half-built one.
type inputCatalog struct {
	nameByCode map[string]string
	codeByName map[string]string
	codes      []string
}

func newInputCatalog() *inputCatalog {
	return &inputCatalog{
		nameByCode: make(map[string]string),
		codeByName: make(map[string]string),
	}
}

// add appends one code→name pair, preserving insertion order.
func (ic *inputCatalog) add(code, name string) {
	if _, ok := ic.nameByCode[code]; !ok {
		ic.codes = append(ic.codes, code)
	}
	ic.nameByCode[code] = name
	ic.codeByName[name] = code
}

// empty reports whether the catalog holds no entries.
func (ic *inputCatalog) empty() bool {
	return ic == nil || len(ic.codes) == 0
}

// name resolves an input code to its display name. Unknown codes fall back
// to the raw code so the snapshot still carries something actionable.
func (ic *inputCatalog) name(code string) string {
	if ic == nil {
		return code
	}
	if name, ok := ic.nameByCode[code]; ok {
		return name
	}
	return code
}

// code resolves a display name to its input code.
func (ic *inputCatalog) code(name string) (string, bool) {
	if ic == nil {
		return "", false
	}
	code, ok := ic.codeByName[name]
	return code, ok
}

// names returns the display names in insertion order, for the dropdown
// control options.
func (ic *inputCatalog) names() []string {
	if ic == nil {
		return nil
	}
	out := make([]string, 0, len(ic.codes))
	for _, code := range ic.codes {
		out = append(out, ic.nameByCode[code])
	}
	return out
}

// splitInputCodes tokenizes an INST reply value ("11 31 32 ...") into
// individual two-character codes.
func splitInputCodes(value string) []string {
	var codes []string
	for _, tok := range strings.Fields(value) {
		if len(tok) == 2 {
			codes = append(codes, tok)
		}
	}
	return codes
}

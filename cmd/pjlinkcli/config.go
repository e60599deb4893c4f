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

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the yaml configuration for the CLI. Flags override file values.
type Config struct {
	Host           string `yaml:"host"`
	Password       string `yaml:"password"`
	Port           int    `yaml:"port"`
	KeepAliveMs    int    `yaml:"keep_alive_ms"`
	CooldownMs     int    `yaml:"cooldown_ms"`
	InputRefreshMs int    `yaml:"input_refresh_ms"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Port:           4352,
		KeepAliveMs:    25000,
		CooldownMs:     200,
		InputRefreshMs: 30 * 60 * 1000,
	}
}

// LoadConfig reads a yaml config file, applying defaults for unset fields.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator's flag
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

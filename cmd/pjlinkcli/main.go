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

// pjlinkcli is a diagnostic tool for PJLink devices: it polls the device
// state once or continuously, and dispatches control actions.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	pjlink "github.com/openav/go-pjlink"
	"github.com/openav/go-pjlink/transport/tcp"
)

func main() {
	if run() != 0 {
		os.Exit(1)
	}
}

func run() int {
	configPath := flag.String("config", "", "Path to yaml config file")
	hostFlag := flag.String("host", "", "Device host (overrides config)")
	portFlag := flag.Int("port", 0, "Device port (overrides config)")
	passwordFlag := flag.String("password", "", "PJLink password (overrides config)")
	watchFlag := flag.Duration("watch", 0, "Poll continuously at this interval")
	setFlag := flag.String("set", "", "Control action as property=value")
	verboseFlag := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	logger := logrus.New()
	if *verboseFlag {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			logger.WithError(err).Error("failed to load config")
			return 1
		}
		cfg = loaded
	}
	if *hostFlag != "" {
		cfg.Host = *hostFlag
	}
	if *portFlag != 0 {
		cfg.Port = *portFlag
	}
	if *passwordFlag != "" {
		cfg.Password = *passwordFlag
	}
	if cfg.Host == "" {
		fmt.Fprintln(os.Stderr, "no host given; use -host or -config")
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	transport := tcp.New(cfg.Host, tcp.WithPort(cfg.Port))
	client, err := pjlink.New(transport,
		pjlink.WithPassword(cfg.Password),
		pjlink.WithCommandCooldown(time.Duration(cfg.CooldownMs)*time.Millisecond),
		pjlink.WithKeepAlivePeriod(time.Duration(cfg.KeepAliveMs)*time.Millisecond),
		pjlink.WithInputRefreshPeriod(time.Duration(cfg.InputRefreshMs)*time.Millisecond),
		pjlink.WithLogger(logger),
	)
	if err != nil {
		logger.WithError(err).Error("failed to create client")
		return 1
	}
	defer client.Close()

	if *setFlag != "" {
		return runControl(ctx, client, *setFlag, logger)
	}
	if *watchFlag > 0 {
		return runWatch(ctx, client, *watchFlag, logger)
	}
	return runPoll(ctx, client, logger)
}

func runControl(ctx context.Context, client *pjlink.Client, action string, logger *logrus.Logger) int {
	property, value, ok := strings.Cut(action, "=")
	if !ok {
		fmt.Fprintln(os.Stderr, "-set needs property=value")
		return 1
	}

	// Input control needs the catalog, which a poll populates.
	if _, err := client.Poll(ctx); err != nil {
		logger.WithError(err).Error("initial poll failed")
		return 1
	}
	if err := client.Control(ctx, property, value); err != nil {
		logger.WithError(err).Error("control failed")
		return 1
	}
	fmt.Printf("%s = %s\n", property, value)
	return 0
}

func runWatch(ctx context.Context, client *pjlink.Client, interval time.Duration, logger *logrus.Logger) int {
	if err := client.Start(ctx); err != nil {
		logger.WithError(err).Error("failed to start supervisor")
		return 1
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if code := runPoll(ctx, client, logger); code != 0 {
			return code
		}
		select {
		case <-ctx.Done():
			return 0
		case <-ticker.C:
		}
	}
}

func runPoll(ctx context.Context, client *pjlink.Client, logger *logrus.Logger) int {
	snap, err := client.Poll(ctx)
	if err != nil {
		logger.WithError(err).Error("poll failed")
		return 1
	}
	printSnapshot(snap)
	return 0
}

func printSnapshot(snap *pjlink.Snapshot) {
	keys := make([]string, 0, len(snap.Properties))
	for k := range snap.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("--- %s ---\n", snap.TakenAt.Format(time.RFC3339))
	for _, k := range keys {
		fmt.Printf("%-45s %s\n", k, snap.Properties[k])
	}
	fmt.Println("controls:")
	for _, ctl := range snap.Controls {
		if len(ctl.Options) > 0 {
			fmt.Printf("  %s (%s: %s)\n", ctl.Property, ctl.Type, strings.Join(ctl.Options, ", "))
		} else {
			fmt.Printf("  %s (%s)\n", ctl.Property, ctl.Type)
		}
	}
}

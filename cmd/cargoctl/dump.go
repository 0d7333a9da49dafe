// cmd/cargoctl/dump.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"os"

	"github.com/goforj/godump"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aircargo/controller/pkg/controller"
)

// dumpSnapshot writes a binary snapshot of the controller's final plan
// state to path (msgpack) and prints a human-readable copy to stdout
// (godump), mirroring cmd/vice's ad hoc godump.Dump calls.
func dumpSnapshot(c *controller.Controller, path string) error {
	snap := c.Snapshot()

	godump.Dump(snap)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()

	if err := msgpack.NewEncoder(f).Encode(snap); err != nil {
		return fmt.Errorf("%s: encoding snapshot: %w", path, err)
	}
	return nil
}

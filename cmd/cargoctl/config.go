// cmd/cargoctl/config.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the settings a -config file can carry: log settings, a
// default processing time, and two reroute-policy toggles. Only the log
// settings are applied; DefaultProcessing, RerouteAvoidQueue and
// RerouteAvoidMal are decoded but nothing in cargoctl reads them
// (generated scenarios always use a processing time of 5). The
// assignment bucket size is the plan.BucketSize constant and is not
// configurable. Flags passed on the command line take precedence over
// whatever a -config file sets (mirroring the teacher's cmd/vice, where
// flags always win over the saved config).
type Config struct {
	LogLevel          string `toml:"log_level"`
	LogDir            string `toml:"log_dir"`
	DefaultProcessing int    `toml:"default_processing_time"`
	RerouteAvoidQueue bool   `toml:"reroute_avoid_queue"`
	RerouteAvoidMal   bool   `toml:"reroute_avoid_malfunction"`
}

// DefaultConfig returns the settings used when no -config file is given.
func DefaultConfig() Config {
	return Config{
		LogLevel:          "info",
		LogDir:            "",
		DefaultProcessing: 5,
	}
}

// LoadConfig reads a TOML config file at path, returning DefaultConfig
// unchanged if path is empty.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// cmd/cargoctl/main.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/aircargo/controller/pkg/log"
	"github.com/aircargo/controller/pkg/util"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
	logLevel   = flag.String("loglevel", "", "logging level: debug, info, warn, error (overrides -config)")
	logDir     = flag.String("logdir", "", "log file directory (overrides -config)")
	configFile = flag.String("config", "", "TOML config file")

	scenarioFilename = flag.String("scenario", "", "filename of JSON file with a scenario definition")
	gen              = flag.Bool("gen", false, "synthesize a demo scenario instead of loading -scenario")
	seed             = flag.Uint64("seed", 1, "seed for -gen")
	nAirports        = flag.Int("airports", 10, "airports to synthesize with -gen")
	nPlanes          = flag.Int("planes", 3, "aircraft to synthesize with -gen")
	nCargo           = flag.Int("cargo", 8, "cargo items to synthesize with -gen")
	maxTicks         = flag.Int("maxticks", 2000, "give up after this many ticks if cargo remains undelivered")

	bench = flag.Int("bench", 0, "run N synthesized episodes concurrently and report timing")

	dumpFile = flag.String("dump", "", "snapshot final plan state (msgpack) to this file and print a summary")

	verbose = flag.Bool("v", false, "print per-tick departure/arrival events")
)

func main() {
	flag.Parse()

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *configFile, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logDir != "" {
		cfg.LogDir = *logDir
	}

	lg := log.New(false, cfg.LogLevel, cfg.LogDir)

	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer profiler.Cleanup()

	switch {
	case *bench > 0:
		if err := runBench(*bench, *nAirports, *nPlanes, *nCargo, *maxTicks, lg); err != nil {
			lg.Errorf("bench: %v", err)
			os.Exit(1)
		}

	case *gen:
		sf := genScenario(*seed, *nAirports, *nPlanes, *nCargo)
		runScenario(sf, lg)

	case *scenarioFilename != "":
		sf, err := loadScenario(*scenarioFilename)
		if err != nil {
			lg.Errorf("%s: %v", *scenarioFilename, err)
			os.Exit(1)
		}
		runScenario(sf, lg)

	default:
		fmt.Fprintln(os.Stderr, "cargoctl: one of -scenario, -gen, or -bench is required")
		flag.Usage()
		os.Exit(1)
	}
}

func runScenario(sf scenarioFile, lg *log.Logger) {
	r, err := newRunner(sf, lg, *maxTicks, *verbose)
	if err != nil {
		lg.Errorf("reset: %v", err)
		os.Exit(1)
	}

	ticks := r.Run()
	fmt.Printf("ran %d ticks: %d/%d cargo delivered\n", ticks, len(r.delivered), len(sf.Cargo))

	if *dumpFile != "" {
		if err := dumpSnapshot(r.ctrl, *dumpFile); err != nil {
			lg.Errorf("dump: %v", err)
			os.Exit(1)
		}
	}
}

// cmd/cargoctl/bench.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aircargo/controller/pkg/log"
)

// episodeResult is one -bench run's outcome: how many ticks it took to
// deliver every cargo (or maxTicks if it didn't finish) and how long
// that took in wall-clock time.
type episodeResult struct {
	index int
	ticks int
	took  time.Duration
}

// runBench synthesizes n independent scenarios (seeded 1..n so each run
// is reproducible) and runs them concurrently, one Controller per
// episode — harness-only concurrency, per SPEC_FULL.md §5: each
// Controller instance stays internally sequential and shares no state
// with the others.
func runBench(n, nAirports, nPlanes, nCargo, maxTicks int, lg *log.Logger) error {
	var eg errgroup.Group
	eg.SetLimit(8)

	var mu sync.Mutex
	results := make([]episodeResult, n)

	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			sf := genScenario(uint64(i+1), nAirports, nPlanes, nCargo)
			r, err := newRunner(sf, lg, maxTicks, false)
			if err != nil {
				return fmt.Errorf("episode %d: %w", i, err)
			}

			start := time.Now()
			ticks := r.Run()
			took := time.Since(start)

			mu.Lock()
			results[i] = episodeResult{index: i, ticks: ticks, took: took}
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}

	var totalTicks int
	var totalTime time.Duration
	for _, res := range results {
		fmt.Printf("episode %d: %d ticks in %s\n", res.index, res.ticks, res.took)
		totalTicks += res.ticks
		totalTime += res.took
	}
	fmt.Printf("%d episodes: avg %.1f ticks, avg %s\n", n, float64(totalTicks)/float64(n), totalTime/time.Duration(n))
	return nil
}

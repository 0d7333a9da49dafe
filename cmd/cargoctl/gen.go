// cmd/cargoctl/gen.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/aircargo/controller/pkg/rand"
)

// genScenario builds a reproducible demo scenario from seed: nAirports
// airports arranged on a ring (plus a handful of chords for alternate
// routing), nPlanes aircraft of a single plane type scattered across
// them, and nCargo parcels between random origin/destination pairs.
// Deterministic in seed, per spec.md §6's reset(obs, ..., seed) hook —
// the generator is the one piece of this repo that legitimately
// consumes randomness.
func genScenario(seed uint64, nAirports, nPlanes, nCargo int) scenarioFile {
	r := rand.New(seed)

	sf := scenarioFile{ProcessingTime: 5, LatestDeadline: 1000}

	const planeType = 0
	for i := 0; i < nAirports; i++ {
		j := (i + 1) % nAirports
		sf.Routes = append(sf.Routes,
			routeJSON{PlaneType: planeType, From: int32(i), To: int32(j), Cost: 1, Time: float64(5 + r.Intn(10)), RouteAvailable: true},
			routeJSON{PlaneType: planeType, From: int32(j), To: int32(i), Cost: 1, Time: float64(5 + r.Intn(10)), RouteAvailable: true},
		)
	}
	// A few chords across the ring so outage rerouting (C10) has an
	// alternative to find.
	for i := 0; i < nAirports/2; i++ {
		a := int32(r.Intn(nAirports))
		b := int32(r.Intn(nAirports))
		if a == b {
			continue
		}
		sf.Routes = append(sf.Routes,
			routeJSON{PlaneType: planeType, From: a, To: b, Cost: 1, Time: float64(5 + r.Intn(15)), RouteAvailable: true},
			routeJSON{PlaneType: planeType, From: b, To: a, Cost: 1, Time: float64(5 + r.Intn(15)), RouteAvailable: true},
		)
	}

	for i := 0; i < nPlanes; i++ {
		sf.Planes = append(sf.Planes, planeJSON{
			ID: fmt.Sprintf("p%d", i), PlaneType: planeType,
			Location: int32(r.Intn(nAirports)), MaxWeight: 100,
		})
	}

	for i := 0; i < nCargo; i++ {
		origin := int32(r.Intn(nAirports))
		dest := origin
		for dest == origin {
			dest = int32(r.Intn(nAirports))
		}
		ep := r.Intn(50)
		soft := ep + 50 + r.Intn(200)
		hard := soft + 50 + r.Intn(200)
		sf.Cargo = append(sf.Cargo, cargoJSON{
			ID: int32(i), Origin: origin, Destination: dest,
			EarliestPickupTime: ep, SoftDeadline: soft, HardDeadline: hard,
			Weight: 5 + r.Intn(20),
		})
	}

	return sf
}

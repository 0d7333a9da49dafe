// pkg/cargo/builder.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package cargo

import (
	"github.com/aircargo/controller/pkg/graph"
	"github.com/aircargo/controller/pkg/log"
)

// BuildEdges is C3: it expands c's shortest path into a sequence of
// CargoEdges with derived pickup windows and appends them to store.
//
// A cargo whose origin equals its destination yields no edges (it is
// already delivered). A cargo with no path between origin and
// destination, or whose path contains a hop with no allowed plane
// type, is a planning error: it is logged and the offending edge (or
// the whole cargo, if no path exists at all) is skipped, never a crash.
func BuildEdges(g *graph.Graph, rc *graph.RouteCache, c Cargo, processingTime int, store *EdgeStore, lg *log.Logger) {
	if c.DeliveredAtReset() {
		return
	}

	pi, err := rc.GetPath(c.Origin, c.Destination)
	if err != nil {
		lg.Errorf("cargo %d: no path %d -> %d: %v", c.ID, c.Origin, c.Destination, err)
		return
	}
	path := pi.Path
	k := len(path) - 1
	if k == 0 {
		return
	}

	travel := make([]float64, k+1) // travel[i] = travel time of hop i, 1-indexed
	for i := 1; i <= k; i++ {
		travel[i] = g.TravelTime(path[i-1], path[i])
	}

	ep := make([]int, k+1)
	ep[1] = c.EarliestPickupTime
	for i := 2; i <= k; i++ {
		ep[i] = ep[i-1] + 2*processingTime + int(travel[i-1])
	}

	lp := make([]int, k+2)
	lp[k] = c.SoftDeadline - (2*processingTime + int(travel[k]))
	for i := k - 1; i >= 1; i-- {
		lp[i] = lp[i+1] - (2*processingTime + int(travel[i+1]))
	}

	for i := 1; i <= k; i++ {
		orig, dest := path[i-1], path[i]
		types := g.AllowedPlaneTypes(orig, dest)
		if len(types) == 0 {
			lg.Errorf("cargo %d hop %d (%d->%d): no plane type can fly this edge, skipping", c.ID, i, orig, dest)
			continue
		}
		store.Add(CargoEdge{
			CargoID:           c.ID,
			Origin:            orig,
			Destination:       dest,
			Sequence:          i,
			Duration:          int(travel[i]) + processingTime,
			EP:                ep[i],
			LP:                lp[i],
			Weight:            c.Weight,
			AllowedPlaneTypes: types,
		})
	}
}

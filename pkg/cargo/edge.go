// pkg/cargo/edge.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package cargo

import (
	"github.com/aircargo/controller/pkg/graph"
	"github.com/aircargo/controller/pkg/util"
)

// EdgeID stably addresses one CargoEdge in an EdgeStore, surviving any
// later append to the store.
type EdgeID int

// CargoEdge is one hop of a cargo's shortest-path route, with its own
// time window. It is the unit the assignment engine (C5) schedules onto
// aircraft.
type CargoEdge struct {
	ID                EdgeID
	CargoID           ID
	Origin            graph.AirportID
	Destination       graph.AirportID
	Sequence          int
	Duration          int
	EP                int
	LP                int
	Weight            int
	AllowedPlaneTypes []graph.PlaneType
}

// EdgeStore is the single flat arena all cargo edges live in, indexed
// both by stable EdgeID and by cargo id for the window propagator's
// same-cargo sweeps (C6).
type EdgeStore struct {
	arena   util.Arena[CargoEdge]
	byCargo map[ID][]EdgeID
}

// NewEdgeStore returns an empty edge store.
func NewEdgeStore() *EdgeStore {
	return &EdgeStore{byCargo: make(map[ID][]EdgeID)}
}

// Add appends ce to the store, assigns it a stable EdgeID, and returns
// that id.
func (s *EdgeStore) Add(ce CargoEdge) EdgeID {
	id := EdgeID(s.arena.Add(ce))
	s.arena.Get(int(id)).ID = id
	s.byCargo[ce.CargoID] = append(s.byCargo[ce.CargoID], id)
	return id
}

// Get returns a pointer to the edge with the given id. The pointer is
// only valid until the next Add call.
func (s *EdgeStore) Get(id EdgeID) *CargoEdge {
	return s.arena.Get(int(id))
}

// ForCargo returns the ids of every edge belonging to cargo c, in
// insertion order (not necessarily sequence order — callers that need
// sequence order should sort).
func (s *EdgeStore) ForCargo(c ID) []EdgeID {
	return s.byCargo[c]
}

// All iterates every edge in the store in insertion order.
func (s *EdgeStore) All() func(yield func(EdgeID, *CargoEdge) bool) {
	return func(yield func(EdgeID, *CargoEdge) bool) {
		for i, ce := range s.arena.All() {
			if !yield(EdgeID(i), ce) {
				return
			}
		}
	}
}

// Len returns the number of edges in the store.
func (s *EdgeStore) Len() int {
	return s.arena.Len()
}

// RemoveCargo forgets cargo c's edges (used when the environment reports
// the cargo missing from active_cargo, spec.md §7). The arena slots
// themselves are not reclaimed — consistent with the arena's
// never-shrinks, stable-id design — but ForCargo no longer returns them,
// so the propagator and dispatcher stop visiting them.
func (s *EdgeStore) RemoveCargo(c ID) {
	delete(s.byCargo, c)
}

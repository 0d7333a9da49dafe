// pkg/plan/plane.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/graph"
)

// PlaneID is the simulation's agent identifier.
type PlaneID string

// Leg is a contiguous run of cargo edges sharing one origin->destination
// hop and overlapping pickup windows (C4's leg concept). Because its
// members all share the same hop, a leg is always exactly one graph
// edge, however many cargo items ride it.
type Leg struct {
	Origin, Destination graph.AirportID
	Members             []cargo.EdgeID
	EP, LP              int
	Duration            int
}

// HasCargo reports whether c is a member of this leg.
func (l *Leg) HasCargo(c cargo.ID, store *cargo.EdgeStore) bool {
	for _, id := range l.Members {
		if store.Get(id).CargoID == c {
			return true
		}
	}
	return false
}

// Plane is one aircraft's planning state (C4): current position, the
// legs queued onto it (appended only, never reordered; dispatched legs
// are popped by the dispatcher), and derived capacity/window state.
type Plane struct {
	ID              PlaneID
	Location        graph.AirportID
	NextDestination graph.AirportID
	Type            graph.PlaneType
	MaxWeight       int
	CurWeight       int
	CargoIDs        map[cargo.ID]bool
	Legs            []*Leg

	// ReroutePath is the dispatcher's in-progress detour around an
	// outage: the remaining waypoints toward the current leg's
	// destination once the direct hop has been found unavailable. Empty
	// when the plane is flying (or about to fly) the leg's direct edge.
	ReroutePath []graph.AirportID
}

// NewPlane returns a plane at the given location with no legs.
func NewPlane(id PlaneID, pt graph.PlaneType, location graph.AirportID, maxWeight int) *Plane {
	return &Plane{
		ID:              id,
		Location:        location,
		NextDestination: graph.NoAirport,
		Type:            pt,
		MaxWeight:       maxWeight,
		CargoIDs:        make(map[cargo.ID]bool),
	}
}

// HasLegs reports whether this plane has any queued legs.
func (p *Plane) HasLegs() bool { return len(p.Legs) > 0 }

// LastLeg returns the most recently appended leg, or nil.
func (p *Plane) LastLeg() *Leg {
	if len(p.Legs) == 0 {
		return nil
	}
	return p.Legs[len(p.Legs)-1]
}

// FirstLeg returns the next leg to be dispatched, or nil.
func (p *Plane) FirstLeg() *Leg {
	if len(p.Legs) == 0 {
		return nil
	}
	return p.Legs[0]
}

// EP returns the plane's effective earliest pickup: its last leg's ep,
// or 0 if it has no legs.
func (p *Plane) EP() int {
	if l := p.LastLeg(); l != nil {
		return l.EP
	}
	return 0
}

// LP returns the plane's effective latest pickup: its last leg's lp, or
// BigTime if it has no legs.
func (p *Plane) LP() int {
	if l := p.LastLeg(); l != nil {
		return l.LP
	}
	return BigTime
}

// PopFirstLeg removes and returns the plane's first leg once it has
// been fully dispatched.
func (p *Plane) PopFirstLeg() *Leg {
	if len(p.Legs) == 0 {
		return nil
	}
	l := p.Legs[0]
	p.Legs = p.Legs[1:]
	return l
}

// pkg/plan/cargoplan.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/graph"
)

// CargoEstimate is C7's per-cargo tick state: the controller's inferred
// current location, which aircraft (if any) currently owns it, and
// whether it is sitting at an intermediate stop waiting for a hand-off.
// A cargo that has reached its destination is Delivered — the terminal
// state the source represents with a sentinel agent id.
type CargoEstimate struct {
	ID        cargo.ID
	Dest      graph.AirportID
	CurLoc    graph.AirportID
	Agent     *PlaneID
	IsWaiting bool
	Delivered bool
}

// IsAssigned reports whether this cargo currently has an owning
// aircraft and is not merely waiting at an intermediate stop.
func (c *CargoEstimate) IsAssigned() bool {
	return c.Agent != nil && !c.IsWaiting
}

// AssignAgent gives this cargo to agent.
func (c *CargoEstimate) AssignAgent(agent PlaneID) {
	c.Agent = &agent
	c.IsWaiting = false
}

// Unassign records that the cargo was dropped at newLoc — either an
// intermediate stop (if newLoc != Dest) or its final destination, in
// which case it is marked delivered.
func (c *CargoEstimate) Unassign(newLoc graph.AirportID) {
	c.CurLoc = newLoc
	c.Agent = nil
	c.IsWaiting = false
	if newLoc == c.Dest {
		c.Delivered = true
	}
}

// CargoPlan tracks a CargoEstimate per active cargo, created at reset
// and extended as event_new_cargo items arrive.
type CargoPlan struct {
	cargo map[cargo.ID]*CargoEstimate
}

// NewCargoPlan seeds a plan entry for every cargo in items. A cargo
// whose origin equals its destination is recorded delivered immediately
// (spec.md §8's boundary behavior).
func NewCargoPlan(items []cargo.Cargo) *CargoPlan {
	p := &CargoPlan{cargo: make(map[cargo.ID]*CargoEstimate, len(items))}
	for _, c := range items {
		p.seed(c)
	}
	return p
}

func (p *CargoPlan) seed(c cargo.Cargo) {
	est := &CargoEstimate{ID: c.ID, Dest: c.Destination, CurLoc: c.Origin}
	if c.DeliveredAtReset() {
		est.Delivered = true
	}
	p.cargo[c.ID] = est
}

// Update adds plan entries for newly announced cargo (event_new_cargo).
func (p *CargoPlan) Update(newCargo []cargo.Cargo) {
	for _, c := range newCargo {
		p.seed(c)
	}
}

// Get returns the estimate for cargo id, or nil if unknown.
func (p *CargoPlan) Get(id cargo.ID) *CargoEstimate {
	return p.cargo[id]
}

// IsAssigned reports whether cargo id currently has an owning aircraft.
func (p *CargoPlan) IsAssigned(id cargo.ID) bool {
	if e := p.cargo[id]; e != nil {
		return e.IsAssigned()
	}
	return false
}

// Remove deletes cargo id's plan entry entirely — used when a cargo is
// discovered missing from active_cargo (spec.md §7's "dump missed
// cargo").
func (p *CargoPlan) Remove(id cargo.ID) {
	delete(p.cargo, id)
}

// All iterates every tracked cargo estimate.
func (p *CargoPlan) All() map[cargo.ID]*CargoEstimate {
	return p.cargo
}

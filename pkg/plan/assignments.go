// pkg/plan/assignments.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import "github.com/aircargo/controller/pkg/cargo"

// CargoSeqKey identifies one cargo edge by (cargo id, sequence), the key
// the propagator and assignment engine use to look up which plane
// currently owns a given hop.
type CargoSeqKey struct {
	CargoID  cargo.ID
	Sequence int
}

// Assignments is ce_plane_map: the registry mapping a committed cargo
// edge to the plane it was assigned to.
type Assignments struct {
	m map[CargoSeqKey]PlaneID
}

// NewAssignments returns an empty ce_plane_map.
func NewAssignments() *Assignments {
	return &Assignments{m: make(map[CargoSeqKey]PlaneID)}
}

func (a *Assignments) Set(cid cargo.ID, seq int, pid PlaneID) {
	a.m[CargoSeqKey{cid, seq}] = pid
}

func (a *Assignments) Get(cid cargo.ID, seq int) (PlaneID, bool) {
	pid, ok := a.m[CargoSeqKey{cid, seq}]
	return pid, ok
}

func (a *Assignments) Delete(cid cargo.ID, seq int) {
	delete(a.m, CargoSeqKey{cid, seq})
}

// FindLeg performs plane.find_leg(cargo_id, sequence): a linear scan of
// the plane's legs (leg counts per plane are small, per spec.md's design
// notes) looking for the leg containing the edge (cid,seq).
func FindLeg(p *Plane, store *cargo.EdgeStore, cid cargo.ID, seq int) *Leg {
	for _, leg := range p.Legs {
		for _, id := range leg.Members {
			ce := store.Get(id)
			if ce.CargoID == cid && ce.Sequence == seq {
				return leg
			}
		}
	}
	return nil
}

// FindEdgeInLeg returns the member edge of leg matching (cid,seq), or
// nil.
func FindEdgeInLeg(leg *Leg, store *cargo.EdgeStore, cid cargo.ID, seq int) *cargo.CargoEdge {
	for _, id := range leg.Members {
		ce := store.Get(id)
		if ce.CargoID == cid && ce.Sequence == seq {
			return ce
		}
	}
	return nil
}

// pkg/plan/propagate.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"github.com/aircargo/controller/pkg/cargo"
	xmath "github.com/aircargo/controller/pkg/math"
)

// Diffs is the four window deltas add_cargo_edge returns to the
// propagator.
type Diffs struct {
	EPDiffCE  int
	LPDiffCE  int
	EPDiffLeg int
	LPDiffLeg int
}

// Propagator is C6: given the diffs produced by committing a cargo edge
// onto a leg, it pushes the resulting window tightening across every
// related edge and leg, in the fixed order ep-self, ep-leg, lp-self,
// lp-leg. Stage 1 is a single pass over the cargo's later edges; stages
// 2-4 each run a FIFO queue that dedups by (cargo_id, sequence) so
// propagation always terminates: every message strictly increases ep or
// decreases lp slack, both bounded by BigTime.
type Propagator struct {
	Store   *cargo.EdgeStore
	Planes  map[PlaneID]*Plane
	Assigns *Assignments
}

type epMsg struct {
	cid   cargo.ID
	seq   int
	delta int
}

type lpMsg struct {
	cid   cargo.ID
	seq   int
	delta int
}

// Propagate runs all four stages for the edge cur that was just
// committed onto curLeg, with preLegEP/preLegLP the leg's ep/lp before
// this commit (needed by the sibling stages' already_added/subtracted
// accounting).
func (pr *Propagator) Propagate(cur *cargo.CargoEdge, curLeg *Leg, preLegEP, preLegLP int, d Diffs) {
	if d.EPDiffCE > 0 {
		pr.propagateEPSelf(cur, d.EPDiffCE)
	}
	if d.EPDiffLeg > 0 {
		pr.propagateEPLeg(cur, curLeg, preLegEP, d.EPDiffLeg)
	}
	if d.LPDiffCE > 0 {
		pr.propagateLPSelf(cur, d.LPDiffCE)
	}
	if d.LPDiffLeg > 0 {
		pr.propagateLPLeg(cur, curLeg, preLegLP, d.LPDiffLeg)
	}
}

// Stage 1: forward ep on the same cargo — every later edge of cur's own
// cargo gets ep += delta.
func (pr *Propagator) propagateEPSelf(cur *cargo.CargoEdge, delta int) {
	for _, id := range pr.Store.ForCargo(cur.CargoID) {
		ce := pr.Store.Get(id)
		if ce.Sequence > cur.Sequence {
			ce.EP += delta
		}
	}
}

// Stage 2: forward ep through siblings on the same leg.
func (pr *Propagator) propagateEPLeg(cur *cargo.CargoEdge, curLeg *Leg, preLegEP, legDelta int) {
	queue := []epMsg{}
	for _, id := range curLeg.Members {
		sib := pr.Store.Get(id)
		if sib.CargoID == cur.CargoID && sib.Sequence == cur.Sequence {
			continue
		}
		alreadyAdded := xmath.MaxZero(preLegEP - sib.EP)
		toAdd := xmath.MaxZero(legDelta - alreadyAdded)
		if toAdd > 0 {
			queue = append(queue, epMsg{sib.CargoID, sib.Sequence + 1, toAdd})
		}
	}

	seen := map[CargoSeqKey]bool{}
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		key := CargoSeqKey{msg.cid, msg.seq}
		if seen[key] {
			continue
		}
		seen[key] = true

		seq := msg.seq
		for {
			id := edgeIDForSeq(pr.Store, msg.cid, seq)
			if id < 0 {
				break
			}
			if pid, ok := pr.Assigns.Get(msg.cid, seq); ok {
				plane := pr.Planes[pid]
				leg := FindLeg(plane, pr.Store, msg.cid, seq)
				if leg == nil {
					break
				}
				leg.EP += msg.delta
				for _, mid := range leg.Members {
					m := pr.Store.Get(mid)
					if m.CargoID == msg.cid && m.Sequence == seq {
						continue
					}
					queue = append(queue, epMsg{m.CargoID, m.Sequence + 1, msg.delta})
				}
				break
			}
			pr.Store.Get(id).EP += msg.delta
			seq++
		}
	}
}

// Stage 3: backward lp on the same cargo/leg chain, seeded from cur
// itself.
func (pr *Propagator) propagateLPSelf(cur *cargo.CargoEdge, delta int) {
	queue := []lpMsg{{cur.CargoID, cur.Sequence - 1, delta}}
	seen := map[CargoSeqKey]bool{}
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if msg.seq < 1 {
			continue
		}
		key := CargoSeqKey{msg.cid, msg.seq}
		if seen[key] {
			continue
		}
		seen[key] = true

		id := edgeIDForSeq(pr.Store, msg.cid, msg.seq)
		if id < 0 {
			continue
		}
		ce := pr.Store.Get(id)

		pid, ok := pr.Assigns.Get(msg.cid, msg.seq)
		if !ok {
			ce.LP -= msg.delta
			queue = append(queue, lpMsg{msg.cid, msg.seq - 1, msg.delta})
			continue
		}

		plane := pr.Planes[pid]
		leg := FindLeg(plane, pr.Store, msg.cid, msg.seq)
		if leg == nil {
			continue
		}
		alreadySubtracted := xmath.MaxZero(ce.LP - leg.LP)
		toSubtract := xmath.MaxZero(msg.delta - alreadySubtracted)
		leg.LP -= toSubtract
		if toSubtract > 0 {
			for _, mid := range leg.Members {
				m := pr.Store.Get(mid)
				queue = append(queue, lpMsg{m.CargoID, m.Sequence - 1, toSubtract})
			}
		}
	}
}

// Stage 4: backward lp through siblings on the same leg — mirrors stage
// 2 in reverse.
func (pr *Propagator) propagateLPLeg(cur *cargo.CargoEdge, curLeg *Leg, preLegLP, legDelta int) {
	queue := []lpMsg{}
	for _, id := range curLeg.Members {
		sib := pr.Store.Get(id)
		if sib.CargoID == cur.CargoID && sib.Sequence == cur.Sequence {
			continue
		}
		alreadySubtracted := xmath.MaxZero(sib.LP - preLegLP)
		toSubtract := xmath.MaxZero(legDelta - alreadySubtracted)
		if toSubtract > 0 {
			queue = append(queue, lpMsg{sib.CargoID, sib.Sequence - 1, toSubtract})
		}
	}

	seen := map[CargoSeqKey]bool{}
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if msg.seq < 1 {
			continue
		}
		key := CargoSeqKey{msg.cid, msg.seq}
		if seen[key] {
			continue
		}
		seen[key] = true

		seq := msg.seq
		for seq >= 1 {
			id := edgeIDForSeq(pr.Store, msg.cid, seq)
			if id < 0 {
				break
			}
			if pid, ok := pr.Assigns.Get(msg.cid, seq); ok {
				plane := pr.Planes[pid]
				leg := FindLeg(plane, pr.Store, msg.cid, seq)
				if leg == nil {
					break
				}
				leg.LP -= msg.delta
				for _, mid := range leg.Members {
					m := pr.Store.Get(mid)
					if m.CargoID == msg.cid && m.Sequence == seq {
						continue
					}
					queue = append(queue, lpMsg{m.CargoID, m.Sequence - 1, msg.delta})
				}
				break
			}
			pr.Store.Get(id).LP -= msg.delta
			seq--
		}
	}
}

func edgeIDForSeq(store *cargo.EdgeStore, cid cargo.ID, seq int) cargo.EdgeID {
	for _, id := range store.ForCargo(cid) {
		if store.Get(id).Sequence == seq {
			return id
		}
	}
	return -1
}

// pkg/plan/assignment.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"slices"

	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/graph"
	"github.com/aircargo/controller/pkg/log"
	xmath "github.com/aircargo/controller/pkg/math"
)

// Engine is C5: it walks cargo edges in bucket order, scores and picks
// a plane for each, extends that plane's plan, and invokes the window
// propagator (C6).
type Engine struct {
	Graph      *graph.Graph
	Store      *cargo.EdgeStore
	Planes     map[PlaneID]*Plane
	Assigns    *Assignments
	Propagator *Propagator
	Registry   *Registry
	Log        *log.Logger
}

// NewEngine wires an assignment engine over the given planes and edge
// store.
func NewEngine(g *graph.Graph, store *cargo.EdgeStore, planes map[PlaneID]*Plane, reg *Registry, lg *log.Logger) *Engine {
	assigns := NewAssignments()
	return &Engine{
		Graph:   g,
		Store:   store,
		Planes:  planes,
		Assigns: assigns,
		Propagator: &Propagator{
			Store:   store,
			Planes:  planes,
			Assigns: assigns,
		},
		Registry: reg,
		Log:      lg,
	}
}

// matchScore is the lexicographic tuple matches() scores a candidate
// plane against a cargo edge with, ascending = better.
type matchScore struct {
	cargoOverlap       int
	sameEdgeAndOverlap int
	destinationAtOrig  int
	timediff           int
	nrLegs             int
}

func less(a, b matchScore) bool {
	if a.cargoOverlap != b.cargoOverlap {
		return a.cargoOverlap < b.cargoOverlap
	}
	if a.sameEdgeAndOverlap != b.sameEdgeAndOverlap {
		return a.sameEdgeAndOverlap < b.sameEdgeAndOverlap
	}
	if a.destinationAtOrig != b.destinationAtOrig {
		return a.destinationAtOrig < b.destinationAtOrig
	}
	if a.timediff != b.timediff {
		return a.timediff < b.timediff
	}
	return a.nrLegs < b.nrLegs
}

func (e *Engine) matches(p *Plane, ce *cargo.CargoEdge) matchScore {
	m := matchScore{cargoOverlap: 1, sameEdgeAndOverlap: 1, destinationAtOrig: 1}
	if p.CargoIDs[ce.CargoID] {
		m.cargoOverlap = 0
	}
	if p.Location == ce.Origin && p.NextDestination == ce.Destination &&
		TWOverlap(p.EP(), p.LP(), ce.EP, ce.LP) {
		m.sameEdgeAndOverlap = 0
	}
	if p.NextDestination == ce.Origin {
		m.destinationAtOrig = 0
	}
	m.timediff = p.EP() + int(e.Graph.TravelTime(p.Location, ce.Origin)) - ce.EP
	m.nrLegs = len(p.Legs)
	return m
}

func (e *Engine) canService(p *Plane, ce *cargo.CargoEdge) bool {
	if !slices.Contains(ce.AllowedPlaneTypes, p.Type) {
		return false
	}
	if !e.Graph.Reachable(p.Type, p.Location, ce.Origin) {
		return false
	}
	if !p.HasLegs() {
		return true
	}
	if p.Location == ce.Origin && p.NextDestination == ce.Destination &&
		TWOverlap(p.EP(), p.LP(), ce.EP, ce.LP) &&
		p.CurWeight+ce.Weight <= p.MaxWeight {
		return true
	}
	if p.NextDestination == ce.Origin && p.EP()+p.LastLeg().Duration < ce.LP {
		return true
	}
	if p.EP()+p.LastLeg().Duration+int(e.Graph.TravelTime(p.NextDestination, ce.Origin)) < ce.LP {
		return true
	}
	return false
}

// addCargoEdge commits ce onto p, returning the diffs the propagator
// needs and the leg it landed on plus that leg's pre-commit ep/lp.
func (e *Engine) addCargoEdge(p *Plane, ce *cargo.CargoEdge) (Diffs, *Leg, int, int) {
	appends := p.HasLegs() && p.Location == ce.Origin && p.NextDestination == ce.Destination &&
		TWOverlap(p.EP(), p.LP(), ce.EP, ce.LP) &&
		p.CurWeight+ce.Weight <= p.MaxWeight

	if appends {
		preEP, preLP := p.EP(), p.LP()
		d := Diffs{
			EPDiffCE:  xmath.MaxZero(preEP - ce.EP),
			LPDiffCE:  xmath.MaxZero(ce.LP - preLP),
			EPDiffLeg: xmath.MaxZero(ce.EP - preEP),
			LPDiffLeg: xmath.MaxZero(preLP - ce.LP),
		}
		leg := p.LastLeg()
		leg.Members = append(leg.Members, ce.ID)
		leg.EP = xmath.Max(leg.EP, ce.EP)
		leg.LP = xmath.Min(leg.LP, ce.LP)
		leg.Duration = ce.Duration
		p.CurWeight += ce.Weight
		p.CargoIDs[ce.CargoID] = true
		p.NextDestination = ce.Destination
		return d, leg, preEP, preLP
	}

	advance := 0
	if last := p.LastLeg(); last != nil {
		advance += last.Duration
	}
	if p.NextDestination != ce.Origin {
		advance += int(e.Graph.TravelTime(p.NextDestination, ce.Origin))
	}
	newEP := p.EP() + advance
	newLP := p.LP() + advance

	d := Diffs{
		EPDiffCE: xmath.MaxZero(newEP - ce.EP),
		LPDiffLeg: xmath.MaxZero(newLP - ce.LP),
	}
	leg := &Leg{
		Origin:      ce.Origin,
		Destination: ce.Destination,
		Members:     []cargo.EdgeID{ce.ID},
		EP:          xmath.Max(newEP, ce.EP),
		LP:          ce.LP,
		Duration:    ce.Duration,
	}
	p.Legs = append(p.Legs, leg)
	p.CurWeight = ce.Weight
	p.CargoIDs = map[cargo.ID]bool{ce.CargoID: true}
	p.NextDestination = ce.Destination

	return d, leg, newEP, newLP
}

// bucketKey orders cargo edges by (floor(ep/BucketSize), sequence) for
// assignment, with ties broken by original insertion order (a stable
// sort).
func bucketKey(ce *cargo.CargoEdge) (int, int) {
	return ce.EP / BucketSize, ce.Sequence
}

// Run processes every cargo edge currently in the store in bucket order,
// assigning each to the best available plane. Edges with no willing
// plane are logged and skipped; planning continues.
func (e *Engine) Run() {
	type entry struct {
		id cargo.EdgeID
		ce *cargo.CargoEdge
	}
	var entries []entry
	for id, ce := range e.Store.All() {
		entries = append(entries, entry{id, ce})
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		ba, sa := bucketKey(a.ce)
		bb, sb := bucketKey(b.ce)
		if ba != bb {
			return ba - bb
		}
		return sa - sb
	})

	for _, en := range entries {
		e.processOne(en.ce)
	}
}

func (e *Engine) processOne(ce *cargo.CargoEdge) {
	if _, already := e.Assigns.Get(ce.CargoID, ce.Sequence); already {
		// Already committed by an earlier Run() — an incremental re-run
		// (new cargo arriving mid-episode) must not reassign or re-append
		// edges the first pass already placed on a leg.
		return
	}

	var candidates []*Plane
	for _, p := range e.Planes {
		if slices.Contains(ce.AllowedPlaneTypes, p.Type) {
			candidates = append(candidates, p)
		}
	}
	slices.SortStableFunc(candidates, func(a, b *Plane) int {
		sa, sb := e.matches(a, ce), e.matches(b, ce)
		if less(sa, sb) {
			return -1
		}
		if less(sb, sa) {
			return 1
		}
		return 0
	})

	for _, p := range candidates {
		if !e.canService(p, ce) {
			continue
		}
		wasFree := !p.HasLegs()
		diffs, leg, preEP, preLP := e.addCargoEdge(p, ce)
		e.Assigns.Set(ce.CargoID, ce.Sequence, p.ID)
		e.Propagator.Propagate(ce, leg, preEP, preLP, diffs)
		if wasFree && e.Registry != nil {
			e.Registry.MarkAssigned(p)
		}
		return
	}

	e.Log.Warnf("cargo %d seq %d (%d->%d): no plane could service this edge, leaving unplanned",
		ce.CargoID, ce.Sequence, ce.Origin, ce.Destination)
}

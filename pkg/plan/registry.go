// pkg/plan/registry.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/graph"
)

// GroupKey names a (plane_type, weakly-connected-component) pair — the
// set of airports an aircraft of that type at a given location can ever
// reach.
type GroupKey struct {
	Type      graph.PlaneType
	Component int
}

// Registry is C8: the agent assignment / free-agent-pool bookkeeping
// layered on top of the plane states the assignment engine (C5)
// mutates. Free-pool membership follows the plane's plan state: the
// engine removes a plane from the pool when it receives its first leg,
// and the dispatcher returns it once it has no legs left. The Registry
// keeps no per-plane AgentAssignment record.
type Registry struct {
	groups        map[GroupKey][]graph.AirportID
	airportGroup  map[graph.PlaneType]map[graph.AirportID]GroupKey
	free          map[GroupKey]map[PlaneID]bool
	agentOf       map[PlaneID]GroupKey
}

// AgentAssignment is C8's per-aircraft record shape. Nothing in this
// module creates or fills one: the dispatcher reads assignments from
// Assignments and each Plane's Legs instead.
type AgentAssignment struct {
	// CargoID is the cargo of the plane's next leg, or nil if free.
	CargoID *cargo.ID
	// Path is the group-bounded approach path toward the next leg's
	// origin.
	Path []graph.AirportID
}

// BuildRegistry computes groups for every plane type present in g and
// places every plane in its group's free pool (all planes start free at
// reset).
func BuildRegistry(g *graph.Graph, planes map[PlaneID]*Plane) *Registry {
	r := &Registry{
		groups:       make(map[GroupKey][]graph.AirportID),
		airportGroup: make(map[graph.PlaneType]map[graph.AirportID]GroupKey),
		free:         make(map[GroupKey]map[PlaneID]bool),
		agentOf:      make(map[PlaneID]GroupKey),
	}

	for _, pt := range g.PlaneTypes() {
		components := g.WeaklyConnectedComponents(pt)
		r.airportGroup[pt] = make(map[graph.AirportID]GroupKey)
		for idx, members := range components {
			key := GroupKey{Type: pt, Component: idx}
			r.groups[key] = members
			r.free[key] = make(map[PlaneID]bool)
			for _, a := range members {
				r.airportGroup[pt][a] = key
			}
		}
	}

	for id, p := range planes {
		key, ok := r.airportGroup[p.Type][p.Location]
		if !ok {
			continue
		}
		r.agentOf[id] = key
		r.free[key][id] = true
	}

	return r
}

// GroupOf returns the group a plane of type pt at airport a belongs to.
func (r *Registry) GroupOf(pt graph.PlaneType, a graph.AirportID) (GroupKey, bool) {
	key, ok := r.airportGroup[pt][a]
	return key, ok
}

// GroupAirports returns the airports belonging to the given group.
func (r *Registry) GroupAirports(key GroupKey) []graph.AirportID {
	return r.groups[key]
}

// FreeAgents returns the ids of every currently-free plane in the given
// group.
func (r *Registry) FreeAgents(key GroupKey) []PlaneID {
	var ids []PlaneID
	for id := range r.free[key] {
		ids = append(ids, id)
	}
	return ids
}

// IsFree reports whether plane id is currently in its group's free pool.
func (r *Registry) IsFree(id PlaneID) bool {
	key, ok := r.agentOf[id]
	if !ok {
		return false
	}
	return r.free[key][id]
}

// MarkAssigned removes p from its group's free pool. Called by the
// assignment engine the moment a previously-free plane receives its
// first leg.
func (r *Registry) MarkAssigned(p *Plane) {
	key, ok := r.agentOf[p.ID]
	if !ok {
		return
	}
	delete(r.free[key], p.ID)
}

// Release returns p to its group's free pool. Called by the dispatcher
// once a plane has no legs left: after it unloads its last leg, or when
// it is ready for takeoff with no leg queued.
func (r *Registry) Release(p *Plane) {
	key, ok := r.agentOf[p.ID]
	if !ok {
		return
	}
	r.free[key][p.ID] = true
}

// pkg/controller/types.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package controller owns every cache and plan-state structure the
// strategic planner and tactical dispatcher need and exposes the two
// entry points the simulation harness calls: Reset and Policies.
package controller

import (
	"github.com/iancoleman/orderedmap"

	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/dispatch"
	"github.com/aircargo/controller/pkg/graph"
)

// RouteEdge is one directed edge of one plane type's route graph, as
// reported in an Observation's route_map.
type RouteEdge struct {
	From, To       graph.AirportID
	Cost, Time     float64
	Mal            int
	RouteAvailable bool
}

// ScenarioInfo carries the episode-wide constants the source captures
// once at reset (spec.md §9's "processing_time, latest_deadline, and
// nr_agents are per-episode constants captured at reset").
type ScenarioInfo struct {
	ProcessingTime int
	LatestDeadline int
}

// AgentObservation is one aircraft's per-tick live state.
type AgentObservation struct {
	State                 dispatch.AgentState
	CurrentAirport        graph.AirportID
	Destination           graph.AirportID
	PlaneType             graph.PlaneType
	MaxWeight             int
	CurrentWeight         int
	CargoAtCurrentAirport []cargo.ID
	CargoOnboard          []cargo.ID
}

// GlobalState is the shared portion of an Observation, common to every
// agent.
type GlobalState struct {
	RouteMap      map[graph.PlaneType][]RouteEdge
	ActiveCargo   []cargo.Cargo
	EventNewCargo []cargo.Cargo
	ScenarioInfo  ScenarioInfo
}

// AgentMap is an insertion-ordered agent_id -> AgentObservation map,
// preserving the wire order of the source mapping so that per-tick
// iteration is deterministic (spec.md §5: "aircraft are iterated in the
// observation's key order"). Backed by the same ordered-map library the
// teacher uses for its own JSON-shaped ordered data.
type AgentMap struct {
	om     orderedmap.OrderedMap
	values map[string]AgentObservation
}

// NewAgentMap returns an empty, order-tracking agent map.
func NewAgentMap() *AgentMap {
	return &AgentMap{om: *orderedmap.New(), values: make(map[string]AgentObservation)}
}

// Set records or overwrites the observation for agent id, appending it
// to the iteration order the first time it is seen.
func (m *AgentMap) Set(id string, obs AgentObservation) {
	if _, ok := m.values[id]; !ok {
		m.om.Set(id, struct{}{})
	}
	m.values[id] = obs
}

// Get returns the observation recorded for agent id.
func (m *AgentMap) Get(id string) (AgentObservation, bool) {
	v, ok := m.values[id]
	return v, ok
}

// Keys returns every agent id in insertion order.
func (m *AgentMap) Keys() []string {
	return m.om.Keys()
}

// Len returns the number of agents tracked.
func (m *AgentMap) Len() int {
	return len(m.values)
}

// Observation is the full per-tick input: the shared GlobalState plus
// each agent's own live state.
type Observation struct {
	Global GlobalState
	Agents *AgentMap
}

// Info is the per-tick diagnostic channel: free-form warning strings per
// agent, of which only "ROUTE FROM:"-prefixed ones are meaningful
// (spec.md §6).
type Info struct {
	Warnings []string
}

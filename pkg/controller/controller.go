// pkg/controller/controller.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package controller

import (
	"github.com/brunoga/deep"

	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/dispatch"
	"github.com/aircargo/controller/pkg/graph"
	"github.com/aircargo/controller/pkg/log"
	"github.com/aircargo/controller/pkg/plan"
	"github.com/aircargo/controller/pkg/util"
)

// Controller is the single struct owning every cache and plan-state
// structure the strategic planner (C1-C8,C11) and tactical dispatcher
// (C9,C10) need — spec.md §9's "global state ... no module-level
// mutables". cmd/cargoctl is the only caller; everything else is
// reached through Reset/Policies.
type Controller struct {
	Graph      *graph.Graph
	RouteCache *graph.RouteCache
	Store      *cargo.EdgeStore
	Planes     map[plan.PlaneID]*plan.Plane
	Registry   *plan.Registry
	Engine     *plan.Engine
	CargoPlan  *plan.CargoPlan
	Dispatcher *dispatch.Dispatcher
	Offline    *dispatch.OfflineEdges

	// Per-episode constants captured at reset (spec.md §9).
	ProcessingTime int
	LatestDeadline int
	NrAgents       int

	Log *log.Logger
}

// New returns a controller that logs through lg (may be nil).
func New(lg *log.Logger) *Controller {
	return &Controller{Log: lg}
}

// Reset implements spec.md §6's reset(obs, ..., seed) lifecycle hook: it
// (re)builds every cache and plan structure from scratch for a new
// episode. seed is accepted for interface parity with the source but
// consumed only by the synthetic scenario generator in cmd/cargoctl —
// the planning/dispatch core itself is deterministic and seed-free
// (spec.md's Non-goals exclude learned/stochastic policies).
func (c *Controller) Reset(obs Observation, seed int64) error {
	el := &util.ErrorLogger{}
	Validate(obs, el)
	if el.HaveErrors() {
		el.PrintErrors(c.Log)
		return ErrValidation
	}

	c.ProcessingTime = obs.Global.ScenarioInfo.ProcessingTime
	c.LatestDeadline = obs.Global.ScenarioInfo.LatestDeadline
	c.NrAgents = obs.Agents.Len()

	c.Graph = graph.NewGraph()
	for pt, edges := range obs.Global.RouteMap {
		for _, e := range edges {
			c.Graph.AddEdge(pt, e.From, e.To, graph.EdgeAttrs{
				Cost: e.Cost, Time: e.Time, Mal: e.Mal, RouteAvailable: e.RouteAvailable,
			})
		}
	}
	c.RouteCache = graph.NewRouteCache(c.Graph)

	c.Planes = make(map[plan.PlaneID]*plan.Plane, obs.Agents.Len())
	for _, id := range obs.Agents.Keys() {
		ao, _ := obs.Agents.Get(id)
		c.Planes[plan.PlaneID(id)] = plan.NewPlane(plan.PlaneID(id), ao.PlaneType, ao.CurrentAirport, ao.MaxWeight)
	}
	c.Registry = plan.BuildRegistry(c.Graph, c.Planes)

	c.Store = cargo.NewEdgeStore()
	for _, item := range obs.Global.ActiveCargo {
		cargo.BuildEdges(c.Graph, c.RouteCache, item, c.ProcessingTime, c.Store, c.Log)
	}
	c.Engine = plan.NewEngine(c.Graph, c.Store, c.Planes, c.Registry, c.Log)
	c.Engine.Run()

	c.CargoPlan = plan.NewCargoPlan(obs.Global.ActiveCargo)
	c.Offline = dispatch.NewOfflineEdges()
	c.Dispatcher = &dispatch.Dispatcher{
		Graph:     c.Graph,
		Store:     c.Store,
		Planes:    c.Planes,
		Assigns:   c.Engine.Assigns,
		Registry:  c.Registry,
		CargoPlan: c.CargoPlan,
		Offline:   c.Offline,
		Priority:  plan.Priority{NumAgents: c.NrAgents, LatestDeadline: c.LatestDeadline},
		Log:       c.Log,
	}

	return nil
}

// Policies implements spec.md §6's policies(obs, dones, infos) lifecycle
// hook: ingest any newly announced cargo and outage warnings, then
// compute one action per live aircraft, iterating agents in the
// observation's key order (spec.md §5's determinism requirement).
func (c *Controller) Policies(now int, obs Observation, dones map[string]bool, infos map[string]Info) (map[string]dispatch.Action, error) {
	el := &util.ErrorLogger{}
	Validate(obs, el)
	if el.HaveErrors() {
		el.PrintErrors(c.Log)
		return nil, ErrValidation
	}

	if len(obs.Global.EventNewCargo) > 0 {
		for _, item := range obs.Global.EventNewCargo {
			cargo.BuildEdges(c.Graph, c.RouteCache, item, c.ProcessingTime, c.Store, c.Log)
		}
		c.CargoPlan.Update(obs.Global.EventNewCargo)
		c.Engine.Run()
	}

	active := make(map[cargo.ID]bool, len(obs.Global.ActiveCargo))
	for _, item := range obs.Global.ActiveCargo {
		active[item.ID] = true
	}

	actions := make(map[string]dispatch.Action, obs.Agents.Len())
	for _, id := range obs.Agents.Keys() {
		if dones[id] {
			continue
		}
		ao, ok := obs.Agents.Get(id)
		if !ok {
			continue
		}

		c.Offline.Purge(now)
		if info, ok := infos[id]; ok {
			c.Offline.Ingest(now, info.Warnings)
		}

		actions[id] = c.Dispatcher.Tick(now, plan.PlaneID(id), dispatch.AgentInput{
			State:                 ao.State,
			CurrentAirport:        ao.CurrentAirport,
			CargoAtCurrentAirport: toCargoSet(ao.CargoAtCurrentAirport),
			CargoOnboard:          toCargoSet(ao.CargoOnboard),
			ActiveCargo:           active,
		})
	}

	return actions, nil
}

func toCargoSet(ids []cargo.ID) map[cargo.ID]bool {
	m := make(map[cargo.ID]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// Snapshot is a deep copy of the controller's mutable plan state, used
// by cmd/cargoctl's -dump flag.
type Snapshot struct {
	Planes    map[plan.PlaneID]*plan.Plane
	CargoPlan map[cargo.ID]*plan.CargoEstimate
}

// Snapshot deep-copies the controller's plan state via brunoga/deep so
// the copy shares no pointers with the live controller.
func (c *Controller) Snapshot() *Snapshot {
	return deep.MustCopy(&Snapshot{Planes: c.Planes, CargoPlan: c.CargoPlan.All()})
}

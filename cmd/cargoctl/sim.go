// cmd/cargoctl/sim.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/controller"
	"github.com/aircargo/controller/pkg/dispatch"
	"github.com/aircargo/controller/pkg/graph"
	"github.com/aircargo/controller/pkg/log"
	"github.com/aircargo/controller/pkg/plan"
)

// planeRuntime is the harness's own bookkeeping for one aircraft's
// physical state across ticks — the part a real simulation environment
// would own. cargoctl is intentionally a thin stand-in for that
// environment (spec.md scopes the actual simulator out of this repo), so
// this models just enough physics to drive the controller: an aircraft
// is Waiting at an airport, ReadyForTakeoff once loaded, or Moving for
// its hop's travel time.
type planeRuntime struct {
	state       dispatch.AgentState
	location    graph.AirportID
	destination graph.AirportID
	remaining   float64
	onboard     map[cargo.ID]bool
}

// runner drives one episode: a Controller plus the harness-owned
// physical state of every aircraft and every cargo item.
type runner struct {
	ctrl      *controller.Controller
	planes    map[string]*planeRuntime
	atAirport map[cargo.ID]graph.AirportID
	delivered map[cargo.ID]bool
	lg        *log.Logger
	maxTicks  int
	verbose   bool
}

func newRunner(sf scenarioFile, lg *log.Logger, maxTicks int, verbose bool) (*runner, error) {
	ctrl := controller.New(lg)
	obs := sf.toObservation()
	if err := ctrl.Reset(obs, 0); err != nil {
		return nil, err
	}

	r := &runner{
		ctrl:      ctrl,
		planes:    make(map[string]*planeRuntime, len(sf.Planes)),
		atAirport: make(map[cargo.ID]graph.AirportID, len(sf.Cargo)),
		delivered: make(map[cargo.ID]bool, len(sf.Cargo)),
		lg:        lg,
		maxTicks:  maxTicks,
		verbose:   verbose,
	}
	for _, p := range sf.Planes {
		r.planes[p.ID] = &planeRuntime{
			state:       dispatch.Waiting,
			location:    graph.AirportID(p.Location),
			destination: graph.NoAirport,
			onboard:     make(map[cargo.ID]bool),
		}
	}
	for _, c := range sf.Cargo {
		if c.Origin == c.Destination {
			r.delivered[cargo.ID(c.ID)] = true
			continue
		}
		r.atAirport[cargo.ID(c.ID)] = graph.AirportID(c.Origin)
	}
	return r, nil
}

func (r *runner) allDelivered() bool {
	for _, p := range r.planes {
		if len(p.onboard) > 0 {
			return false
		}
	}
	for cid := range r.atAirport {
		if !r.delivered[cid] {
			return false
		}
	}
	return true
}

// Run drives the episode tick by tick until every cargo is delivered or
// maxTicks is reached, returning the number of ticks actually run.
func (r *runner) Run() int {
	tick := 0
	for ; tick < r.maxTicks; tick++ {
		if r.allDelivered() {
			break
		}
		r.step(tick)
	}
	return tick
}

func (r *runner) step(tick int) {
	agents := controller.NewAgentMap()
	for id, pr := range r.planes {
		agents.Set(id, controller.AgentObservation{
			State:                 pr.state,
			CurrentAirport:        pr.location,
			CargoAtCurrentAirport: r.cargoAt(pr.location),
			CargoOnboard:          setToSlice(pr.onboard),
		})
	}

	obs := controller.Observation{
		Global: controller.GlobalState{ScenarioInfo: controller.ScenarioInfo{
			ProcessingTime: r.ctrl.ProcessingTime, LatestDeadline: r.ctrl.LatestDeadline,
		}},
		Agents: agents,
	}
	for cid := range r.ctrl.CargoPlan.All() {
		if !r.ctrl.CargoPlan.Get(cid).Delivered {
			obs.Global.ActiveCargo = append(obs.Global.ActiveCargo, cargo.Cargo{ID: cid})
		}
	}

	actions, err := r.ctrl.Policies(tick, obs, nil, nil)
	if err != nil {
		r.lg.Errorf("tick %d: Policies: %v", tick, err)
		return
	}

	for id, act := range actions {
		r.applyAction(tick, id, act)
	}

	for cid := range r.ctrl.CargoPlan.All() {
		if r.ctrl.CargoPlan.Get(cid).Delivered {
			r.delivered[cid] = true
		}
	}
}

func (r *runner) applyAction(tick int, id string, act dispatch.Action) {
	pr := r.planes[id]
	if pr == nil {
		return
	}

	for _, cid := range act.CargoToUnload {
		delete(pr.onboard, cid)
		r.atAirport[cid] = pr.location
	}
	for _, cid := range act.CargoToLoad {
		delete(r.atAirport, cid)
		pr.onboard[cid] = true
	}

	plane := r.ctrl.Planes[plan.PlaneID(id)]

	switch pr.state {
	case dispatch.Waiting:
		if len(act.CargoToLoad) == 0 && len(act.CargoToUnload) == 0 && plane != nil && plane.HasLegs() {
			pr.state = dispatch.ReadyForTakeoff
		}
	case dispatch.ReadyForTakeoff:
		if act.Destination != graph.NoAirport {
			hopTime := r.ctrl.Graph.TravelTime(pr.location, act.Destination)
			if hopTime <= 0 {
				hopTime = 1
			}
			pr.destination = act.Destination
			pr.remaining = hopTime
			pr.state = dispatch.Moving
			if r.verbose {
				fmt.Printf("tick %d: %s departs %d -> %d (eta %.0f)\n", tick, id, pr.location, act.Destination, hopTime)
			}
		}
	}

	if pr.state == dispatch.Moving {
		pr.remaining--
		if pr.remaining <= 0 {
			pr.location = pr.destination
			pr.destination = graph.NoAirport
			pr.state = dispatch.Waiting
			if r.verbose {
				fmt.Printf("tick %d: %s arrives at %d\n", tick, id, pr.location)
			}
		}
	}
}

func (r *runner) cargoAt(a graph.AirportID) []cargo.ID {
	var ids []cargo.ID
	for cid, loc := range r.atAirport {
		if loc == a && !r.delivered[cid] {
			ids = append(ids, cid)
		}
	}
	return ids
}

func setToSlice(m map[cargo.ID]bool) []cargo.ID {
	ids := make([]cargo.ID, 0, len(m))
	for cid := range m {
		ids = append(ids, cid)
	}
	return ids
}

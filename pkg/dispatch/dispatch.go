// pkg/dispatch/dispatch.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package dispatch

import (
	xmath "github.com/aircargo/controller/pkg/math"

	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/graph"
	"github.com/aircargo/controller/pkg/log"
	"github.com/aircargo/controller/pkg/plan"
)

// AgentState is one of the four states the environment reports for an
// aircraft each tick. Only Waiting and ReadyForTakeoff produce
// meaningful actions; Moving and Processing always yield a no-op.
type AgentState int

const (
	Waiting AgentState = iota
	ReadyForTakeoff
	Moving
	Processing
)

// AgentInput is this tick's live observation for one aircraft, the
// pieces C9 needs beyond the plan state already sitting in pkg/plan.
type AgentInput struct {
	State                 AgentState
	CurrentAirport        graph.AirportID
	CargoAtCurrentAirport map[cargo.ID]bool
	CargoOnboard          map[cargo.ID]bool
	// ActiveCargo is the environment's current active_cargo set, used to
	// detect cargo this plane is carrying that the environment has
	// dropped (spec.md's S5). Nil means "trust the plan" — skip the
	// check (used by tests that don't model dropped cargo).
	ActiveCargo map[cargo.ID]bool
}

// Action is C9's per-tick output for one aircraft.
type Action struct {
	Priority      *int
	CargoToLoad   []cargo.ID
	CargoToUnload []cargo.ID
	Destination   graph.AirportID
}

func noop() Action {
	return Action{Destination: graph.NoAirport}
}

// Dispatcher is C9: the integrated planner-driven tactical FSM that
// consults a plane's leg queue directly (mysolution.py's variant, per
// spec.md §4.5's "an alternative integrated planner-driven dispatch").
// It is driven once per tick per aircraft by Tick.
type Dispatcher struct {
	Graph     *graph.Graph
	Store     *cargo.EdgeStore
	Planes    map[plan.PlaneID]*plan.Plane
	Assigns   *plan.Assignments
	Registry  *plan.Registry
	CargoPlan *plan.CargoPlan
	Offline   *OfflineEdges
	Priority  plan.Priority
	Log       *log.Logger
}

// Tick computes the action for aircraft id given this tick's live
// observation. now is the current simulation tick, used for priority
// and lp-driven forced departure.
func (d *Dispatcher) Tick(now int, id plan.PlaneID, in AgentInput) Action {
	p, ok := d.Planes[id]
	if !ok {
		return noop()
	}

	switch in.State {
	case Waiting:
		return d.waiting(now, p, in)
	case ReadyForTakeoff:
		return d.readyForTakeoff(now, p, in)
	default:
		return noop()
	}
}

// waiting handles load/unload decisions: drop cargo the environment no
// longer considers active, unload cargo that has reached the current
// leg's destination, and load cargo waiting at the current leg's
// origin.
func (d *Dispatcher) waiting(now int, p *plan.Plane, in AgentInput) Action {
	var toLoad, toUnload []cargo.ID

	for cid := range in.CargoOnboard {
		if in.ActiveCargo != nil && !in.ActiveCargo[cid] {
			toUnload = append(toUnload, cid)
			d.dropCargo(cid)
		}
	}

	leg := p.FirstLeg()
	if leg == nil {
		return Action{Destination: graph.NoAirport, CargoToUnload: toUnload}
	}

	switch in.CurrentAirport {
	case leg.Destination:
		for _, mid := range leg.Members {
			ce := d.Store.Get(mid)
			if !in.CargoOnboard[ce.CargoID] {
				continue
			}
			toUnload = append(toUnload, ce.CargoID)
			if est := d.CargoPlan.Get(ce.CargoID); est != nil {
				est.Unassign(in.CurrentAirport)
			}
			d.Assigns.Delete(ce.CargoID, ce.Sequence)
		}
		p.PopFirstLeg()
		p.ReroutePath = nil
		if !p.HasLegs() {
			d.Registry.Release(p)
		}

	case leg.Origin:
		onboardWeight := 0
		for _, mid := range leg.Members {
			ce := d.Store.Get(mid)
			if in.CargoOnboard[ce.CargoID] {
				onboardWeight += ce.Weight
			}
		}
		for _, mid := range leg.Members {
			ce := d.Store.Get(mid)
			if in.CargoOnboard[ce.CargoID] || !in.CargoAtCurrentAirport[ce.CargoID] {
				continue
			}
			if onboardWeight+ce.Weight > p.MaxWeight {
				continue
			}
			toLoad = append(toLoad, ce.CargoID)
			onboardWeight += ce.Weight
			if est := d.CargoPlan.Get(ce.CargoID); est != nil {
				est.AssignAgent(p.ID)
			}
		}

	default:
		// Sitting at an intermediate stop of an in-progress reroute
		// detour: nothing to load or unload until the next
		// READY_FOR_TAKEOFF tick continues toward leg.Destination.
	}

	return Action{
		Destination:   graph.NoAirport,
		CargoToLoad:   toLoad,
		CargoToUnload: toUnload,
		Priority:      d.legPriority(now, p, leg),
	}
}

// readyForTakeoff handles the depart-or-reroute decision.
func (d *Dispatcher) readyForTakeoff(now int, p *plan.Plane, in AgentInput) Action {
	leg := p.FirstLeg()
	if leg == nil {
		d.Registry.Release(p)
		return noop()
	}
	if in.CurrentAirport == leg.Destination {
		// Arrived; the next WAITING tick pops the leg and unloads.
		return noop()
	}

	if in.CurrentAirport == leg.Origin && len(p.ReroutePath) == 0 {
		if !d.legDepartureReady(now, leg, in) {
			return noop()
		}
	}

	hop, ok := d.nextHop(p, leg)
	if !ok {
		return noop()
	}
	return Action{Destination: hop, Priority: d.legPriority(now, p, leg)}
}

// legDepartureReady implements spec.md §4.5's integrated-variant depart
// condition: every member cargo is onboard, or the current time has
// reached the leg's own (tightest) latest-pickup deadline.
func (d *Dispatcher) legDepartureReady(now int, leg *plan.Leg, in AgentInput) bool {
	allOnboard := true
	for _, mid := range leg.Members {
		ce := d.Store.Get(mid)
		if !in.CargoOnboard[ce.CargoID] {
			allOnboard = false
			break
		}
	}
	return allOnboard || now >= leg.LP
}

// nextHop returns the airport the plane should set as its destination
// this tick: the next waypoint of an in-progress reroute, the leg's
// direct destination if that hop is still flyable, or the first
// waypoint of a freshly computed pruned path around an outage.
func (d *Dispatcher) nextHop(p *plan.Plane, leg *plan.Leg) (graph.AirportID, bool) {
	if len(p.ReroutePath) > 0 {
		hop := p.ReroutePath[0]
		p.ReroutePath = p.ReroutePath[1:]
		return hop, true
	}

	if d.edgeFlyable(p.Type, p.Location, leg.Destination) {
		return leg.Destination, true
	}

	path, err := d.Offline.PrunedPath(d.Graph, p.Type, p.Location, leg.Destination)
	if err != nil || len(path) < 2 {
		d.Log.Warnf("no pruned path %d->%d for plane type %d; holding", p.Location, leg.Destination, p.Type)
		return graph.NoAirport, false
	}
	if len(path) > 2 {
		p.ReroutePath = append([]graph.AirportID{}, path[2:]...)
	}
	return path[1], true
}

func (d *Dispatcher) edgeFlyable(pt graph.PlaneType, from, to graph.AirportID) bool {
	attrs, ok := d.Graph.EdgeAttrsFor(pt, from, to)
	if !ok || !attrs.RouteAvailable {
		return false
	}
	return !d.Offline.IsDown(from, to)
}

// legPriority is C11's minimum-of-baseline-and-serviced-deadlines rule:
// the plane's own deadline-derived priority, floored further by the
// priority implied by the tightest deadline among the cargo edges the
// leg is currently servicing.
func (d *Dispatcher) legPriority(now int, p *plan.Plane, leg *plan.Leg) *int {
	planeLP := p.LP()
	pri := d.Priority.For(now, &planeLP)
	for _, mid := range leg.Members {
		ce := d.Store.Get(mid)
		pri = xmath.Min(pri, d.Priority.For(now, &ce.LP))
	}
	return &pri
}

// dropCargo strips every trace of cargo c from every plane's plan and
// from the edge store, per spec.md §7's handling of cargo the
// environment no longer lists as active.
func (d *Dispatcher) dropCargo(c cargo.ID) {
	for _, id := range d.Store.ForCargo(c) {
		d.Assigns.Delete(c, d.Store.Get(id).Sequence)
	}
	for _, p := range d.Planes {
		kept := p.Legs[:0]
		for _, leg := range p.Legs {
			leg.Members = removeCargoMembers(leg.Members, d.Store, c)
			if len(leg.Members) > 0 {
				kept = append(kept, leg)
			}
		}
		p.Legs = kept
		delete(p.CargoIDs, c)
	}
	d.Store.RemoveCargo(c)
	d.CargoPlan.Remove(c)
}

func removeCargoMembers(members []cargo.EdgeID, store *cargo.EdgeStore, c cargo.ID) []cargo.EdgeID {
	kept := members[:0]
	for _, id := range members {
		if store.Get(id).CargoID != c {
			kept = append(kept, id)
		}
	}
	return kept
}

// pkg/dispatch/dispatch_test.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package dispatch

import (
	"testing"

	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/graph"
	"github.com/aircargo/controller/pkg/plan"
)

func newTestDispatcher(g *graph.Graph, store *cargo.EdgeStore, planes map[plan.PlaneID]*plan.Plane, eng *plan.Engine, cp *plan.CargoPlan) *Dispatcher {
	return &Dispatcher{
		Graph:     g,
		Store:     store,
		Planes:    planes,
		Assigns:   eng.Assigns,
		Registry:  eng.Registry,
		CargoPlan: cp,
		Offline:   NewOfflineEdges(),
		Priority:  plan.Priority{NumAgents: 1, LatestDeadline: 1000},
	}
}

// TestS1DispatchCycle grounds spec.md's scenario S1's tick-by-tick
// dispatch expectations: load at the pickup tick, depart on the
// following READY_FOR_TAKEOFF tick, unload on arrival.
func TestS1DispatchCycle(t *testing.T) {
	g := graph.NewGraph()
	g.AddEdge(0, 1, 2, graph.EdgeAttrs{Cost: 1, Time: 10, RouteAvailable: true})
	store := cargo.NewEdgeStore()

	c := cargo.Cargo{ID: 7, Origin: 1, Destination: 2, EarliestPickupTime: 0, SoftDeadline: 100, HardDeadline: 200, Weight: 20}
	rc := graph.NewRouteCache(g)
	cargo.BuildEdges(g, rc, c, 5, store, nil)

	p0 := plan.NewPlane("p0", 0, 1, 100)
	planes := map[plan.PlaneID]*plan.Plane{"p0": p0}
	reg := plan.BuildRegistry(g, planes)
	eng := plan.NewEngine(g, store, planes, reg, nil)
	eng.Run()

	cp := plan.NewCargoPlan([]cargo.Cargo{c})
	d := newTestDispatcher(g, store, planes, eng, cp)

	load := d.Tick(0, "p0", AgentInput{
		State:                 Waiting,
		CurrentAirport:        1,
		CargoAtCurrentAirport: map[cargo.ID]bool{7: true},
	})
	if len(load.CargoToLoad) != 1 || load.CargoToLoad[0] != 7 {
		t.Fatalf("expected load of cargo 7, got %+v", load)
	}

	depart := d.Tick(1, "p0", AgentInput{
		State:          ReadyForTakeoff,
		CurrentAirport: 1,
		CargoOnboard:   map[cargo.ID]bool{7: true},
	})
	if depart.Destination != 2 {
		t.Fatalf("expected destination 2, got %+v", depart)
	}

	arrive := d.Tick(20, "p0", AgentInput{
		State:          Waiting,
		CurrentAirport: 2,
		CargoOnboard:   map[cargo.ID]bool{7: true},
	})
	if len(arrive.CargoToUnload) != 1 || arrive.CargoToUnload[0] != 7 {
		t.Fatalf("expected unload of cargo 7, got %+v", arrive)
	}
	if est := cp.Get(7); est == nil || !est.Delivered {
		t.Fatalf("expected cargo 7 marked delivered, got %+v", est)
	}
	if !reg.IsFree("p0") {
		t.Fatal("expected p0 released to the free pool after its only leg completed")
	}
}

// TestS4OutageReroute grounds scenario S4: a direct edge goes down right
// as the plane is ready to take off, and the dispatcher substitutes a
// pruned path.
func TestS4OutageReroute(t *testing.T) {
	g := graph.NewGraph()
	g.AddEdge(0, 1, 2, graph.EdgeAttrs{Cost: 1, Time: 5, RouteAvailable: true})
	g.AddEdge(0, 2, 3, graph.EdgeAttrs{Cost: 1, Time: 5, RouteAvailable: true})
	g.AddEdge(0, 2, 4, graph.EdgeAttrs{Cost: 1, Time: 3, RouteAvailable: true})
	g.AddEdge(0, 4, 3, graph.EdgeAttrs{Cost: 1, Time: 3, RouteAvailable: true})

	store := cargo.NewEdgeStore()
	store.Add(cargo.CargoEdge{CargoID: 1, Origin: 2, Destination: 3, Sequence: 1, Duration: 5, EP: 0, LP: 100, Weight: 1, AllowedPlaneTypes: []graph.PlaneType{0}})

	p0 := plan.NewPlane("p0", 0, 2, 100)
	p0.Legs = []*plan.Leg{{Origin: 2, Destination: 3, Members: []cargo.EdgeID{0}, EP: 0, LP: 100, Duration: 5}}
	planes := map[plan.PlaneID]*plan.Plane{"p0": p0}
	reg := plan.BuildRegistry(g, planes)
	eng := plan.NewEngine(g, store, planes, reg, nil)
	cp := plan.NewCargoPlan(nil)
	d := newTestDispatcher(g, store, planes, eng, cp)

	// Tick 5: the 2->3 edge is reported down for 10 steps.
	d.Offline.Purge(5)
	d.Offline.Ingest(5, []string{"ROUTE FROM: 2 TO: 3 DOWN FOR 10 STEPS"})
	if !d.Offline.IsDown(2, 3) {
		t.Fatal("expected edge (2,3) to be recorded as down")
	}

	act := d.Tick(5, "p0", AgentInput{
		State:          ReadyForTakeoff,
		CurrentAirport: 2,
		CargoOnboard:   map[cargo.ID]bool{1: true},
	})
	if act.Destination != 4 {
		t.Fatalf("expected reroute via 4, got destination %d", act.Destination)
	}
	if len(p0.ReroutePath) != 1 || p0.ReroutePath[0] != 3 {
		t.Fatalf("expected remaining reroute waypoint [3], got %v", p0.ReroutePath)
	}

	// Tick 16: the outage should have expired.
	d.Offline.Purge(16)
	if d.Offline.IsDown(2, 3) {
		t.Fatal("expected outage to have expired by tick 16")
	}
}

// TestS5MissedCargo grounds scenario S5: cargo onboard that the
// environment no longer lists as active must be unloaded and stripped
// from every plane's plan.
func TestS5MissedCargo(t *testing.T) {
	g := graph.NewGraph()
	g.AddEdge(0, 1, 2, graph.EdgeAttrs{Cost: 1, Time: 10, RouteAvailable: true})
	store := cargo.NewEdgeStore()
	store.Add(cargo.CargoEdge{CargoID: 9, Origin: 1, Destination: 2, Sequence: 1, Duration: 10, EP: 0, LP: 100, Weight: 5, AllowedPlaneTypes: []graph.PlaneType{0}})

	p0 := plan.NewPlane("p0", 0, 1, 100)
	p0.Legs = []*plan.Leg{{Origin: 1, Destination: 2, Members: []cargo.EdgeID{0}, EP: 0, LP: 100, Duration: 10}}
	planes := map[plan.PlaneID]*plan.Plane{"p0": p0}
	reg := plan.BuildRegistry(g, planes)
	eng := plan.NewEngine(g, store, planes, reg, nil)
	eng.Assigns.Set(9, 1, "p0")
	cp := plan.NewCargoPlan([]cargo.Cargo{{ID: 9, Origin: 1, Destination: 2}})
	d := newTestDispatcher(g, store, planes, eng, cp)

	act := d.Tick(3, "p0", AgentInput{
		State:          Waiting,
		CurrentAirport: 1,
		CargoOnboard:   map[cargo.ID]bool{9: true},
		ActiveCargo:    map[cargo.ID]bool{}, // 9 is no longer active
	})
	if len(act.CargoToUnload) != 1 || act.CargoToUnload[0] != 9 {
		t.Fatalf("expected unload of missed cargo 9, got %+v", act)
	}
	if len(p0.Legs) != 0 {
		t.Fatalf("expected cargo 9's leg stripped from p0, got %+v", p0.Legs)
	}
	if _, ok := eng.Assigns.Get(9, 1); ok {
		t.Fatal("expected assignment for cargo 9 removed")
	}
	if cp.Get(9) != nil {
		t.Fatal("expected cargo plan entry for 9 removed")
	}
}

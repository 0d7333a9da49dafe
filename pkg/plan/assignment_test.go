// pkg/plan/assignment_test.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"testing"

	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/graph"
)

func singleHopGraph() *graph.Graph {
	g := graph.NewGraph()
	g.AddEdge(0, 1, 2, graph.EdgeAttrs{Cost: 1, Time: 10, RouteAvailable: true})
	return g
}

// TestS1SingleHop grounds spec.md's scenario S1: one plane, one cargo,
// one hop.
func TestS1SingleHop(t *testing.T) {
	g := singleHopGraph()
	rc := graph.NewRouteCache(g)
	store := cargo.NewEdgeStore()

	c := cargo.Cargo{ID: 7, Origin: 1, Destination: 2, EarliestPickupTime: 0, SoftDeadline: 100, HardDeadline: 200, Weight: 20}
	cargo.BuildEdges(g, rc, c, 5, store, nil)

	if store.Len() != 1 {
		t.Fatalf("got %d edges, want 1", store.Len())
	}
	var ce cargo.CargoEdge
	for _, e := range store.All() {
		ce = *e
	}
	if ce.Duration != 15 || ce.Sequence != 1 || ce.EP != 0 || ce.LP != 80 || ce.Weight != 20 {
		t.Fatalf("got %+v", ce)
	}
	if len(ce.AllowedPlaneTypes) != 1 || ce.AllowedPlaneTypes[0] != 0 {
		t.Fatalf("got allowed types %v", ce.AllowedPlaneTypes)
	}

	p0 := NewPlane("p0", 0, 1, 100)
	planes := map[PlaneID]*Plane{"p0": p0}
	reg := BuildRegistry(g, planes)
	eng := NewEngine(g, store, planes, reg, nil)
	eng.Run()

	pid, ok := eng.Assigns.Get(7, 1)
	if !ok || pid != "p0" {
		t.Fatalf("expected cargo 7 seq 1 assigned to p0, got %v ok=%v", pid, ok)
	}
	if reg.IsFree("p0") {
		t.Fatal("p0 should no longer be free once assigned")
	}
}

// TestS2WindowTightening grounds scenario S2: two cargos sharing an
// origin/destination whose windows do not actually overlap once joined,
// so the second cargo must land on its own leg.
func TestS2WindowTightening(t *testing.T) {
	g := singleHopGraph()
	store := cargo.NewEdgeStore()

	// Windows given directly, per spec.md's S2: cargo A (ep=0,lp=30),
	// cargo B (ep=10,lp=20); margin=15 means the joined leg's window
	// (ep=10,lp=20) does not actually satisfy tw_overlap(10,20).
	store.Add(cargo.CargoEdge{CargoID: 1, Origin: 1, Destination: 2, Sequence: 1, Duration: 15, EP: 0, LP: 30, Weight: 1, AllowedPlaneTypes: []graph.PlaneType{0}})
	store.Add(cargo.CargoEdge{CargoID: 2, Origin: 1, Destination: 2, Sequence: 1, Duration: 15, EP: 10, LP: 20, Weight: 1, AllowedPlaneTypes: []graph.PlaneType{0}})

	p0 := NewPlane("p0", 0, 1, 100)
	planes := map[PlaneID]*Plane{"p0": p0}
	reg := BuildRegistry(g, planes)
	eng := NewEngine(g, store, planes, reg, nil)
	eng.Run()

	if len(p0.Legs) != 2 {
		t.Fatalf("expected cargo B on its own leg (2 legs total), got %d", len(p0.Legs))
	}
}

// TestS3PropagationChain grounds scenario S3: assigning the first hop
// of a two-hop cargo raises the second hop's ep by the same delta.
func TestS3PropagationChain(t *testing.T) {
	g := graph.NewGraph()
	g.AddEdge(0, 1, 2, graph.EdgeAttrs{Cost: 1, Time: 5, RouteAvailable: true})
	g.AddEdge(0, 2, 3, graph.EdgeAttrs{Cost: 1, Time: 5, RouteAvailable: true})
	store := cargo.NewEdgeStore()

	e1 := store.Add(cargo.CargoEdge{CargoID: 42, Origin: 1, Destination: 2, Sequence: 1, Duration: 20, EP: 0, LP: 50, Weight: 1, AllowedPlaneTypes: []graph.PlaneType{0}})
	store.Add(cargo.CargoEdge{CargoID: 42, Origin: 2, Destination: 3, Sequence: 2, Duration: 20, EP: 20, LP: 70, Weight: 1, AllowedPlaneTypes: []graph.PlaneType{0}})

	p0 := NewPlane("p0", 0, 1, 100)
	planes := map[PlaneID]*Plane{"p0": p0}
	reg := BuildRegistry(g, planes)
	eng := NewEngine(g, store, planes, reg, nil)

	// Give p0 an earlier leg that ends at airport 1 at t=10, so the plane's
	// ep on reaching e1's origin is 10 and add_cargo_edge reports a
	// 10-tick ep diff for e1.
	p0.Legs = []*Leg{{Origin: 3, Destination: 1, EP: 0, LP: 100, Duration: 10}}
	p0.NextDestination = 1

	ce1 := store.Get(e1)
	diffs, leg, preEP, preLP := eng.addCargoEdge(p0, ce1)
	eng.Assigns.Set(ce1.CargoID, ce1.Sequence, p0.ID)
	eng.Propagator.Propagate(ce1, leg, preEP, preLP, diffs)

	e2 := store.Get(edgeIDForSeq(store, 42, 2))
	if e2.EP < 30 {
		t.Fatalf("expected e2.ep raised to at least 30 after propagation, got %d", e2.EP)
	}
}

func TestPriorityNoAssignment(t *testing.T) {
	pp := Priority{NumAgents: 4, LatestDeadline: 1000}
	if got := pp.For(0, nil); got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
}

// TestS6PriorityPolicy grounds scenario S6.
func TestS6PriorityPolicy(t *testing.T) {
	pp := Priority{NumAgents: 4, LatestDeadline: 1000}
	d := 500
	if got := pp.For(0, &d); got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
}

func TestTWOverlap(t *testing.T) {
	if TWOverlap(10, 20, 0, 30) {
		t.Fatal("expected no overlap per S2's margin check")
	}
}

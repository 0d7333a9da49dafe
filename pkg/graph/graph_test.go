// pkg/graph/graph_test.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package graph

import (
	"errors"
	"testing"
)

func buildSimple() *Graph {
	g := NewGraph()
	g.AddEdge(0, 1, 2, EdgeAttrs{Cost: 1, Time: 10, RouteAvailable: true})
	g.AddEdge(0, 2, 3, EdgeAttrs{Cost: 1, Time: 10, RouteAvailable: true})
	g.AddEdge(0, 1, 3, EdgeAttrs{Cost: 5, Time: 5, RouteAvailable: true})
	return g
}

func TestShortestPathPrefersCost(t *testing.T) {
	g := buildSimple()
	path, err := g.ShortestPath(1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Path{1, 2, 3}
	if len(path) != len(want) {
		t.Fatalf("got %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("got %v, want %v", path, want)
		}
	}
}

func TestShortestPathNoPath(t *testing.T) {
	g := buildSimple()
	_, err := g.ShortestPath(3, 1)
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
}

func TestShortestPathSameNode(t *testing.T) {
	g := buildSimple()
	path, err := g.ShortestPath(1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 1 || path[0] != 1 {
		t.Fatalf("got %v", path)
	}
}

func TestAllowedPlaneTypes(t *testing.T) {
	g := NewGraph()
	g.AddEdge(0, 1, 2, EdgeAttrs{Cost: 1, Time: 1, RouteAvailable: true})
	g.AddEdge(1, 1, 2, EdgeAttrs{Cost: 1, Time: 1, RouteAvailable: true})
	types := g.AllowedPlaneTypes(1, 2)
	if len(types) != 2 {
		t.Fatalf("got %v", types)
	}
}

func TestReachable(t *testing.T) {
	g := buildSimple()
	if !g.Reachable(0, 1, 3) {
		t.Fatal("expected 1 -> 3 reachable for plane type 0")
	}
	if g.Reachable(0, 3, 1) {
		t.Fatal("expected 3 -> 1 unreachable for plane type 0")
	}
}

func TestShortestPathForTypeSkipsBlocked(t *testing.T) {
	g := buildSimple()

	path, err := g.ShortestPathForType(0, 1, 3, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(path) != 3 {
		t.Fatalf("got %v, want the cheaper 2-hop path", path)
	}

	blocked := map[UndirectedPair]struct{}{
		MakeUndirectedPair(1, 2): {},
	}
	reroute, err := g.ShortestPathForType(0, 1, 3, blocked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reroute) != 2 || reroute[1] != 3 {
		t.Fatalf("got %v, want the direct fallback edge", reroute)
	}
}

func TestRouteCacheMemoizesSuffixes(t *testing.T) {
	g := buildSimple()
	rc := NewRouteCache(g)
	pi, err := rc.GetPath(1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pi.Cost != 2 {
		t.Fatalf("got cost %v, want 2", pi.Cost)
	}

	sub, err := rc.GetPath(2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Cost != 1 || len(sub.Path) != 2 {
		t.Fatalf("got %+v", sub)
	}
}

func TestTravelTimeUnknownEdge(t *testing.T) {
	g := buildSimple()
	if tt := g.TravelTime(9, 10); tt != 0 {
		t.Fatalf("got %v, want 0", tt)
	}
}

// pkg/graph/graph.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package graph holds the per-plane-type route graphs and the union
// multigraph shortest-path cache (C1) and plane-type reachability map
// (C2) that the planner and dispatcher build their decisions on.
package graph

import (
	"container/heap"

	"github.com/pkg/errors"
)

// AirportID identifies a node in the route network.
type AirportID int32

// NoAirport is the sentinel meaning "no destination".
const NoAirport AirportID = -1

// PlaneType tags which per-type subgraph an edge or aircraft belongs to.
type PlaneType int32

// EdgeAttrs carries the weights and live status of one directed edge in
// one plane type's subgraph.
type EdgeAttrs struct {
	Cost           float64
	Time           float64
	Mal            int
	RouteAvailable bool
}

// UndirectedPair is the (min,max) key used by the offline-edge tracker
// (C10), which reports outages without direction.
type UndirectedPair struct {
	A, B AirportID
}

// MakeUndirectedPair orders u,v so that equal unordered pairs compare equal.
func MakeUndirectedPair(u, v AirportID) UndirectedPair {
	if u <= v {
		return UndirectedPair{u, v}
	}
	return UndirectedPair{v, u}
}

type edgeKey struct {
	From, To AirportID
}

// ErrNoPath is returned when no path exists between two airports in the
// requested subgraph.
var ErrNoPath = errors.New("graph: no path")

// Graph is the route network: one directed subgraph per plane type, plus
// the derived union view that the strategic planner's shortest-path
// cache (C1) and allowed-plane-types lookup (C2) operate on.
type Graph struct {
	types map[PlaneType]map[edgeKey]EdgeAttrs
	// union caches the cheapest-cost attributes seen for an edge across
	// all plane types, mirroring the combined multigraph the original
	// shortest-path cache was built over.
	union map[edgeKey]EdgeAttrs
}

// NewGraph returns an empty route network.
func NewGraph() *Graph {
	return &Graph{
		types: make(map[PlaneType]map[edgeKey]EdgeAttrs),
		union: make(map[edgeKey]EdgeAttrs),
	}
}

// AddEdge inserts or updates the directed edge (from,to) in plane type
// pt's subgraph.
func (g *Graph) AddEdge(pt PlaneType, from, to AirportID, attrs EdgeAttrs) {
	sub, ok := g.types[pt]
	if !ok {
		sub = make(map[edgeKey]EdgeAttrs)
		g.types[pt] = sub
	}
	k := edgeKey{from, to}
	sub[k] = attrs

	// The union edge keeps the minimum cost across types, matching how a
	// Dijkstra search over a multigraph of these subgraphs would resolve
	// the cheapest parallel edge, and the maximum travel time, matching
	// the conservative travel-time estimate used by cargo-edge windows.
	if cur, ok := g.union[k]; !ok || attrs.Cost < cur.Cost {
		u := cur
		u.Cost = attrs.Cost
		if attrs.Time > u.Time {
			u.Time = attrs.Time
		}
		if !ok {
			u.Time = attrs.Time
		}
		u.RouteAvailable = attrs.RouteAvailable || cur.RouteAvailable
		g.union[k] = u
	} else if attrs.Time > cur.Time {
		cur.Time = attrs.Time
		g.union[k] = cur
	}
}

// HasEdge reports whether plane type pt's subgraph has the directed edge
// (from,to).
func (g *Graph) HasEdge(pt PlaneType, from, to AirportID) bool {
	sub, ok := g.types[pt]
	if !ok {
		return false
	}
	_, ok = sub[edgeKey{from, to}]
	return ok
}

// EdgeAttrsFor returns the attributes of the directed edge (from,to) in
// plane type pt's subgraph, used by the dispatcher to decide whether a
// leg's direct hop is still flyable before committing to it.
func (g *Graph) EdgeAttrsFor(pt PlaneType, from, to AirportID) (EdgeAttrs, bool) {
	sub, ok := g.types[pt]
	if !ok {
		return EdgeAttrs{}, false
	}
	a, ok := sub[edgeKey{from, to}]
	return a, ok
}

// PlaneTypes returns the plane types with at least one edge registered.
func (g *Graph) PlaneTypes() []PlaneType {
	pts := make([]PlaneType, 0, len(g.types))
	for pt := range g.types {
		pts = append(pts, pt)
	}
	return pts
}

// AllowedPlaneTypes returns the set of plane types whose subgraph
// contains the directed edge (from,to) — C2's allowed_plane_types(u,v).
func (g *Graph) AllowedPlaneTypes(from, to AirportID) []PlaneType {
	k := edgeKey{from, to}
	var pts []PlaneType
	for pt, sub := range g.types {
		if _, ok := sub[k]; ok {
			pts = append(pts, pt)
		}
	}
	return pts
}

// TravelTime returns the travel time of the directed edge (from,to),
// defined as the maximum travel time reported for that edge across all
// plane types that have it (0 if no type has it).
func (g *Graph) TravelTime(from, to AirportID) float64 {
	if a, ok := g.union[edgeKey{from, to}]; ok {
		return a.Time
	}
	return 0
}

// Reachable reports whether dest is reachable from src in plane type
// pt's subgraph.
func (g *Graph) Reachable(pt PlaneType, src, dest AirportID) bool {
	if src == dest {
		return true
	}
	sub, ok := g.types[pt]
	if !ok {
		return false
	}
	adj := adjacencyOf(sub)
	seen := map[AirportID]bool{src: true}
	queue := []AirportID{src}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if v == dest {
				return true
			}
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	return false
}

func adjacencyOf(sub map[edgeKey]EdgeAttrs) map[AirportID][]AirportID {
	adj := make(map[AirportID][]AirportID)
	for k := range sub {
		adj[k.From] = append(adj[k.From], k.To)
	}
	return adj
}

// Path is an ordered sequence of airports, v0..vK, with K hops.
type Path []AirportID

// ShortestPath returns the minimum-cost path from orig to dest over the
// union of all plane-type subgraphs (C1's underlying computation; C1
// itself is the memoizing cache in route_cache.go).
func (g *Graph) ShortestPath(orig, dest AirportID) (Path, error) {
	return dijkstra(g.union, orig, dest, func(EdgeAttrs) bool { return true })
}

// ShortestPathForType returns the minimum-cost path from orig to dest
// within plane type pt's subgraph, skipping any edge that is not
// route_available or whose undirected pair is in blocked. Used by the
// dispatcher (C9) to compute pruned reroutes around outages (C10).
func (g *Graph) ShortestPathForType(pt PlaneType, orig, dest AirportID, blocked map[UndirectedPair]struct{}) (Path, error) {
	sub, ok := g.types[pt]
	if !ok {
		return nil, errors.Wrapf(ErrNoPath, "plane type %d has no subgraph", pt)
	}
	filtered := make(map[edgeKey]EdgeAttrs, len(sub))
	for k, a := range sub {
		if !a.RouteAvailable {
			continue
		}
		if blocked != nil {
			if _, bad := blocked[MakeUndirectedPair(k.From, k.To)]; bad {
				continue
			}
		}
		filtered[k] = a
	}
	return dijkstra(filtered, orig, dest, func(EdgeAttrs) bool { return true })
}

func dijkstra(edges map[edgeKey]EdgeAttrs, orig, dest AirportID, accept func(EdgeAttrs) bool) (Path, error) {
	adj := make(map[AirportID][]edgeKey)
	for k := range edges {
		adj[k.From] = append(adj[k.From], k)
	}

	if orig == dest {
		return Path{orig}, nil
	}

	dist := map[AirportID]float64{orig: 0}
	prev := map[AirportID]AirportID{}
	pq := &priorityQueue{{node: orig, dist: 0}}
	visited := map[AirportID]bool{}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		if cur.node == dest {
			break
		}
		for _, k := range adj[cur.node] {
			attrs := edges[k]
			if !accept(attrs) {
				continue
			}
			nd := dist[cur.node] + attrs.Cost
			if d, ok := dist[k.To]; !ok || nd < d {
				dist[k.To] = nd
				prev[k.To] = cur.node
				heap.Push(pq, pqItem{node: k.To, dist: nd})
			}
		}
	}

	if !visited[dest] {
		return nil, errors.Wrapf(ErrNoPath, "%d -> %d", orig, dest)
	}

	path := Path{dest}
	for n := dest; n != orig; {
		p, ok := prev[n]
		if !ok {
			return nil, errors.Wrapf(ErrNoPath, "%d -> %d", orig, dest)
		}
		path = append(Path{p}, path...)
		n = p
	}
	return path, nil
}

type pqItem struct {
	node AirportID
	dist float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

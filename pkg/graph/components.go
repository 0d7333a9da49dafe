// pkg/graph/components.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package graph

import "slices"

// WeaklyConnectedComponents returns the weakly connected components of
// size > 1 in plane type pt's subgraph, treating every directed edge as
// undirected for the purpose of connectivity. These are the "groups"
// (C8) that bound which airports an aircraft of that type can ever
// reach from a given starting point.
func (g *Graph) WeaklyConnectedComponents(pt PlaneType) [][]AirportID {
	sub, ok := g.types[pt]
	if !ok {
		return nil
	}

	undirected := make(map[AirportID]map[AirportID]bool)
	addEdge := func(u, v AirportID) {
		if undirected[u] == nil {
			undirected[u] = make(map[AirportID]bool)
		}
		undirected[u][v] = true
	}
	for k := range sub {
		addEdge(k.From, k.To)
		addEdge(k.To, k.From)
	}

	seen := make(map[AirportID]bool)
	var components [][]AirportID
	nodes := make([]AirportID, 0, len(undirected))
	for n := range undirected {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)

	for _, start := range nodes {
		if seen[start] {
			continue
		}
		var component []AirportID
		queue := []AirportID{start}
		seen[start] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			component = append(component, u)
			neighbors := make([]AirportID, 0, len(undirected[u]))
			for v := range undirected[u] {
				neighbors = append(neighbors, v)
			}
			slices.Sort(neighbors)
			for _, v := range neighbors {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, v)
				}
			}
		}
		if len(component) > 1 {
			slices.Sort(component)
			components = append(components, component)
		}
	}
	return components
}

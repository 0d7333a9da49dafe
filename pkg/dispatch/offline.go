// pkg/dispatch/offline.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package dispatch implements the tactical dispatcher (C9), the
// offline-edge outage tracker (C10), and the priority-aware load/unload
// decisions that ride on top of the strategic plan built by pkg/plan.
package dispatch

import (
	"strconv"
	"strings"

	"github.com/aircargo/controller/pkg/graph"
)

// OfflineEdges is C10: the set of temporarily unavailable undirected
// edges, each with the tick at which it comes back. Rerouting consults
// this set to prune the graph before searching.
type OfflineEdges struct {
	until map[graph.UndirectedPair]int
}

// NewOfflineEdges returns an empty outage set.
func NewOfflineEdges() *OfflineEdges {
	return &OfflineEdges{until: make(map[graph.UndirectedPair]int)}
}

// Purge removes every entry whose expiry has passed, given the current
// tick. Must be called before Ingest each tick (§4.6: "purge expired
// entries first, then ingest new warnings").
func (o *OfflineEdges) Purge(now int) {
	for k, until := range o.until {
		if now >= until {
			delete(o.until, k)
		}
	}
}

// Ingest parses one tick's warning strings, recording any "ROUTE FROM:"
// outage. Malformed or unrelated messages are silently ignored, per
// spec.md §7's "parse failure of a warning: ignore the message".
func (o *OfflineEdges) Ingest(now int, warnings []string) {
	for _, w := range warnings {
		o.ingestOne(now, w)
	}
}

func (o *OfflineEdges) ingestOne(now int, warning string) {
	if !strings.HasPrefix(warning, "ROUTE FROM:") {
		return
	}
	tokens := strings.Fields(warning)
	// Shape: ["ROUTE", "FROM:", u, "TO:", v, ..., duration, "STEPS"].
	if len(tokens) < 5 {
		return
	}
	u, err := strconv.Atoi(tokens[2])
	if err != nil {
		return
	}
	v, err := strconv.Atoi(tokens[4])
	if err != nil {
		return
	}
	if tokens[len(tokens)-1] != "STEPS" {
		return
	}
	duration, err := strconv.Atoi(tokens[len(tokens)-2])
	if err != nil {
		return
	}
	key := graph.MakeUndirectedPair(graph.AirportID(u), graph.AirportID(v))
	o.until[key] = now + duration
}

// Blocked returns a snapshot of the currently-down undirected pairs,
// suitable for Graph.ShortestPathForType's blocked argument.
func (o *OfflineEdges) Blocked() map[graph.UndirectedPair]struct{} {
	blocked := make(map[graph.UndirectedPair]struct{}, len(o.until))
	for k := range o.until {
		blocked[k] = struct{}{}
	}
	return blocked
}

// IsDown reports whether the undirected edge (u,v) is currently offline.
func (o *OfflineEdges) IsDown(u, v graph.AirportID) bool {
	_, down := o.until[graph.MakeUndirectedPair(u, v)]
	return down
}

// Len reports the number of outages currently tracked.
func (o *OfflineEdges) Len() int {
	return len(o.until)
}

// PrunedPath computes a shortest path from orig to dest within plane
// type pt's subgraph, with every currently-offline edge removed. Returns
// graph.ErrNoPath (wrapped) if none exists.
func (o *OfflineEdges) PrunedPath(g *graph.Graph, pt graph.PlaneType, orig, dest graph.AirportID) (graph.Path, error) {
	return g.ShortestPathForType(pt, orig, dest, o.Blocked())
}

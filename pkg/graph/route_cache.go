// pkg/graph/route_cache.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package graph

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// PathInfo is a memoized shortest path plus its total union cost.
type PathInfo struct {
	Path Path
	Cost float64
}

// RouteCache is C1: a memoized shortest-path-by-cost lookup over the
// union multigraph. Evictions are safe — an evicted entry is simply
// recomputed on next use — so a bounded LRU is used instead of an
// unbounded map.
type RouteCache struct {
	graph *Graph
	cache *lru.Cache[edgeKey, PathInfo]
}

// DefaultRouteCacheSize bounds the number of (origin,destination) pairs
// kept memoized at once.
const DefaultRouteCacheSize = 4096

// NewRouteCache returns a route cache backed by g with the default
// capacity.
func NewRouteCache(g *Graph) *RouteCache {
	return NewRouteCacheSize(g, DefaultRouteCacheSize)
}

// NewRouteCacheSize is NewRouteCache with an explicit LRU capacity.
func NewRouteCacheSize(g *Graph, size int) *RouteCache {
	c, err := lru.New[edgeKey, PathInfo](size)
	if err != nil {
		// Only possible if size <= 0; fall back to the default rather
		// than propagating a constructor error for a constant mistake.
		c, _ = lru.New[edgeKey, PathInfo](DefaultRouteCacheSize)
	}
	return &RouteCache{graph: g, cache: c}
}

// GetPath returns the cached shortest path from orig to dest, computing
// and memoizing it (along every suffix of it, the way the corpus's path
// matrix amortizes sub-path lookups) on a miss.
func (r *RouteCache) GetPath(orig, dest AirportID) (PathInfo, error) {
	k := edgeKey{orig, dest}
	if pi, ok := r.cache.Get(k); ok {
		return pi, nil
	}

	path, err := r.graph.ShortestPath(orig, dest)
	if err != nil {
		return PathInfo{}, err
	}

	pi := r.pathInfo(path)
	r.cache.Add(k, pi)

	// Memoize every suffix path[i:] -> dest for free, since computing
	// the full path already enumerated it.
	for i := 1; i < len(path)-1; i++ {
		sub := path[i:]
		r.cache.Add(edgeKey{sub[0], dest}, r.pathInfo(sub))
	}

	return pi, nil
}

func (r *RouteCache) pathInfo(path Path) PathInfo {
	var cost float64
	for i := 1; i < len(path); i++ {
		if a, ok := r.graph.union[edgeKey{path[i-1], path[i]}]; ok {
			cost += a.Cost
		}
	}
	return PathInfo{Path: path, Cost: cost}
}

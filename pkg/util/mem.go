// pkg/util/mem.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

// Arena is an append-only pool of values addressed by a stable integer
// index rather than by pointer, so that appends growing the backing
// slice never invalidate a previously handed-out reference. This is the
// storage discipline the cargo-edge store needs: edges are referenced by
// (cargo_id, sequence) lookups and by legs from multiple planes, and
// must stay valid as more edges are appended during incremental
// replanning.
//
// The core is single-threaded (see pkg/controller), so, unlike the
// pointer-based pool this is adapted from, no locking is needed here.
type Arena[T any] struct {
	items []T
}

// Add appends v and returns its stable index.
func (a *Arena[T]) Add(v T) int {
	a.items = append(a.items, v)
	return len(a.items) - 1
}

// Get returns a pointer to the item at index i. The pointer remains
// valid only until the next Add call that grows the backing slice;
// callers that need a longer-lived handle should store the index, not
// the pointer.
func (a *Arena[T]) Get(i int) *T {
	return &a.items[i]
}

// Len returns the number of items in the arena.
func (a *Arena[T]) Len() int {
	return len(a.items)
}

// All returns an iterator over (index, *T) pairs in insertion order.
func (a *Arena[T]) All() func(yield func(int, *T) bool) {
	return func(yield func(int, *T) bool) {
		for i := range a.items {
			if !yield(i, &a.items[i]) {
				return
			}
		}
	}
}

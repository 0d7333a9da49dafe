// pkg/plan/constants.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package plan implements the strategic planner's plane state (C4),
// assignment engine (C5), window propagator (C6), per-cargo plan state
// (C7), agent assignment registry (C8), and priority policy (C11).
package plan

// BigTime is the sentinel upper bound on time windows: an aircraft with
// no legs has ep=0, lp=BigTime.
const BigTime = 100_000

// TWOverlapMargin is the additive slack required by tw_overlap: two
// windows overlap only if each window's earliest pickup leaves at least
// this much room before the other window's latest pickup.
const TWOverlapMargin = 15

// BucketSize buckets cargo edges by floor(ep/BucketSize) for assignment
// ordering; 50 is used as the default the source settled on after
// experimenting with smaller buckets.
const BucketSize = 50

// TWOverlap reports whether window (ep1,lp1) overlaps window (ep2,lp2)
// with the required margin: the window that would result from merging
// them — ep=max(ep1,ep2), lp=min(lp1,lp2) — must itself still leave at
// least MARGIN of slack (ep <= lp - MARGIN). Resolves spec.md §9's open
// question of whether MARGIN gates the assignment predicate or the
// leg-merge logic by gating both at once: a merge that would produce an
// already-too-tight window is rejected before it happens.
func TWOverlap(ep1, lp1, ep2, lp2 int) bool {
	ep := ep1
	if ep2 > ep {
		ep = ep2
	}
	lp := lp1
	if lp2 < lp {
		lp = lp2
	}
	return ep <= lp-TWOverlapMargin
}

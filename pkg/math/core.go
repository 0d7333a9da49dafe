// pkg/math/core.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package math holds the small set of generic numeric helpers the
// planner and propagator lean on for window-diff arithmetic. It is a
// deliberately narrow package: air-cargo routing works over an integer
// airport graph, not over geometry, so none of the lat/long/heading
// machinery a flight simulator needs applies here.
package math

import "golang.org/x/exp/constraints"

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts x to the range [low, high].
func Clamp[T constraints.Ordered](x, low, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// MaxZero returns max(0, x); the recurring "diffs are never negative"
// idiom used throughout window propagation.
func MaxZero[T constraints.Integer](x T) T {
	return Max(x, 0)
}

// pkg/cargo/cargo.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package cargo holds the cargo descriptor, the cargo-edge construction
// pass (C3), and the flat cargo-edge store. The per-cargo plan-state
// tracker (C7) lives in pkg/plan.
package cargo

import "github.com/aircargo/controller/pkg/graph"

// ID identifies one cargo item for the life of the episode.
type ID int32

// Cargo is the immutable descriptor of one parcel. It may be introduced
// after reset via an event_new_cargo entry.
type Cargo struct {
	ID                  ID
	Origin              graph.AirportID
	Destination         graph.AirportID
	EarliestPickupTime  int
	SoftDeadline        int
	HardDeadline        int
	Weight              int
}

// DeliveredAtReset reports whether this cargo's origin and destination
// coincide, meaning it is already delivered before any plan is built.
func (c Cargo) DeliveredAtReset() bool {
	return c.Origin == c.Destination
}

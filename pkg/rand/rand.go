// pkg/rand/rand.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package rand provides a small, seedable PCG32-based generator used
// only by the demo-scenario generator in cmd/cargoctl. The planning and
// dispatch core itself never consults randomness — the spec explicitly
// disallows stochastic policies — so this lives outside pkg/controller
// and is always handed an explicit *Rand instance rather than touching
// any package-level generator.
package rand

// This is based on a widely used pcg32 implementation, with exported
// state fields so callers can serialize/restore a generator exactly.
const (
	pcg32State      = 0x853c49e6748fea9b
	pcg32Increment  = 0xda3e39cb94b95bdb
	pcg32Multiplier = 0x5851f42d4c957f2d
)

type PCG32 struct {
	State     uint64
	Increment uint64
}

func NewPCG32() PCG32 {
	return PCG32{pcg32State, pcg32Increment}
}

func (p *PCG32) Seed(state, sequence uint64) {
	p.Increment = (sequence << 1) | 1
	p.State = (state+p.Increment)*pcg32Multiplier + p.Increment
}

func (p *PCG32) Random() uint32 {
	oldState := p.State
	p.State = oldState*pcg32Multiplier + p.Increment

	xorShifted := uint32(((oldState >> 18) ^ oldState) >> 27)
	rot := uint32(oldState >> 59)
	return (xorShifted >> rot) | (xorShifted << ((-rot) & 31))
}

func (p *PCG32) Bounded(bound uint32) uint32 {
	if bound == 0 {
		return 0
	}
	threshold := -bound % bound
	for {
		r := p.Random()
		if r >= threshold {
			return r % bound
		}
	}
}

// Rand is a seedable, non-shared random source; callers own an instance
// rather than reaching for package-level state.
type Rand struct {
	PCG32
}

func New(seed uint64) *Rand {
	r := &Rand{PCG32: NewPCG32()}
	r.Seed(seed)
	return r
}

func (r *Rand) Seed(s uint64) {
	r.PCG32.Seed(s, pcg32Increment)
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Bounded(uint32(n)))
}

func (r *Rand) Float32() float32 {
	return float32(r.Random()) / (1<<32 - 1)
}

// SampleSlice uniformly samples an element of a non-empty slice.
func SampleSlice[T any](r *Rand, slice []T) T {
	return slice[r.Intn(len(slice))]
}

// pkg/rand/rand_test.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import "testing"

func TestDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("generators with the same seed diverged at step %d: %d != %d", i, x, y)
		}
	}
}

func TestDifferentSeeds(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 20; i++ {
		if a.Intn(1<<30) != b.Intn(1<<30) {
			same = false
		}
	}
	if same {
		t.Fatalf("generators with different seeds produced identical sequences")
	}
}

func TestSampleSlice(t *testing.T) {
	r := New(7)
	s := []int{10, 20, 30}
	for i := 0; i < 50; i++ {
		v := SampleSlice(r, s)
		if v != 10 && v != 20 && v != 30 {
			t.Fatalf("SampleSlice returned value not in slice: %d", v)
		}
	}
}

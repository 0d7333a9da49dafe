// pkg/math/core_test.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		x, low, high, want int
	}{
		{5, 1, 4, 4},
		{-5, 1, 4, 1},
		{2, 1, 4, 2},
	}
	for _, c := range cases {
		if got := Clamp(c.x, c.low, c.high); got != c.want {
			t.Errorf("Clamp(%d,%d,%d) = %d, want %d", c.x, c.low, c.high, got, c.want)
		}
	}
}

func TestMaxZero(t *testing.T) {
	if MaxZero(-3) != 0 {
		t.Errorf("MaxZero(-3) should be 0")
	}
	if MaxZero(7) != 7 {
		t.Errorf("MaxZero(7) should be 7")
	}
}

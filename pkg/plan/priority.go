// pkg/plan/priority.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package plan

import (
	"math"

	xmath "github.com/aircargo/controller/pkg/math"
)

// Priority is C11: it maps an aircraft's next deadline onto an integer
// priority band in [1,N]. A plane with no assigned leg gets the maximum
// priority, a deliberate choice to avoid starving unassigned planes
// during contention.
type Priority struct {
	NumAgents      int
	LatestDeadline int
}

// For computes the priority band for an aircraft whose next deadline is
// nextDeadline (nil if the aircraft has no assigned leg) at the current
// time now.
func (pp Priority) For(now int, nextDeadline *int) int {
	if nextDeadline == nil {
		return pp.NumAgents
	}
	d := *nextDeadline
	timeLeft := d - now
	totalTimeLeft := pp.LatestDeadline - d
	if totalTimeLeft <= 0 {
		return pp.NumAgents
	}
	raw := int(math.Floor(float64(timeLeft) / float64(totalTimeLeft) * float64(pp.NumAgents)))
	return xmath.Clamp(raw, 1, pp.NumAgents)
}

// pkg/controller/validate.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package controller

import (
	"errors"
	"fmt"

	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/util"
)

// ErrValidation is returned by Reset/Policies when Validate records any
// error against the incoming Observation.
var ErrValidation = errors.New("controller: invalid observation")

// Validate checks an Observation for the boundary conditions spec.md §9
// calls out ("implementers should define strict typed records ... and
// validate once on entry"): every cargo has a sane window and a
// non-negative weight, at least one agent is present, and the scenario
// info is non-degenerate. Agents' plane types are not checked against
// the route map.
// Errors are pushed onto el rather than returned directly so validation
// can continue past the first problem and report everything at once.
func Validate(obs Observation, el *util.ErrorLogger) {
	defer el.CheckDepth(el.CurrentDepth())

	el.Push("scenario_info")
	if obs.Global.ScenarioInfo.ProcessingTime < 0 {
		el.ErrorString("negative processing_time %d", obs.Global.ScenarioInfo.ProcessingTime)
	}
	if obs.Global.ScenarioInfo.LatestDeadline <= 0 {
		el.ErrorString("non-positive latest_deadline %d", obs.Global.ScenarioInfo.LatestDeadline)
	}
	el.Pop()

	el.Push("active_cargo")
	for _, c := range obs.Global.ActiveCargo {
		validateCargo(c, el)
	}
	el.Pop()

	el.Push("event_new_cargo")
	for _, c := range obs.Global.EventNewCargo {
		validateCargo(c, el)
	}
	el.Pop()

	el.Push("agents")
	if obs.Agents == nil || obs.Agents.Len() == 0 {
		el.ErrorString("observation has no agents")
	}
	el.Pop()
}

func validateCargo(c cargo.Cargo, el *util.ErrorLogger) {
	el.Push(fmt.Sprintf("cargo %d", c.ID))
	if c.EarliestPickupTime > c.SoftDeadline {
		el.ErrorString("earliest_pickup_time %d exceeds soft_deadline %d", c.EarliestPickupTime, c.SoftDeadline)
	}
	if c.SoftDeadline > c.HardDeadline {
		el.ErrorString("soft_deadline %d exceeds hard_deadline %d", c.SoftDeadline, c.HardDeadline)
	}
	if c.Weight < 0 {
		el.ErrorString("negative weight %d", c.Weight)
	}
	el.Pop()
}

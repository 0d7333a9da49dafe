// pkg/controller/controller_scenario_test.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package controller

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/dispatch"
	"github.com/aircargo/controller/pkg/graph"
)

func s1Observation() Observation {
	agents := NewAgentMap()
	agents.Set("p0", AgentObservation{
		State:          dispatch.Waiting,
		CurrentAirport: 1,
		PlaneType:      0,
		MaxWeight:      100,
	})
	return Observation{
		Global: GlobalState{
			RouteMap: map[graph.PlaneType][]RouteEdge{
				0: {{From: 1, To: 2, Cost: 1, Time: 10, RouteAvailable: true}},
			},
			ActiveCargo: []cargo.Cargo{
				{ID: 7, Origin: 1, Destination: 2, EarliestPickupTime: 0, SoftDeadline: 100, HardDeadline: 200, Weight: 20},
			},
			ScenarioInfo: ScenarioInfo{ProcessingTime: 5, LatestDeadline: 200},
		},
		Agents: agents,
	}
}

// TestResetThenPoliciesS1 grounds scenario S1 end to end through the
// Reset/Policies lifecycle: a single cargo loaded, flown, and unloaded.
func TestResetThenPoliciesS1(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Reset(s1Observation(), 0))

	obs := s1Observation()
	obs.Agents.values["p0"] = AgentObservation{
		State:                 dispatch.Waiting,
		CurrentAirport:        1,
		CargoAtCurrentAirport: []cargo.ID{7},
	}
	actions, err := c.Policies(0, obs, nil, nil)
	require.NoError(t, err)
	require.Contains(t, actions["p0"].CargoToLoad, cargo.ID(7))

	obs.Agents.values["p0"] = AgentObservation{
		State:        dispatch.ReadyForTakeoff,
		CargoOnboard: []cargo.ID{7},
	}
	actions, err = c.Policies(1, obs, nil, nil)
	require.NoError(t, err)
	require.Equal(t, graph.AirportID(2), actions["p0"].Destination)

	obs.Agents.values["p0"] = AgentObservation{
		State:          dispatch.Waiting,
		CurrentAirport: 2,
		CargoOnboard:   []cargo.ID{7},
	}
	actions, err = c.Policies(20, obs, nil, nil)
	require.NoError(t, err)
	require.Contains(t, actions["p0"].CargoToUnload, cargo.ID(7))

	est := c.CargoPlan.Get(7)
	require.NotNil(t, est)
	require.True(t, est.Delivered)
}

// TestResetRejectsInvalidObservation grounds spec.md §9's "validate once
// on entry" boundary: a cargo with an inverted deadline window is
// rejected before any plan state is built.
func TestResetRejectsInvalidObservation(t *testing.T) {
	obs := s1Observation()
	obs.Global.ActiveCargo[0].SoftDeadline = 5
	obs.Global.ActiveCargo[0].HardDeadline = 1

	c := New(nil)
	err := c.Reset(obs, 0)
	require.ErrorIs(t, err, ErrValidation)
}

// TestResetRejectsNoAgents grounds the same boundary for an empty agent
// map, which would otherwise leave Policies with nothing to iterate.
func TestResetRejectsNoAgents(t *testing.T) {
	obs := s1Observation()
	obs.Agents = NewAgentMap()

	c := New(nil)
	err := c.Reset(obs, 0)
	require.ErrorIs(t, err, ErrValidation)
}

// TestPoliciesIncrementalNewCargo grounds the event_new_cargo incremental
// re-run path: a second cargo announced mid-episode gets a cargo-plan
// entry, and the re-run leaves the first cargo's already-committed
// assignment on the same plane.
func TestPoliciesIncrementalNewCargo(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Reset(s1Observation(), 0))

	obs := s1Observation()
	obs.Agents.values["p0"] = AgentObservation{State: dispatch.Waiting, CurrentAirport: 1}
	_, err := c.Policies(0, obs, nil, nil)
	require.NoError(t, err)

	firstOwner, ok := c.Engine.Assigns.Get(7, 1)
	require.True(t, ok)

	obs.Global.EventNewCargo = []cargo.Cargo{
		{ID: 8, Origin: 1, Destination: 2, EarliestPickupTime: 0, SoftDeadline: 100, HardDeadline: 200, Weight: 10},
	}
	_, err = c.Policies(1, obs, nil, nil)
	require.NoError(t, err)

	stillOwner, ok := c.Engine.Assigns.Get(7, 1)
	require.True(t, ok)
	require.Equal(t, firstOwner, stillOwner)

	require.NotNil(t, c.CargoPlan.Get(8))
}

// TestPoliciesSkipsDoneAgents grounds the dones map: an agent marked
// done must not receive an action even though it is still present in
// the observation.
func TestPoliciesSkipsDoneAgents(t *testing.T) {
	c := New(nil)
	require.NoError(t, c.Reset(s1Observation(), 0))

	obs := s1Observation()
	obs.Agents.values["p0"] = AgentObservation{State: dispatch.Waiting, CurrentAirport: 1}
	actions, err := c.Policies(0, obs, map[string]bool{"p0": true}, nil)
	require.NoError(t, err)
	_, present := actions["p0"]
	require.False(t, present)
}

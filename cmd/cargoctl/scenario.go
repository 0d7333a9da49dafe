// cmd/cargoctl/scenario.go
// Copyright(c) 2024 aircargo-controller contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"os"

	"github.com/aircargo/controller/pkg/cargo"
	"github.com/aircargo/controller/pkg/controller"
	"github.com/aircargo/controller/pkg/dispatch"
	"github.com/aircargo/controller/pkg/graph"
	"github.com/aircargo/controller/pkg/util"
)

// scenarioFile is the on-disk JSON shape -scenario loads: a route map per
// plane type, the aircraft present at the start of the episode, and the
// cargo active at reset. It is the harness's own format, not a
// reimplementation of the original Python environment's wire protocol.
type scenarioFile struct {
	ProcessingTime int         `json:"processing_time"`
	LatestDeadline int         `json:"latest_deadline"`
	Routes         []routeJSON `json:"routes"`
	Planes         []planeJSON `json:"planes"`
	Cargo          []cargoJSON `json:"cargo"`
}

type routeJSON struct {
	PlaneType      int32   `json:"plane_type"`
	From           int32   `json:"from"`
	To             int32   `json:"to"`
	Cost           float64 `json:"cost"`
	Time           float64 `json:"time"`
	Mal            int     `json:"mal"`
	RouteAvailable bool    `json:"route_available"`
}

type planeJSON struct {
	ID        string `json:"id"`
	PlaneType int32  `json:"plane_type"`
	Location  int32  `json:"location"`
	MaxWeight int    `json:"max_weight"`
}

type cargoJSON struct {
	ID                 int32 `json:"id"`
	Origin             int32 `json:"origin"`
	Destination        int32 `json:"destination"`
	EarliestPickupTime int   `json:"earliest_pickup_time"`
	SoftDeadline       int   `json:"soft_deadline"`
	HardDeadline       int   `json:"hard_deadline"`
	Weight             int   `json:"weight"`
}

// loadScenario reads and parses a scenario file from path. The raw bytes
// are type-checked against scenarioFile's shape first (catching a
// misspelled or wrongly-typed field with a field-path error rather than
// a bare encoding/json complaint), then decoded with line/character
// error decoration on failure.
func loadScenario(path string) (scenarioFile, error) {
	var sf scenarioFile
	b, err := os.ReadFile(path)
	if err != nil {
		return sf, err
	}

	var el util.ErrorLogger
	util.CheckJSON[scenarioFile](b, &el)
	if el.HaveErrors() {
		return sf, fmt.Errorf("%s: %s", path, el.String())
	}

	if err := util.UnmarshalJSONBytes(b, &sf); err != nil {
		return sf, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}

// toObservation converts a parsed scenario file into the typed
// Observation Controller.Reset expects.
func (sf scenarioFile) toObservation() controller.Observation {
	routeMap := make(map[graph.PlaneType][]controller.RouteEdge)
	for _, r := range sf.Routes {
		pt := graph.PlaneType(r.PlaneType)
		routeMap[pt] = append(routeMap[pt], controller.RouteEdge{
			From: graph.AirportID(r.From), To: graph.AirportID(r.To),
			Cost: r.Cost, Time: r.Time, Mal: r.Mal, RouteAvailable: r.RouteAvailable,
		})
	}

	active := make([]cargo.Cargo, 0, len(sf.Cargo))
	for _, c := range sf.Cargo {
		active = append(active, cargo.Cargo{
			ID: cargo.ID(c.ID), Origin: graph.AirportID(c.Origin), Destination: graph.AirportID(c.Destination),
			EarliestPickupTime: c.EarliestPickupTime, SoftDeadline: c.SoftDeadline, HardDeadline: c.HardDeadline,
			Weight: c.Weight,
		})
	}

	agents := controller.NewAgentMap()
	for _, p := range sf.Planes {
		agents.Set(p.ID, controller.AgentObservation{
			State:          dispatch.Waiting,
			CurrentAirport: graph.AirportID(p.Location),
			PlaneType:      graph.PlaneType(p.PlaneType),
			MaxWeight:      p.MaxWeight,
		})
	}

	return controller.Observation{
		Global: controller.GlobalState{
			RouteMap:     routeMap,
			ActiveCargo:  active,
			ScenarioInfo: controller.ScenarioInfo{ProcessingTime: sf.ProcessingTime, LatestDeadline: sf.LatestDeadline},
		},
		Agents: agents,
	}
}

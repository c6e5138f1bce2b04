package optimizer

import (
	"time"

	"github.com/skylane/rosterops/core/model"
)

// wireSnapshot mirrors the optimizer's JSON roster shape. Roles arrive as
// loosely spelled strings and timestamps in one of two layouts.
type wireSnapshot struct {
	Assignments []wireAssignment `json:"assignments"`
	KPIs        model.KPISet     `json:"kpis"`
	Insights    map[string]any   `json:"insights,omitempty"`
}

type wireAssignment struct {
	CrewID       string `json:"crew_id"`
	FlightID     string `json:"flight_id"`
	Role         string `json:"role"`
	DepAirport   string `json:"dep_airport"`
	ArrAirport   string `json:"arr_airport"`
	DepDT        string `json:"dep_dt"`
	ArrDT        string `json:"arr_dt"`
	DurationMin  int    `json:"duration_min"`
	AircraftType string `json:"aircraft_type"`
}

func (w *wireSnapshot) toSnapshot() *model.RosterSnapshot {
	out := &model.RosterSnapshot{
		KPIs:     w.KPIs,
		Insights: w.Insights,
	}
	for _, a := range w.Assignments {
		out.Assignments = append(out.Assignments, model.Assignment{
			CrewID:   a.CrewID,
			FlightID: a.FlightID,
			// The optimizer itself defaults unknown roles to Captain, so
			// its decoder has to match; the index rejects bad roles that
			// enter through any other path.
			Role:         model.ParseRoleLenient(a.Role),
			RawRole:      a.Role,
			DepAirport:   a.DepAirport,
			ArrAirport:   a.ArrAirport,
			DepTime:      parseTimestamp(a.DepDT),
			ArrTime:      parseTimestamp(a.ArrDT),
			DurationMin:  a.DurationMin,
			AircraftType: a.AircraftType,
		})
	}
	return out
}

// parseTimestamp accepts both layouts the optimizer emits: RFC 3339 and the
// space-separated CSV form. A zero time marks the record malformed for the
// index validation downstream.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

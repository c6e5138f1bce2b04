package model

import "time"

// Assignment is one crew seat on one flight, as produced by the optimizer.
// The (CrewID, FlightID) pair is unique within a roster snapshot.
type Assignment struct {
	CrewID       string    `json:"crew_id"`
	FlightID     string    `json:"flight_id"`
	Role         Role      `json:"role"`
	RawRole      string    `json:"-"`
	DepAirport   string    `json:"dep_airport"`
	ArrAirport   string    `json:"arr_airport"`
	DepTime      time.Time `json:"dep_dt"`
	ArrTime      time.Time `json:"arr_dt"`
	DurationMin  int       `json:"duration_min"`
	AircraftType string    `json:"aircraft_type"`
}

// Key returns the pair identity used for diffing and uniqueness checks.
func (a Assignment) Key() AssignmentKey {
	return AssignmentKey{CrewID: a.CrewID, FlightID: a.FlightID}
}

// Day returns the calendar date component of the departure time in the
// timezone the record was generated in. No cross-timezone conversion.
func (a Assignment) Day() string {
	return a.DepTime.Format("2006-01-02")
}

// AssignmentKey identifies an assignment by crew and flight.
type AssignmentKey struct {
	CrewID   string
	FlightID string
}

// Flight describes a scheduled leg independent of crewing.
type Flight struct {
	FlightID     string    `json:"flight_id"`
	DepAirport   string    `json:"dep_airport"`
	ArrAirport   string    `json:"arr_airport"`
	DepTime      time.Time `json:"dep_dt"`
	ArrTime      time.Time `json:"arr_dt"`
	AircraftType string    `json:"aircraft_type"`
}

// Sector returns the "DEP-ARR" pair for the flight.
func (f Flight) Sector() string {
	return f.DepAirport + "-" + f.ArrAirport
}

// DurationMinutes is the scheduled block time in minutes.
func (f Flight) DurationMinutes() int {
	return int(f.ArrTime.Sub(f.DepTime).Minutes())
}

package roster

import (
	"github.com/skylane/rosterops/core/logger"
	"github.com/skylane/rosterops/core/model"
)

// Index holds lookup structures derived from a flat assignment list.
// An Index is built fresh per call and never mutated afterwards, so it may
// be shared by concurrent readers. Callers own any memoization.
type Index struct {
	byCrew   map[string][]model.Assignment
	byFlight map[string][]model.Assignment
	byDay    map[string][]model.Assignment
	total    int
}

// BuildIndex groups assignments by crew, by flight and by departure day in a
// single O(n) pass. The input slice is not mutated. Structurally invalid
// records (missing identifiers or times, negative duration, dep not before
// arr, unrecognized role) are skipped and reported in the returned
// MalformedRecordError list;
// a non-empty list does not invalidate the index built from the good records.
func BuildIndex(assignments []model.Assignment, log logger.Logger) (*Index, []*MalformedRecordError) {
	idx := &Index{
		byCrew:   make(map[string][]model.Assignment),
		byFlight: make(map[string][]model.Assignment),
		byDay:    make(map[string][]model.Assignment),
	}
	var bad []*MalformedRecordError
	for _, a := range assignments {
		if err := validate(a); err != nil {
			bad = append(bad, err)
			if log != nil {
				log.Warnf("skipping assignment: %v", err)
			}
			continue
		}
		idx.byCrew[a.CrewID] = append(idx.byCrew[a.CrewID], a)
		idx.byFlight[a.FlightID] = append(idx.byFlight[a.FlightID], a)
		day := a.Day()
		idx.byDay[day] = append(idx.byDay[day], a)
		idx.total++
	}
	return idx, bad
}

func validate(a model.Assignment) *MalformedRecordError {
	switch {
	case a.CrewID == "":
		return &MalformedRecordError{FlightID: a.FlightID, Reason: "missing crew_id"}
	case a.FlightID == "":
		return &MalformedRecordError{CrewID: a.CrewID, Reason: "missing flight_id"}
	case a.DepTime.IsZero():
		return &MalformedRecordError{CrewID: a.CrewID, FlightID: a.FlightID, Reason: "missing dep_dt"}
	case a.ArrTime.IsZero():
		return &MalformedRecordError{CrewID: a.CrewID, FlightID: a.FlightID, Reason: "missing arr_dt"}
	case !a.DepTime.Before(a.ArrTime):
		return &MalformedRecordError{CrewID: a.CrewID, FlightID: a.FlightID, Reason: "dep_dt not before arr_dt"}
	case a.DurationMin < 0:
		return &MalformedRecordError{CrewID: a.CrewID, FlightID: a.FlightID, Reason: "negative duration"}
	}
	if a.RawRole != "" {
		if _, err := model.ParseRole(a.RawRole); err != nil {
			return &MalformedRecordError{CrewID: a.CrewID, FlightID: a.FlightID, Reason: err.Error()}
		}
	}
	return nil
}

// ByCrew returns the assignments of one crew member.
func (i *Index) ByCrew(crewID string) []model.Assignment { return i.byCrew[crewID] }

// ByFlight returns the assignments covering one flight.
func (i *Index) ByFlight(flightID string) []model.Assignment { return i.byFlight[flightID] }

// ByDay returns the assignments departing on the given YYYY-MM-DD day, in
// the timezone the records were generated in.
func (i *Index) ByDay(day string) []model.Assignment { return i.byDay[day] }

// CrewIDs returns every crew id present in the index.
func (i *Index) CrewIDs() []string {
	ids := make([]string, 0, len(i.byCrew))
	for id := range i.byCrew {
		ids = append(ids, id)
	}
	return ids
}

// FlightIDs returns every flight id present in the index.
func (i *Index) FlightIDs() []string {
	ids := make([]string, 0, len(i.byFlight))
	for id := range i.byFlight {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of indexed (valid) assignments.
func (i *Index) Len() int { return i.total }

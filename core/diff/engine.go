// Package diff compares two roster snapshots and produces the structured
// change set presented after a what-if reoptimization.
package diff

import (
	"fmt"
	"sort"
	"time"

	"github.com/skylane/rosterops/core/model"
	"github.com/skylane/rosterops/core/roster"
)

// Summary aggregates a change set into headline numbers.
type Summary struct {
	TotalChanges       int     `json:"total_changes"`
	AssignmentsRemoved int     `json:"assignments_removed"`
	AssignmentsAdded   int     `json:"assignments_added"`
	CoverageBefore     float64 `json:"coverage_before"`
	CoverageAfter      float64 `json:"coverage_after"`
}

// KPIDelta is the after-minus-before movement of the snapshot KPIs.
type KPIDelta struct {
	Coverage float64 `json:"coverage"`
	AvgHours float64 `json:"avg_hours"`
	Overtime float64 `json:"overtime"`
}

// CrewDelta is one row of the full per-crew comparison table.
type CrewDelta struct {
	BeforeFlightCount int `json:"before_flight_count"`
	AfterFlightCount  int `json:"after_flight_count"`
	NetChange         int `json:"net_change"`
}

// Result is the output of one roster comparison.
type Result struct {
	CrewChanges []model.ChangeRecord `json:"crew_changes"`
	Summary     Summary              `json:"summary"`
	KPIDelta    KPIDelta             `json:"kpi_delta"`
}

// Diff compares a baseline and an after-disruption snapshot. Identity is the
// (crew_id, flight_id) pair: role or time changes on a surviving pair are not
// reported. Both directions are computed by set difference, O(n+m) overall.
// Either snapshot missing is a refused precondition, not an empty diff.
func Diff(before, after *model.RosterSnapshot) (*Result, error) {
	if before == nil || after == nil {
		return nil, roster.ErrNoBaseline
	}
	beforeSet := pairSet(before.Assignments)
	afterSet := pairSet(after.Assignments)

	var changes []model.ChangeRecord
	removed, added := 0, 0
	for _, a := range before.Assignments {
		if _, ok := afterSet[a.Key()]; !ok {
			changes = append(changes, changeRecord(model.ChangeRemoved, a))
			removed++
		}
	}
	for _, a := range after.Assignments {
		if _, ok := beforeSet[a.Key()]; !ok {
			changes = append(changes, changeRecord(model.ChangeAdded, a))
			added++
		}
	}
	sortChanges(changes)

	return &Result{
		CrewChanges: changes,
		Summary: Summary{
			TotalChanges:       removed + added,
			AssignmentsRemoved: removed,
			AssignmentsAdded:   added,
			CoverageBefore:     before.KPIs.CoveragePct,
			CoverageAfter:      after.KPIs.CoveragePct,
		},
		KPIDelta: KPIDelta{
			Coverage: after.KPIs.CoveragePct - before.KPIs.CoveragePct,
			AvgHours: after.KPIs.AvgHours - before.KPIs.AvgHours,
			Overtime: after.KPIs.TotalOvertimeHours - before.KPIs.TotalOvertimeHours,
		},
	}, nil
}

// PerCrewDelta builds the full comparison table covering every crew id that
// appears in either snapshot, including unchanged crews.
func PerCrewDelta(before, after *model.RosterSnapshot) (map[string]CrewDelta, error) {
	if before == nil || after == nil {
		return nil, roster.ErrNoBaseline
	}
	beforeCounts := crewCounts(before.Assignments)
	afterCounts := crewCounts(after.Assignments)
	out := make(map[string]CrewDelta, len(beforeCounts))
	for id, n := range beforeCounts {
		out[id] = CrewDelta{BeforeFlightCount: n, AfterFlightCount: afterCounts[id], NetChange: afterCounts[id] - n}
	}
	for id, n := range afterCounts {
		if _, seen := beforeCounts[id]; !seen {
			out[id] = CrewDelta{AfterFlightCount: n, NetChange: n}
		}
	}
	return out, nil
}

// ChangesByCrew groups a change list by crew id for presentation. The diff
// itself is computed pairwise; grouping is display-only.
func ChangesByCrew(changes []model.ChangeRecord) map[string][]model.ChangeRecord {
	out := make(map[string][]model.ChangeRecord)
	for _, c := range changes {
		out[c.CrewID] = append(out[c.CrewID], c)
	}
	return out
}

func pairSet(assignments []model.Assignment) map[model.AssignmentKey]struct{} {
	set := make(map[model.AssignmentKey]struct{}, len(assignments))
	for _, a := range assignments {
		set[a.Key()] = struct{}{}
	}
	return set
}

func crewCounts(assignments []model.Assignment) map[string]int {
	out := make(map[string]int)
	for _, a := range assignments {
		out[a.CrewID]++
	}
	return out
}

func changeRecord(typ model.ChangeType, a model.Assignment) model.ChangeRecord {
	return model.ChangeRecord{
		Type:          typ,
		CrewID:        a.CrewID,
		FlightID:      a.FlightID,
		Role:          a.Role,
		FlightDetails: fmt.Sprintf("%s-%s %s", a.DepAirport, a.ArrAirport, a.DepTime.Format(time.RFC3339)),
	}
}

func sortChanges(changes []model.ChangeRecord) {
	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].CrewID != changes[j].CrewID {
			return changes[i].CrewID < changes[j].CrewID
		}
		return changes[i].FlightID < changes[j].FlightID
	})
}

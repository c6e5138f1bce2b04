package diff

import (
	"errors"
	"testing"
	"time"

	"github.com/skylane/rosterops/core/model"
	"github.com/skylane/rosterops/core/roster"
)

func snap(kpis model.KPISet, pairs ...[2]string) *model.RosterSnapshot {
	dep := time.Date(2025, 9, 8, 6, 0, 0, 0, time.UTC)
	s := &model.RosterSnapshot{KPIs: kpis}
	for _, p := range pairs {
		s.Assignments = append(s.Assignments, model.Assignment{
			CrewID:      p[0],
			FlightID:    p[1],
			Role:        model.RoleCaptain,
			DepAirport:  "DEL",
			ArrAirport:  "BOM",
			DepTime:     dep,
			ArrTime:     dep.Add(2 * time.Hour),
			DurationMin: 120,
		})
	}
	return s
}

func TestDiffAddedRemoved(t *testing.T) {
	before := snap(model.KPISet{CoveragePct: 95}, [2]string{"C1", "F1"}, [2]string{"C1", "F2"})
	after := snap(model.KPISet{CoveragePct: 92}, [2]string{"C1", "F2"}, [2]string{"C1", "F3"})

	res, err := Diff(before, after)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if res.Summary.TotalChanges != 2 || res.Summary.AssignmentsRemoved != 1 || res.Summary.AssignmentsAdded != 1 {
		t.Fatalf("summary = %+v", res.Summary)
	}
	var removed, added *model.ChangeRecord
	for i := range res.CrewChanges {
		switch res.CrewChanges[i].Type {
		case model.ChangeRemoved:
			removed = &res.CrewChanges[i]
		case model.ChangeAdded:
			added = &res.CrewChanges[i]
		}
	}
	if removed == nil || removed.CrewID != "C1" || removed.FlightID != "F1" {
		t.Errorf("removed = %+v, want C1/F1", removed)
	}
	if added == nil || added.CrewID != "C1" || added.FlightID != "F3" {
		t.Errorf("added = %+v, want C1/F3", added)
	}
	if res.Summary.CoverageBefore != 95 || res.Summary.CoverageAfter != 92 {
		t.Errorf("coverage before/after = %v/%v", res.Summary.CoverageBefore, res.Summary.CoverageAfter)
	}
}

func TestDiffIdentityIsPairNotFields(t *testing.T) {
	before := snap(model.KPISet{}, [2]string{"C1", "F1"})
	after := snap(model.KPISet{}, [2]string{"C1", "F1"})
	// Same pair, different role and time: not a change.
	after.Assignments[0].Role = model.RoleFirstOfficer
	after.Assignments[0].DepTime = after.Assignments[0].DepTime.Add(3 * time.Hour)

	res, err := Diff(before, after)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(res.CrewChanges) != 0 {
		t.Fatalf("field-level changes reported: %+v", res.CrewChanges)
	}
}

func TestDiffSelfIsEmpty(t *testing.T) {
	s := snap(model.KPISet{CoveragePct: 90, AvgHours: 6.5, TotalOvertimeHours: 2},
		[2]string{"C1", "F1"}, [2]string{"C2", "F1"})
	res, err := Diff(s, s)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(res.CrewChanges) != 0 || res.Summary.TotalChanges != 0 {
		t.Errorf("self diff not empty: %+v", res.Summary)
	}
	if res.KPIDelta != (KPIDelta{}) {
		t.Errorf("self diff KPI delta not zero: %+v", res.KPIDelta)
	}
}

func TestDiffSymmetry(t *testing.T) {
	a := snap(model.KPISet{}, [2]string{"C1", "F1"}, [2]string{"C2", "F2"}, [2]string{"C3", "F3"})
	b := snap(model.KPISet{}, [2]string{"C1", "F1"}, [2]string{"C2", "F4"}, [2]string{"C4", "F5"})

	ab, err := Diff(a, b)
	if err != nil {
		t.Fatalf("Diff(a,b): %v", err)
	}
	ba, err := Diff(b, a)
	if err != nil {
		t.Fatalf("Diff(b,a): %v", err)
	}
	if ab.Summary.AssignmentsAdded != ba.Summary.AssignmentsRemoved ||
		ab.Summary.AssignmentsRemoved != ba.Summary.AssignmentsAdded {
		t.Fatalf("asymmetric summaries: %+v vs %+v", ab.Summary, ba.Summary)
	}
	addedAB := pairsOf(ab.CrewChanges, model.ChangeAdded)
	removedBA := pairsOf(ba.CrewChanges, model.ChangeRemoved)
	if len(addedAB) != len(removedBA) {
		t.Fatalf("added(a,b)=%v removed(b,a)=%v", addedAB, removedBA)
	}
	for k := range addedAB {
		if _, ok := removedBA[k]; !ok {
			t.Errorf("pair %v added in (a,b) but not removed in (b,a)", k)
		}
	}
}

func pairsOf(changes []model.ChangeRecord, typ model.ChangeType) map[model.AssignmentKey]struct{} {
	out := make(map[model.AssignmentKey]struct{})
	for _, c := range changes {
		if c.Type == typ {
			out[model.AssignmentKey{CrewID: c.CrewID, FlightID: c.FlightID}] = struct{}{}
		}
	}
	return out
}

func TestDiffKPIDelta(t *testing.T) {
	before := snap(model.KPISet{CoveragePct: 95, AvgHours: 6.0, TotalOvertimeHours: 3.0})
	after := snap(model.KPISet{CoveragePct: 91.5, AvgHours: 6.4, TotalOvertimeHours: 5.5})
	res, err := Diff(before, after)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	want := KPIDelta{Coverage: -3.5, AvgHours: 0.4, Overtime: 2.5}
	if diffAbs(res.KPIDelta.Coverage, want.Coverage) > 1e-9 ||
		diffAbs(res.KPIDelta.AvgHours, want.AvgHours) > 1e-9 ||
		diffAbs(res.KPIDelta.Overtime, want.Overtime) > 1e-9 {
		t.Fatalf("kpi delta = %+v, want %+v", res.KPIDelta, want)
	}
}

func diffAbs(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestDiffNoBaseline(t *testing.T) {
	s := snap(model.KPISet{}, [2]string{"C1", "F1"})
	if _, err := Diff(nil, s); !errors.Is(err, roster.ErrNoBaseline) {
		t.Errorf("Diff(nil, s) err = %v, want ErrNoBaseline", err)
	}
	if _, err := Diff(s, nil); !errors.Is(err, roster.ErrNoBaseline) {
		t.Errorf("Diff(s, nil) err = %v, want ErrNoBaseline", err)
	}
	if _, err := PerCrewDelta(nil, s); !errors.Is(err, roster.ErrNoBaseline) {
		t.Errorf("PerCrewDelta err = %v, want ErrNoBaseline", err)
	}
}

func TestPerCrewDeltaCoversAllCrews(t *testing.T) {
	before := snap(model.KPISet{}, [2]string{"C1", "F1"}, [2]string{"C1", "F2"}, [2]string{"C2", "F3"})
	after := snap(model.KPISet{}, [2]string{"C1", "F2"}, [2]string{"C3", "F4"})
	table, err := PerCrewDelta(before, after)
	if err != nil {
		t.Fatalf("PerCrewDelta: %v", err)
	}
	want := map[string]CrewDelta{
		"C1": {BeforeFlightCount: 2, AfterFlightCount: 1, NetChange: -1},
		"C2": {BeforeFlightCount: 1, AfterFlightCount: 0, NetChange: -1},
		"C3": {BeforeFlightCount: 0, AfterFlightCount: 1, NetChange: 1},
	}
	if len(table) != len(want) {
		t.Fatalf("table size = %d, want %d (%+v)", len(table), len(want), table)
	}
	for id, w := range want {
		if table[id] != w {
			t.Errorf("crew %s delta = %+v, want %+v", id, table[id], w)
		}
	}
}

func TestChangesByCrewGroups(t *testing.T) {
	before := snap(model.KPISet{}, [2]string{"C1", "F1"}, [2]string{"C2", "F2"})
	after := snap(model.KPISet{}, [2]string{"C1", "F3"})
	res, err := Diff(before, after)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	grouped := ChangesByCrew(res.CrewChanges)
	if len(grouped["C1"]) != 2 || len(grouped["C2"]) != 1 {
		t.Fatalf("grouping = %+v", grouped)
	}
}

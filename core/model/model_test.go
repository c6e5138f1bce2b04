package model

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return ts
}

func TestRiskLevelDisruptive(t *testing.T) {
	if RiskNone.Disruptive() || RiskLow.Disruptive() {
		t.Errorf("none/low must not be disruptive")
	}
	if !RiskMedium.Disruptive() || !RiskHigh.Disruptive() {
		t.Errorf("medium/high must be disruptive")
	}
}

func TestFlightSectorAndDuration(t *testing.T) {
	f := Flight{
		FlightID:   "F1",
		DepAirport: "DEL",
		ArrAirport: "BOM",
		DepTime:    mustTime(t, "2025-09-08T06:00:00Z"),
		ArrTime:    mustTime(t, "2025-09-08T08:15:00Z"),
	}
	if f.Sector() != "DEL-BOM" {
		t.Errorf("sector = %s", f.Sector())
	}
	if f.DurationMinutes() != 135 {
		t.Errorf("duration = %d, want 135", f.DurationMinutes())
	}
}

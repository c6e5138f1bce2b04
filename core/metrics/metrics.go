// Package metrics defines the observability interfaces the analytics engine
// reports into. Implementations live under infra/metrics.
package metrics

import "time"

// DiffEvent describes one completed roster comparison.
type DiffEvent struct {
	TotalChanges       int
	AssignmentsAdded   int
	AssignmentsRemoved int
	CoverageDelta      float64
	OvertimeDelta      float64
	Duration           time.Duration
	Time               time.Time
}

// DiffRecorder records roster comparison outcomes.
type DiffRecorder interface {
	RecordDiff(ev DiffEvent) error
}

// SnapshotEvent is recorded whenever a fresh roster snapshot is ingested.
type SnapshotEvent struct {
	Assignments int
	Malformed   int
	CoveragePct float64
	AvgHours    float64
	OvertimeHrs float64
	Baseline    bool
	Time        time.Time
}

// SnapshotRecorder records snapshot ingestion.
type SnapshotRecorder interface {
	RecordSnapshot(ev SnapshotEvent) error
}

// WeatherFetchEvent marks one upstream forecast fetch per airport, noting
// whether the deterministic fallback had to be used.
type WeatherFetchEvent struct {
	Airport  string
	Fallback bool
	Time     time.Time
}

// WeatherRecorder records forecast feed activity.
type WeatherRecorder interface {
	RecordWeatherFetch(ev WeatherFetchEvent) error
}

// DutyEvent is one duty classification, recorded per level for dashboards.
type DutyEvent struct {
	CrewID string
	Level  string
	Hours  float64
	Time   time.Time
}

// DutyRecorder records duty classifications.
type DutyRecorder interface {
	RecordDuty(ev DutyEvent) error
}

// Sink is the full recording surface the service wires up.
type Sink interface {
	DiffRecorder
	SnapshotRecorder
	WeatherRecorder
	DutyRecorder
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) RecordDiff(DiffEvent) error                 { return nil }
func (NopSink) RecordSnapshot(SnapshotEvent) error         { return nil }
func (NopSink) RecordWeatherFetch(WeatherFetchEvent) error { return nil }
func (NopSink) RecordDuty(DutyEvent) error                 { return nil }

var _ Sink = NopSink{}

// Package events defines the payloads published on the internal event bus.
package events

import (
	"github.com/skylane/rosterops/core/diff"
	"github.com/skylane/rosterops/core/model"
)

// SnapshotEvent announces a freshly ingested roster snapshot.
type SnapshotEvent struct {
	Baseline bool
	KPIs     model.KPISet
}

// DiffEvent announces a completed baseline/after comparison.
type DiffEvent struct {
	Result *diff.Result
}

// WeatherAlertEvent announces a day whose affected-flight count crossed zero.
type WeatherAlertEvent struct {
	Date            string
	AffectedFlights int
}

// Package weather buckets per-flight and per-airport risk predictions into
// calendar-day views. It is a read-only projection over an external daily
// forecast feed with a deterministic fallback when the feed is unavailable.
package weather

import (
	"context"
	"time"

	"github.com/skylane/rosterops/core/model"
)

// Metrics are the two daily forecast values the risk mapping consumes.
type Metrics struct {
	PrecipProbabilityMax int
	WindSpeed10mMax      float64
}

// Provider supplies daily forecast metrics per airport. A nil map entry for
// a day, or an error, means the aggregator falls back to deterministic
// synthetic metrics for that airport-day.
type Provider interface {
	// DailySeries returns metrics keyed by YYYY-MM-DD for [start, end].
	DailySeries(ctx context.Context, airport string, start, end time.Time) (map[string]Metrics, error)
}

// FlightSource supplies the scheduled flights the aggregator projects risk
// onto. Typically backed by the current roster snapshot.
type FlightSource interface {
	FlightsBetween(ctx context.Context, start, end time.Time) ([]model.Flight, error)
}

// SnapshotFlights adapts a roster snapshot into a FlightSource. Each distinct
// flight id contributes one flight regardless of how many seats it carries.
type SnapshotFlights struct {
	Snapshot *model.RosterSnapshot
}

// FlightsBetween returns the snapshot's distinct flights departing in range.
func (s SnapshotFlights) FlightsBetween(_ context.Context, start, end time.Time) ([]model.Flight, error) {
	if s.Snapshot == nil {
		return nil, nil
	}
	seen := make(map[string]struct{})
	var out []model.Flight
	for _, a := range s.Snapshot.Assignments {
		if a.DepTime.Before(start) || a.DepTime.After(end) {
			continue
		}
		if _, ok := seen[a.FlightID]; ok {
			continue
		}
		seen[a.FlightID] = struct{}{}
		out = append(out, model.Flight{
			FlightID:     a.FlightID,
			DepAirport:   a.DepAirport,
			ArrAirport:   a.ArrAirport,
			DepTime:      a.DepTime,
			ArrTime:      a.ArrTime,
			AircraftType: a.AircraftType,
		})
	}
	return out, nil
}

package metrics

import coremetrics "github.com/skylane/rosterops/core/metrics"

// MultiSink fans analytics events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordDiff forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordDiff(ev coremetrics.DiffEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordDiff(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSnapshot forwards the event to all sinks.
func (m *MultiSink) RecordSnapshot(ev coremetrics.SnapshotEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSnapshot(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordWeatherFetch forwards the event to all sinks.
func (m *MultiSink) RecordWeatherFetch(ev coremetrics.WeatherFetchEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordWeatherFetch(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordDuty forwards the event to all sinks.
func (m *MultiSink) RecordDuty(ev coremetrics.DutyEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordDuty(ev); err != nil {
			return err
		}
	}
	return nil
}

var _ coremetrics.Sink = (*MultiSink)(nil)

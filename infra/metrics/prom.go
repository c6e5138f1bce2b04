package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/skylane/rosterops/core/metrics"
)

// PromSink records analytics events in Prometheus metrics.
type PromSink struct {
	diffs      *prometheus.CounterVec
	diffSize   prometheus.Histogram
	snapshots  *prometheus.CounterVec
	coverage   prometheus.Gauge
	weather    *prometheus.CounterVec
	dutyLevels *prometheus.CounterVec
}

// NewPromSink registers roster metrics on the default Prometheus registerer.
// The Prometheus server is started separately on cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	diffs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_diff_changes_total",
		Help: "Total roster changes produced by comparisons",
	}, []string{"direction"})
	diffSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roster_diff_total_changes",
		Help:    "Distribution of total changes per comparison",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
	snapshots := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_snapshots_ingested_total",
		Help: "Roster snapshots ingested from the optimizer",
	}, []string{"baseline"})
	coverage := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roster_coverage_pct",
		Help: "Coverage of the most recently ingested snapshot",
	})
	weather := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "weather_fetches_total",
		Help: "Forecast feed fetches per airport outcome",
	}, []string{"fallback"})
	dutyLevels := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "duty_classifications_total",
		Help: "Duty classifications by level",
	}, []string{"level"})

	for _, c := range []prometheus.Collector{diffs, diffSize, snapshots, coverage, weather, dutyLevels} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return &PromSink{
		diffs:      diffs,
		diffSize:   diffSize,
		snapshots:  snapshots,
		coverage:   coverage,
		weather:    weather,
		dutyLevels: dutyLevels,
	}, nil
}

// RecordDiff increments the change counters and observes the diff size.
func (s *PromSink) RecordDiff(ev coremetrics.DiffEvent) error {
	s.diffs.WithLabelValues("added").Add(float64(ev.AssignmentsAdded))
	s.diffs.WithLabelValues("removed").Add(float64(ev.AssignmentsRemoved))
	s.diffSize.Observe(float64(ev.TotalChanges))
	return nil
}

// RecordSnapshot counts the ingested snapshot and tracks coverage.
func (s *PromSink) RecordSnapshot(ev coremetrics.SnapshotEvent) error {
	s.snapshots.WithLabelValues(strconv.FormatBool(ev.Baseline)).Inc()
	s.coverage.Set(ev.CoveragePct)
	return nil
}

// RecordWeatherFetch counts forecast fetches per outcome.
func (s *PromSink) RecordWeatherFetch(ev coremetrics.WeatherFetchEvent) error {
	s.weather.WithLabelValues(strconv.FormatBool(ev.Fallback)).Inc()
	return nil
}

// RecordDuty counts classifications per duty level.
func (s *PromSink) RecordDuty(ev coremetrics.DutyEvent) error {
	s.dutyLevels.WithLabelValues(ev.Level).Inc()
	return nil
}

var _ coremetrics.Sink = (*PromSink)(nil)

package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/skylane/rosterops/core/metrics"
	"github.com/skylane/rosterops/infra/logger"
)

// InfluxSink writes analytics events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	base := strings.TrimSuffix(cfg.InfluxURL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordDiff writes the comparison outcome as a point.
func (s *InfluxSink) RecordDiff(ev coremetrics.DiffEvent) error {
	p := write.NewPointWithMeasurement("roster_diff").
		AddField("total_changes", ev.TotalChanges).
		AddField("added", ev.AssignmentsAdded).
		AddField("removed", ev.AssignmentsRemoved).
		AddField("coverage_delta", ev.CoverageDelta).
		AddField("overtime_delta", ev.OvertimeDelta).
		AddField("duration_ms", ev.Duration.Milliseconds()).
		SetTime(ev.Time)
	return s.write(p)
}

// RecordSnapshot writes the snapshot ingestion as a point.
func (s *InfluxSink) RecordSnapshot(ev coremetrics.SnapshotEvent) error {
	p := write.NewPointWithMeasurement("roster_snapshot").
		AddTag("baseline", strconv.FormatBool(ev.Baseline)).
		AddField("assignments", ev.Assignments).
		AddField("malformed", ev.Malformed).
		AddField("coverage_pct", ev.CoveragePct).
		AddField("avg_hours", ev.AvgHours).
		AddField("overtime_hours", ev.OvertimeHrs).
		SetTime(ev.Time)
	return s.write(p)
}

// RecordWeatherFetch writes one forecast fetch outcome.
func (s *InfluxSink) RecordWeatherFetch(ev coremetrics.WeatherFetchEvent) error {
	p := write.NewPointWithMeasurement("weather_fetch").
		AddTag("airport", ev.Airport).
		AddTag("fallback", strconv.FormatBool(ev.Fallback)).
		AddField("count", 1).
		SetTime(ev.Time)
	return s.write(p)
}

// RecordDuty writes one duty classification.
func (s *InfluxSink) RecordDuty(ev coremetrics.DutyEvent) error {
	p := write.NewPointWithMeasurement("duty_classification").
		AddTag("crew_id", ev.CrewID).
		AddTag("level", ev.Level).
		AddField("hours", ev.Hours).
		SetTime(ev.Time)
	return s.write(p)
}

func (s *InfluxSink) write(p *write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

var _ coremetrics.Sink = (*InfluxSink)(nil)

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apiroster "github.com/skylane/rosterops/api/roster"
	apiweather "github.com/skylane/rosterops/api/weather"
	"github.com/skylane/rosterops/config"
	"github.com/skylane/rosterops/core/diff"
	"github.com/skylane/rosterops/core/events"
	"github.com/skylane/rosterops/core/insights"
	coremetrics "github.com/skylane/rosterops/core/metrics"
	"github.com/skylane/rosterops/core/model"
	coreroster "github.com/skylane/rosterops/core/roster"
	"github.com/skylane/rosterops/core/weather"
	"github.com/skylane/rosterops/infra/logger"
	"github.com/skylane/rosterops/infra/metrics"
	"github.com/skylane/rosterops/infra/notify"
	"github.com/skylane/rosterops/infra/openmeteo"
	"github.com/skylane/rosterops/infra/optimizer"
	"github.com/skylane/rosterops/internal/eventbus"
)

// Service orchestrates the analytics engine around the optimizer boundary:
// snapshot ingestion, diffing, insights, weather projection and the HTTP API.
type Service struct {
	Optimizer *optimizer.Client
	Weather   *weather.Aggregator

	bus         eventbus.EventBus
	log         logger.Logger
	sink        coremetrics.Sink
	publisher   notify.Publisher
	weeklyCap   float64
	apiAddr     string
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink
	switch len(sinks) {
	case 0:
		sink = coremetrics.NopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = metrics.NewMultiSink(sinks...)
	}

	var publisher notify.Publisher = notify.NopPublisher{}
	if cfg.Notify.Enabled {
		p, err := notify.NewPahoPublisher(cfg.Notify)
		if err != nil {
			return nil, fmt.Errorf("notify publisher: %w", err)
		}
		publisher = p
	}

	opt := optimizer.New(cfg.Optimizer)

	var provOpts []openmeteo.Option
	if cfg.Weather.BaseURL != "" {
		provOpts = append(provOpts, openmeteo.WithBaseURL(cfg.Weather.BaseURL))
	}
	if cfg.Weather.TimeoutSeconds > 0 {
		provOpts = append(provOpts, openmeteo.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Weather.TimeoutSeconds) * time.Second,
		}))
	}
	provider := openmeteo.New(provOpts...)
	agg := weather.New(provider, currentFlights{source: opt}, logger.New("weather"), sink)

	return &Service{
		Optimizer:   opt,
		Weather:     agg,
		bus:         eventbus.New(),
		log:         logg,
		sink:        sink,
		publisher:   publisher,
		weeklyCap:   cfg.Insights.WeeklyCapHours,
		apiAddr:     cfg.API.Addr,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Bus exposes the internal event bus for in-process consumers.
func (s *Service) Bus() eventbus.EventBus { return s.bus }

// Compare diffs the baseline roster against the current one, records the
// outcome and broadcasts it.
func (s *Service) Compare(ctx context.Context) (*diff.Result, error) {
	before, err := s.Optimizer.Baseline(ctx)
	if err != nil {
		return nil, err
	}
	after, err := s.Optimizer.Current(ctx)
	if err != nil {
		return nil, err
	}
	s.ingest(before, true)
	s.ingest(after, false)
	return s.diffAndBroadcast(before, after)
}

// Reoptimize runs a what-if disruption against the optimizer and returns the
// resulting change set.
func (s *Service) Reoptimize(ctx context.Context, req model.DisruptionRequest) (*diff.Result, error) {
	out, err := s.Optimizer.Reoptimize(ctx, req)
	if err != nil {
		return nil, err
	}
	if out.Before == nil || out.After == nil {
		return nil, coreroster.ErrNoBaseline
	}
	s.ingest(out.After, false)
	return s.diffAndBroadcast(out.Before, out.After)
}

// OvertimeReport computes the overtime breakdown for the current roster.
func (s *Service) OvertimeReport(ctx context.Context) (*insights.OvertimeReport, error) {
	snap, err := s.Optimizer.Current(ctx)
	if err != nil {
		return nil, err
	}
	idx, _ := coreroster.BuildIndex(snap.Assignments, s.log)
	rep := insights.OvertimeWithCap(idx, nil, s.weeklyCap)
	return &rep, nil
}

// StandbyPlan computes per-day standby suggestions for the current roster.
func (s *Service) StandbyPlan(ctx context.Context) ([]insights.StandbyDay, error) {
	snap, err := s.Optimizer.Current(ctx)
	if err != nil {
		return nil, err
	}
	return insights.StandbySuggestions(snap.Assignments), nil
}

func (s *Service) diffAndBroadcast(before, after *model.RosterSnapshot) (*diff.Result, error) {
	started := time.Now()
	res, err := diff.Diff(before, after)
	if err != nil {
		return nil, err
	}
	if err := s.sink.RecordDiff(coremetrics.DiffEvent{
		TotalChanges:       res.Summary.TotalChanges,
		AssignmentsAdded:   res.Summary.AssignmentsAdded,
		AssignmentsRemoved: res.Summary.AssignmentsRemoved,
		CoverageDelta:      res.KPIDelta.Coverage,
		OvertimeDelta:      res.KPIDelta.Overtime,
		Duration:           time.Since(started),
		Time:               time.Now(),
	}); err != nil {
		s.log.Warnf("record diff: %v", err)
	}
	if err := s.publisher.PublishDiff(res); err != nil {
		s.log.Errorf("publish diff: %v", err)
	}
	s.bus.Publish(events.DiffEvent{Result: res})
	return res, nil
}

// ingest indexes one snapshot and reports its shape to the sinks and the bus.
func (s *Service) ingest(snap *model.RosterSnapshot, baseline bool) {
	if snap == nil {
		return
	}
	idx, bad := coreroster.BuildIndex(snap.Assignments, s.log)
	if err := s.sink.RecordSnapshot(coremetrics.SnapshotEvent{
		Assignments: idx.Len(),
		Malformed:   len(bad),
		CoveragePct: snap.KPIs.CoveragePct,
		AvgHours:    snap.KPIs.AvgHours,
		OvertimeHrs: snap.KPIs.TotalOvertimeHours,
		Baseline:    baseline,
		Time:        time.Now(),
	}); err != nil {
		s.log.Warnf("record snapshot: %v", err)
	}
	for _, id := range idx.CrewIDs() {
		d := coreroster.ClassifyDuty(id, idx)
		if err := s.sink.RecordDuty(coremetrics.DutyEvent{
			CrewID: d.CrewID,
			Level:  d.Level.String(),
			Hours:  d.TotalHours,
			Time:   time.Now(),
		}); err != nil {
			s.log.Warnf("record duty: %v", err)
		}
	}
	s.bus.Publish(events.SnapshotEvent{Baseline: baseline, KPIs: snap.KPIs})
}

// Handler builds the HTTP mux exposing the read-only analytics endpoints.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	apiLog := logger.New("api")
	mux.Handle("/api/roster/duty", apiroster.NewDutyHandler(s.Optimizer, apiLog))
	mux.Handle("/api/roster/staffing", apiroster.NewStaffingHandler(s.Optimizer, apiLog))
	mux.Handle("/api/roster/diff", apiroster.NewDiffHandler(s.Optimizer, apiLog))
	mux.Handle("/api/weather/summary", apiweather.NewSummaryHandler(s.Weather, apiLog))
	mux.Handle("/api/weather/day", apiweather.NewDayHandler(s.Weather, apiLog))
	return mux
}

// Run serves the API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, ":"+s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	srv := &http.Server{Addr: s.apiAddr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Infof("api listening on %s", s.apiAddr)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.publisher.Close()
	s.bus.Close()
	return nil
}

// currentFlights feeds the weather aggregator from the live roster.
type currentFlights struct {
	source *optimizer.Client
}

// FlightsBetween fetches the current snapshot and filters it to the range.
func (f currentFlights) FlightsBetween(ctx context.Context, start, end time.Time) ([]model.Flight, error) {
	snap, err := f.source.Current(ctx)
	if err != nil {
		return nil, err
	}
	return weather.SnapshotFlights{Snapshot: snap}.FlightsBetween(ctx, start, end)
}

package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skylane/rosterops/core/model"
)

type stubProvider struct {
	series map[string]map[string]Metrics
	err    error
	calls  int
}

func (p *stubProvider) DailySeries(_ context.Context, airport string, _, _ time.Time) (map[string]Metrics, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.series[airport], nil
}

type stubFlights struct{ flights []model.Flight }

func (s stubFlights) FlightsBetween(ctx context.Context, start, end time.Time) ([]model.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []model.Flight
	for _, f := range s.flights {
		if !f.DepTime.Before(start) && !f.DepTime.After(end) {
			out = append(out, f)
		}
	}
	return out, nil
}

func flight(id, dep, arr string, t time.Time) model.Flight {
	return model.Flight{FlightID: id, DepAirport: dep, ArrAirport: arr, DepTime: t, ArrTime: t.Add(2 * time.Hour)}
}

func TestMonthSummaryCountsOnlyDisruptive(t *testing.T) {
	day := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{series: map[string]map[string]Metrics{
		"DEL": {"2025-09-08": {PrecipProbabilityMax: 50, WindSpeed10mMax: 10}}, // medium
		"BOM": {"2025-09-08": {PrecipProbabilityMax: 25, WindSpeed10mMax: 10}}, // low
		"BLR": {"2025-09-08": {PrecipProbabilityMax: 5, WindSpeed10mMax: 5}},   // none
	}}
	flights := stubFlights{flights: []model.Flight{
		flight("F1", "DEL", "BOM", day.Add(6*time.Hour)),
		flight("F2", "DEL", "BLR", day.Add(8*time.Hour)),
		flight("F3", "BOM", "BLR", day.Add(9*time.Hour)), // low/none only
	}}
	agg := New(provider, flights, nil, nil)

	sum, err := agg.MonthSummary(context.Background(), day, day)
	if err != nil {
		t.Fatalf("MonthSummary: %v", err)
	}
	if len(sum) != 1 {
		t.Fatalf("days = %d, want 1", len(sum))
	}
	if sum[0].AffectedFlights != 2 {
		t.Fatalf("affected = %d, want 2 (medium flights only)", sum[0].AffectedFlights)
	}
}

func TestMonthSummaryQuietDayNotFlagged(t *testing.T) {
	day := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{series: map[string]map[string]Metrics{
		"DEL": {"2025-09-08": {PrecipProbabilityMax: 25, WindSpeed10mMax: 10}},
		"BOM": {"2025-09-08": {PrecipProbabilityMax: 0, WindSpeed10mMax: 0}},
	}}
	flights := stubFlights{flights: []model.Flight{flight("F1", "DEL", "BOM", day.Add(6 * time.Hour))}}
	agg := New(provider, flights, nil, nil)

	sum, err := agg.MonthSummary(context.Background(), day, day)
	if err != nil {
		t.Fatalf("MonthSummary: %v", err)
	}
	if sum[0].AffectedFlights != 0 {
		t.Fatalf("low/none day flagged: %+v", sum[0])
	}
	if len(sum[0].HighRiskAirports) != 0 {
		t.Fatalf("unexpected high risk airports: %v", sum[0].HighRiskAirports)
	}
}

func TestDayDetailDominantSide(t *testing.T) {
	day := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	provider := &stubProvider{series: map[string]map[string]Metrics{
		"DEL": {"2025-09-08": {PrecipProbabilityMax: 10, WindSpeed10mMax: 5}},  // none
		"BOM": {"2025-09-08": {PrecipProbabilityMax: 80, WindSpeed10mMax: 45}}, // high
	}}
	flights := stubFlights{flights: []model.Flight{flight("F1", "DEL", "BOM", day.Add(6 * time.Hour))}}
	agg := New(provider, flights, nil, nil)

	pred, err := agg.DayDetail(context.Background(), day)
	if err != nil {
		t.Fatalf("DayDetail: %v", err)
	}
	if pred.AffectedCount != 1 {
		t.Fatalf("affected = %d, want 1", pred.AffectedCount)
	}
	af := pred.AffectedFlights[0]
	if af.Level != model.RiskHigh || af.PredictedDelayMin != 45 {
		t.Errorf("affected flight = %+v", af)
	}
	if af.Reason != "Weather risk at arrival airport (BOM)" {
		t.Errorf("reason = %q", af.Reason)
	}
	if len(pred.Airports) != 2 {
		t.Errorf("airport breakdown = %+v", pred.Airports)
	}
}

func TestFallbackIsDeterministic(t *testing.T) {
	day := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	flights := stubFlights{flights: []model.Flight{flight("F1", "DEL", "BOM", day.Add(6 * time.Hour))}}

	failing := &stubProvider{err: errors.New("feed down")}
	agg := New(failing, flights, nil, nil)

	first, err := agg.DayDetail(context.Background(), day)
	if err != nil {
		t.Fatalf("DayDetail: %v", err)
	}
	second, err := agg.DayDetail(context.Background(), day)
	if err != nil {
		t.Fatalf("DayDetail: %v", err)
	}
	if len(first.Airports) != len(second.Airports) {
		t.Fatalf("airport counts differ: %d vs %d", len(first.Airports), len(second.Airports))
	}
	for i := range first.Airports {
		if first.Airports[i] != second.Airports[i] {
			t.Errorf("fallback not reproducible for %s: %+v vs %+v",
				first.Airports[i].Airport, first.Airports[i], second.Airports[i])
		}
	}
}

func TestMonthSummaryCancelledContext(t *testing.T) {
	day := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	flights := stubFlights{flights: []model.Flight{flight("F1", "DEL", "BOM", day.Add(6 * time.Hour))}}
	agg := New(&stubProvider{}, flights, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := agg.MonthSummary(ctx, day, day); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRiskThresholds(t *testing.T) {
	cases := []struct {
		m     Metrics
		level model.RiskLevel
		delay int
	}{
		{Metrics{70, 0}, model.RiskHigh, 45},
		{Metrics{0, 40}, model.RiskHigh, 45},
		{Metrics{40, 0}, model.RiskMedium, 20},
		{Metrics{0, 30}, model.RiskMedium, 20},
		{Metrics{20, 0}, model.RiskLow, 0},
		{Metrics{0, 20}, model.RiskLow, 0},
		{Metrics{19, 19.9}, model.RiskNone, 0},
	}
	for _, tc := range cases {
		level, delay := riskFromMetrics(tc.m)
		if level != tc.level || delay != tc.delay {
			t.Errorf("riskFromMetrics(%+v) = %s/%d, want %s/%d", tc.m, level, delay, tc.level, tc.delay)
		}
	}
}

func TestFallbackMetricsRange(t *testing.T) {
	m1 := fallbackMetrics("DEL", "2025-09-08")
	m2 := fallbackMetrics("DEL", "2025-09-08")
	if m1 != m2 {
		t.Fatalf("fallback not deterministic: %+v vs %+v", m1, m2)
	}
	if m1.PrecipProbabilityMax < 0 || m1.PrecipProbabilityMax > 99 {
		t.Errorf("precip out of range: %d", m1.PrecipProbabilityMax)
	}
	if m1.WindSpeed10mMax < 5 || m1.WindSpeed10mMax > 59 {
		t.Errorf("wind out of range: %v", m1.WindSpeed10mMax)
	}
	if m1 == fallbackMetrics("BOM", "2025-09-08") && m1 == fallbackMetrics("DEL", "2025-09-09") {
		t.Errorf("fallback should vary with airport and date")
	}
}

func TestSnapshotFlightsDedup(t *testing.T) {
	day := time.Date(2025, 9, 8, 6, 0, 0, 0, time.UTC)
	snap := &model.RosterSnapshot{Assignments: []model.Assignment{
		{CrewID: "C1", FlightID: "F1", DepAirport: "DEL", ArrAirport: "BOM", DepTime: day, ArrTime: day.Add(2 * time.Hour)},
		{CrewID: "C2", FlightID: "F1", DepAirport: "DEL", ArrAirport: "BOM", DepTime: day, ArrTime: day.Add(2 * time.Hour)},
		{CrewID: "C3", FlightID: "F2", DepAirport: "BOM", ArrAirport: "DEL", DepTime: day.AddDate(0, 0, 5), ArrTime: day.AddDate(0, 0, 5).Add(2 * time.Hour)},
	}}
	fs := SnapshotFlights{Snapshot: snap}
	got, err := fs.FlightsBetween(context.Background(), day.Add(-time.Hour), day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("FlightsBetween: %v", err)
	}
	if len(got) != 1 || got[0].FlightID != "F1" {
		t.Fatalf("flights = %+v, want only F1", got)
	}
}

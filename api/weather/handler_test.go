package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skylane/rosterops/core/model"
	"github.com/skylane/rosterops/infra/logger"
)

type stubAggregator struct {
	summaries []model.WeatherDaySummary
	detail    *model.WeatherDayPrediction
	err       error
}

func (s *stubAggregator) MonthSummary(context.Context, time.Time, time.Time) ([]model.WeatherDaySummary, error) {
	return s.summaries, s.err
}

func (s *stubAggregator) DayDetail(context.Context, time.Time) (*model.WeatherDayPrediction, error) {
	return s.detail, s.err
}

func TestSummaryHandler(t *testing.T) {
	agg := &stubAggregator{summaries: []model.WeatherDaySummary{
		{Date: "2026-03-01", AffectedFlights: 2, HighRiskAirports: []string{"BOM"}},
		{Date: "2026-03-02", AffectedFlights: 0},
	}}
	h := NewSummaryHandler(agg, logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/weather/summary?start=2026-03-01&end=2026-03-02", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var out []model.WeatherDaySummary
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0].AffectedFlights != 2 {
		t.Fatalf("unexpected output %#v", out)
	}
}

func TestSummaryHandlerBadDates(t *testing.T) {
	h := NewSummaryHandler(&stubAggregator{}, logger.NopLogger{})
	cases := []string{
		"/api/weather/summary",
		"/api/weather/summary?start=2026-03-01",
		"/api/weather/summary?start=03/01/2026&end=2026-03-02",
		"/api/weather/summary?start=2026-03-02&end=2026-03-01",
	}
	for _, url := range cases {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest("GET", url, nil))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", url, rr.Code)
		}
	}
}

func TestDayHandler(t *testing.T) {
	agg := &stubAggregator{detail: &model.WeatherDayPrediction{
		Date: "2026-03-01",
		Airports: []model.AirportRisk{
			{Airport: "BOM", Level: model.RiskHigh, PredictedDelayMin: 45},
		},
		AffectedCount:    1,
		HighRiskAirports: []string{"BOM"},
	}}
	h := NewDayHandler(agg, logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/weather/day?date=2026-03-01", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out model.WeatherDayPrediction
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Date != "2026-03-01" || len(out.Airports) != 1 || out.Airports[0].Level != model.RiskHigh {
		t.Fatalf("unexpected output %#v", out)
	}
}

func TestDayHandlerBadDate(t *testing.T) {
	h := NewDayHandler(&stubAggregator{}, logger.NopLogger{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/weather/day?date=tomorrow", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

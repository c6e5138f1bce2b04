// Package weather exposes the weather risk aggregation as read-only JSON
// endpoints.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/skylane/rosterops/core/model"
	"github.com/skylane/rosterops/core/roster"
	"github.com/skylane/rosterops/infra/logger"
)

const dayFormat = "2006-01-02"

// Aggregator is the subset of core/weather.Aggregator the handlers need.
type Aggregator interface {
	MonthSummary(ctx context.Context, start, end time.Time) ([]model.WeatherDaySummary, error)
	DayDetail(ctx context.Context, date time.Time) (*model.WeatherDayPrediction, error)
}

// NewSummaryHandler returns an HTTP handler exposing per-day risk summaries
// via GET /api/weather/summary?start=YYYY-MM-DD&end=YYYY-MM-DD.
func NewSummaryHandler(agg Aggregator, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		start, err := time.Parse(dayFormat, r.URL.Query().Get("start"))
		if err != nil {
			http.Error(w, "invalid start date", http.StatusBadRequest)
			return
		}
		end, err := time.Parse(dayFormat, r.URL.Query().Get("end"))
		if err != nil {
			http.Error(w, "invalid end date", http.StatusBadRequest)
			return
		}
		if end.Before(start) {
			http.Error(w, "end before start", http.StatusBadRequest)
			return
		}
		summaries, err := agg.MonthSummary(r.Context(), start, end)
		if err != nil {
			writeError(w, err, log)
			return
		}
		writeJSON(w, summaries)
	})
}

// NewDayHandler returns an HTTP handler exposing the full prediction for one
// day via GET /api/weather/day?date=YYYY-MM-DD.
func NewDayHandler(agg Aggregator, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		date, err := time.Parse(dayFormat, r.URL.Query().Get("date"))
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		pred, err := agg.DayDetail(r.Context(), date)
		if err != nil {
			writeError(w, err, log)
			return
		}
		writeJSON(w, pred)
	})
}

func writeError(w http.ResponseWriter, err error, log logger.Logger) {
	if errors.Is(err, roster.ErrUpstreamUnavailable) {
		http.Error(w, err.Error(), http.StatusBadGateway)
	} else {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
	log.Errorf("weather api: %v", err)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

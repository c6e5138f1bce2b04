package weather

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/skylane/rosterops/core/logger"
	"github.com/skylane/rosterops/core/metrics"
	"github.com/skylane/rosterops/core/model"
)

const dayFormat = "2006-01-02"

// Aggregator turns the upstream forecast feed into calendar summaries and
// day-detail views. It holds no state between calls.
type Aggregator struct {
	provider Provider
	flights  FlightSource
	log      logger.Logger
	sink     metrics.WeatherRecorder
}

// New creates an Aggregator. The sink may be nil.
func New(provider Provider, flights FlightSource, log logger.Logger, sink metrics.WeatherRecorder) *Aggregator {
	return &Aggregator{provider: provider, flights: flights, log: log, sink: sink}
}

// MonthSummary returns one entry per date in [start, end]. A day counts a
// flight as affected only at medium or high risk; low/none never flags a day.
func (a *Aggregator) MonthSummary(ctx context.Context, start, end time.Time) ([]model.WeatherDaySummary, error) {
	preds, err := a.predictRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]model.WeatherDaySummary, 0, len(preds))
	for _, p := range preds {
		out = append(out, model.WeatherDaySummary{
			Date:             p.Date,
			AffectedFlights:  p.AffectedCount,
			HighRiskAirports: p.HighRiskAirports,
		})
	}
	return out, nil
}

// DayDetail returns the full per-airport breakdown and affected-flight list
// for a single day.
func (a *Aggregator) DayDetail(ctx context.Context, date time.Time) (*model.WeatherDayPrediction, error) {
	preds, err := a.predictRange(ctx, date, date)
	if err != nil {
		return nil, err
	}
	if len(preds) == 0 {
		day := date.Format(dayFormat)
		return &model.WeatherDayPrediction{Date: day}, nil
	}
	return &preds[0], nil
}

func (a *Aggregator) predictRange(ctx context.Context, start, end time.Time) ([]model.WeatherDayPrediction, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("end %s before start %s", end.Format(dayFormat), start.Format(dayFormat))
	}
	rangeEnd := end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	flights, err := a.flights.FlightsBetween(ctx, start, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("flight source: %w", err)
	}

	flightsByDay := make(map[string][]model.Flight)
	airports := make(map[string]struct{})
	for _, f := range flights {
		day := f.DepTime.Format(dayFormat)
		flightsByDay[day] = append(flightsByDay[day], f)
		if f.DepAirport != "" {
			airports[f.DepAirport] = struct{}{}
		}
		if f.ArrAirport != "" {
			airports[f.ArrAirport] = struct{}{}
		}
	}

	series := a.collectSeries(ctx, airports, start, end)

	var out []model.WeatherDayPrediction
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		day := d.Format(dayFormat)
		out = append(out, a.predictDay(day, flightsByDay[day], series))
	}
	return out, nil
}

// collectSeries fetches the forecast series for each airport. Feed failures
// are logged and leave the airport to the deterministic fallback.
func (a *Aggregator) collectSeries(ctx context.Context, airports map[string]struct{}, start, end time.Time) map[string]map[string]Metrics {
	out := make(map[string]map[string]Metrics, len(airports))
	for ap := range airports {
		s, err := a.provider.DailySeries(ctx, ap, start, end)
		if err != nil {
			if a.log != nil {
				a.log.Warnf("forecast fetch %s: %v, using fallback", ap, err)
			}
			a.record(ap, false)
			continue
		}
		a.record(ap, true)
		out[ap] = s
	}
	return out
}

func (a *Aggregator) record(airport string, ok bool) {
	if a.sink == nil {
		return
	}
	_ = a.sink.RecordWeatherFetch(metrics.WeatherFetchEvent{
		Airport:  airport,
		Fallback: !ok,
		Time:     time.Now(),
	})
}

func (a *Aggregator) predictDay(day string, flights []model.Flight, series map[string]map[string]Metrics) model.WeatherDayPrediction {
	airports := make(map[string]struct{})
	for _, f := range flights {
		if f.DepAirport != "" {
			airports[f.DepAirport] = struct{}{}
		}
		if f.ArrAirport != "" {
			airports[f.ArrAirport] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(airports))
	for ap := range airports {
		sorted = append(sorted, ap)
	}
	sort.Strings(sorted)

	risks := make([]model.AirportRisk, 0, len(sorted))
	byAirport := make(map[string]model.AirportRisk, len(sorted))
	var highRisk []string
	for _, ap := range sorted {
		m, ok := series[ap][day]
		if !ok {
			m = fallbackMetrics(ap, day)
		}
		level, delay := riskFromMetrics(m)
		r := model.AirportRisk{
			Airport:              ap,
			Level:                level,
			PrecipProbabilityMax: m.PrecipProbabilityMax,
			WindSpeed10mMax:      m.WindSpeed10mMax,
			PredictedDelayMin:    delay,
		}
		risks = append(risks, r)
		byAirport[ap] = r
		if level.Disruptive() {
			highRisk = append(highRisk, ap)
		}
	}

	var affected []model.AffectedFlight
	for _, f := range flights {
		dep := byAirport[f.DepAirport]
		arr := byAirport[f.ArrAirport]
		side, chosen := "departure", dep
		if arr.Level > dep.Level {
			side, chosen = "arrival", arr
		}
		if !chosen.Level.Disruptive() {
			continue
		}
		affected = append(affected, model.AffectedFlight{
			FlightID:          f.FlightID,
			DepAirport:        f.DepAirport,
			ArrAirport:        f.ArrAirport,
			DepTime:           f.DepTime,
			Level:             chosen.Level,
			PredictedDelayMin: chosen.PredictedDelayMin,
			Reason:            fmt.Sprintf("Weather risk at %s airport (%s)", side, chosen.Airport),
		})
	}

	return model.WeatherDayPrediction{
		Date:             day,
		Airports:         risks,
		AffectedFlights:  affected,
		AffectedCount:    len(affected),
		HighRiskAirports: highRisk,
	}
}

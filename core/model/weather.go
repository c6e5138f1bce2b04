package model

import "time"

// RiskLevel is a coarse weather-impact severity bucket.
type RiskLevel int

const (
	RiskNone RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
)

// String returns the lowercase wire spelling of the level.
func (l RiskLevel) String() string {
	switch l {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler so levels serialize as their
// wire spelling in JSON.
func (l RiskLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText parses the wire spelling back into a level. Unknown values
// decode as RiskNone.
func (l *RiskLevel) UnmarshalText(b []byte) error {
	switch string(b) {
	case "low":
		*l = RiskLow
	case "medium":
		*l = RiskMedium
	case "high":
		*l = RiskHigh
	default:
		*l = RiskNone
	}
	return nil
}

// Disruptive reports whether the level is severe enough to count a flight
// as affected (medium or high, never low/none).
func (l RiskLevel) Disruptive() bool {
	return l >= RiskMedium
}

// AirportRisk is the per-airport weather risk for one calendar day.
type AirportRisk struct {
	Airport              string    `json:"airport"`
	Level                RiskLevel `json:"risk_level"`
	PrecipProbabilityMax int       `json:"precip_probability_max"`
	WindSpeed10mMax      float64   `json:"wind_speed_10m_max"`
	PredictedDelayMin    int       `json:"predicted_delay_min"`
}

// AffectedFlight is one flight predicted to be disrupted by weather.
type AffectedFlight struct {
	FlightID          string    `json:"flight_id"`
	DepAirport        string    `json:"dep_airport"`
	ArrAirport        string    `json:"arr_airport"`
	DepTime           time.Time `json:"dep_dt"`
	Level             RiskLevel `json:"risk_level"`
	PredictedDelayMin int       `json:"predicted_delay_minutes"`
	Reason            string    `json:"reason"`
}

// WeatherDayPrediction is the full per-day view of weather risk.
type WeatherDayPrediction struct {
	Date             string           `json:"date"` // YYYY-MM-DD
	Airports         []AirportRisk    `json:"airports"`
	AffectedFlights  []AffectedFlight `json:"affected_flights_detail"`
	AffectedCount    int              `json:"affected_flights"`
	HighRiskAirports []string         `json:"high_risk_airports"`
}

// WeatherDaySummary is the calendar cell for one day in a month view. A day
// is flagged iff AffectedFlights > 0.
type WeatherDaySummary struct {
	Date             string   `json:"date"`
	AffectedFlights  int      `json:"affected_flights"`
	HighRiskAirports []string `json:"high_risk_airports"`
}

// Package openmeteo implements the weather.Provider interface on top of the
// Open-Meteo daily forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/skylane/rosterops/core/roster"
	"github.com/skylane/rosterops/core/weather"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Coord is an airport location.
type Coord struct {
	Lat float64
	Lon float64
}

// AirportCoords maps IATA codes to coordinates for the operated network.
var AirportCoords = map[string]Coord{
	"DEL": {28.5562, 77.1000},
	"BOM": {19.0896, 72.8656},
	"BLR": {13.1989, 77.7063},
	"HYD": {17.2403, 78.4294},
	"CCU": {22.6547, 88.4467},
	"MAA": {12.9941, 80.1709},
	"PNQ": {18.5793, 73.9089},
	"GOI": {15.3800, 73.8310},
	"GOX": {15.7239, 73.7614},
	"AMD": {23.0772, 72.6347},
	"COK": {10.1518, 76.4019},
	"TRV": {8.4821, 76.9207},
	"LKO": {26.7606, 80.8893},
	"PAT": {25.5913, 85.0870},
	"BBI": {20.2520, 85.8178},
	"NAG": {21.0922, 79.0472},
	"GAU": {26.1061, 91.5859},
	"SXR": {33.9871, 74.7743},
	"IXC": {30.6735, 76.7885},
	"JAI": {26.8242, 75.8122},
	"BHO": {23.2875, 77.3374},
	"BDQ": {22.3362, 73.2263},
	"RPR": {21.1804, 81.7388},
	"VNS": {25.4524, 82.8593},
}

// Client fetches daily forecast metrics per airport.
type Client struct {
	baseURL string
	http    *http.Client
	coords  map[string]Coord
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCoords overrides the airport coordinate table.
func WithCoords(coords map[string]Coord) Option {
	return func(c *Client) { c.coords = coords }
}

// New creates a Client with a 10 second request timeout.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		coords:  AirportCoords,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type dailyResponse struct {
	Daily struct {
		Time                 []string  `json:"time"`
		PrecipProbabilityMax []float64 `json:"precipitation_probability_max"`
		WindSpeed10mMax      []float64 `json:"wind_speed_10m_max"`
	} `json:"daily"`
}

// DailySeries fetches precipitation_probability_max and wind_speed_10m_max
// per day for the airport. Unknown airports and transport failures return
// ErrUpstreamUnavailable so the aggregator can fall back deterministically.
func (c *Client) DailySeries(ctx context.Context, airport string, start, end time.Time) (map[string]weather.Metrics, error) {
	coord, ok := c.coords[airport]
	if !ok {
		return nil, fmt.Errorf("no coordinates for %s: %w", airport, roster.ErrUpstreamUnavailable)
	}
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", coord.Lat))
	q.Set("longitude", fmt.Sprintf("%.4f", coord.Lon))
	q.Set("daily", "precipitation_probability_max,wind_speed_10m_max")
	q.Set("timezone", "auto")
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %v: %w", err, roster.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code %d, body %s: %w", resp.StatusCode, body, roster.ErrUpstreamUnavailable)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var decoded dailyResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := make(map[string]weather.Metrics, len(decoded.Daily.Time))
	for i, day := range decoded.Daily.Time {
		m := weather.Metrics{}
		if i < len(decoded.Daily.PrecipProbabilityMax) {
			m.PrecipProbabilityMax = int(decoded.Daily.PrecipProbabilityMax[i])
		}
		if i < len(decoded.Daily.WindSpeed10mMax) {
			m.WindSpeed10mMax = decoded.Daily.WindSpeed10mMax[i]
		}
		out[day] = m
	}
	return out, nil
}

var _ weather.Provider = (*Client)(nil)

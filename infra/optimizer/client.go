// Package optimizer is the HTTP client for the external crew-rostering
// optimizer service. The engine never reimplements the optimizer; it only
// consumes the snapshots it produces.
package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skylane/rosterops/core/model"
	"github.com/skylane/rosterops/core/roster"
	"github.com/skylane/rosterops/infra/logger"
)

// Config holds the optimizer endpoint settings. The default timeout is
// multi-minute because an optimization run can legitimately take that long.
type Config struct {
	BaseURL        string  `json:"base_url"`
	TimeoutSeconds int     `json:"timeout_seconds"`
	MaxSolveTime   float64 `json:"max_solve_time"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 300
	}
	if c.MaxSolveTime == 0 {
		c.MaxSolveTime = 30
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("optimizer base_url is required")
	}
	return nil
}

// Client talks to the optimizer service.
type Client struct {
	cfg  Config
	http *http.Client
	log  logger.Logger
}

// New creates a Client from the configuration.
func New(cfg Config) *Client {
	cfg.SetDefaults()
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:  logger.New("optimizer-client"),
	}
}

// OptimizeRequest selects the window and objective weights for a run.
type OptimizeRequest struct {
	StartDate string             `json:"start_date,omitempty"`
	EndDate   string             `json:"end_date,omitempty"`
	Weights   map[string]float64 `json:"weights,omitempty"`
	MaxTime   float64            `json:"max_time,omitempty"`
}

// ReoptimizeResult carries both sides of a what-if run.
type ReoptimizeResult struct {
	Before *model.RosterSnapshot
	After  *model.RosterSnapshot
}

// Optimize runs a full optimization and returns the resulting snapshot,
// which the service treats as the new baseline.
func (c *Client) Optimize(ctx context.Context, req OptimizeRequest) (*model.RosterSnapshot, error) {
	if req.MaxTime == 0 {
		req.MaxTime = c.cfg.MaxSolveTime
	}
	var resp struct {
		Success bool         `json:"success"`
		Error   string       `json:"error"`
		Result  wireSnapshot `json:"result"`
	}
	if err := c.post(ctx, "/api/optimize", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("optimizer rejected request: %s", resp.Error)
	}
	return resp.Result.toSnapshot(), nil
}

// Reoptimize applies a disruption set to the current baseline. The request
// is passed through unchanged; the optimizer owns its interpretation.
func (c *Client) Reoptimize(ctx context.Context, req model.DisruptionRequest) (*ReoptimizeResult, error) {
	var resp struct {
		Success bool          `json:"success"`
		Error   string        `json:"error"`
		Before  *wireSnapshot `json:"before"`
		After   *wireSnapshot `json:"after"`
	}
	if err := c.post(ctx, "/api/reoptimize", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("optimizer rejected disruption: %s", resp.Error)
	}
	out := &ReoptimizeResult{}
	if resp.Before != nil {
		out.Before = resp.Before.toSnapshot()
	}
	if resp.After != nil {
		out.After = resp.After.toSnapshot()
	}
	return out, nil
}

// Baseline fetches the baseline roster, if one has been established.
func (c *Client) Baseline(ctx context.Context) (*model.RosterSnapshot, error) {
	return c.roster(ctx, "/api/roster/baseline")
}

// Current fetches the most recent roster.
func (c *Client) Current(ctx context.Context) (*model.RosterSnapshot, error) {
	return c.roster(ctx, "/api/roster/current")
}

func (c *Client) roster(ctx context.Context, path string) (*model.RosterSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	var resp struct {
		Success bool          `json:"success"`
		Error   string        `json:"error"`
		Roster  *wireSnapshot `json:"roster"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Roster == nil {
		return nil, fmt.Errorf("%s: %w", resp.Error, roster.ErrNoBaseline)
	}
	return resp.Roster.toSnapshot(), nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("optimizer request: %v: %w", err, roster.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("unexpected status code %d, body %s: %w", resp.StatusCode, body, roster.ErrUpstreamUnavailable)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

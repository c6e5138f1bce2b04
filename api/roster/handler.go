// Package roster exposes the roster analytics as read-only JSON endpoints.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skylane/rosterops/core/diff"
	"github.com/skylane/rosterops/core/model"
	coreroster "github.com/skylane/rosterops/core/roster"
	"github.com/skylane/rosterops/infra/logger"
)

// SnapshotSource yields the two roster snapshots held by the optimizer
// service. Satisfied by infra/optimizer.Client.
type SnapshotSource interface {
	Baseline(ctx context.Context) (*model.RosterSnapshot, error)
	Current(ctx context.Context) (*model.RosterSnapshot, error)
}

// NewDutyHandler returns an HTTP handler exposing duty summaries via
// GET /api/roster/duty. An optional crew_id query restricts the response to
// one crew member.
func NewDutyHandler(source SnapshotSource, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		idx, ok := currentIndex(w, r, source, log)
		if !ok {
			return
		}
		crewIDs := idx.CrewIDs()
		if id := r.URL.Query().Get("crew_id"); id != "" {
			crewIDs = []string{id}
		}
		summaries := make([]coreroster.DutySummary, 0, len(crewIDs))
		for _, id := range crewIDs {
			summaries = append(summaries, coreroster.ClassifyDuty(id, idx))
		}
		writeJSON(w, summaries)
	})
}

// staffingEntry reports the composition check outcome for one flight.
type staffingEntry struct {
	FlightID     string `json:"flight_id"`
	Seats        int    `json:"seats"`
	FullyStaffed bool   `json:"fully_staffed"`
}

// NewStaffingHandler returns an HTTP handler exposing composition checks via
// GET /api/roster/staffing. An optional flight_id query restricts the
// response to one flight.
func NewStaffingHandler(source SnapshotSource, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		idx, ok := currentIndex(w, r, source, log)
		if !ok {
			return
		}
		flightIDs := idx.FlightIDs()
		if id := r.URL.Query().Get("flight_id"); id != "" {
			flightIDs = []string{id}
		}
		entries := make([]staffingEntry, 0, len(flightIDs))
		for _, id := range flightIDs {
			entries = append(entries, staffingEntry{
				FlightID:     id,
				Seats:        len(idx.ByFlight(id)),
				FullyStaffed: coreroster.IsFullyStaffed(id, idx),
			})
		}
		writeJSON(w, entries)
	})
}

// NewDiffHandler returns an HTTP handler comparing the baseline roster against
// the current one via GET /api/roster/diff.
func NewDiffHandler(source SnapshotSource, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		before, err := source.Baseline(r.Context())
		if err != nil {
			writeSourceError(w, err, log)
			return
		}
		after, err := source.Current(r.Context())
		if err != nil {
			writeSourceError(w, err, log)
			return
		}
		res, err := diff.Diff(before, after)
		if err != nil {
			writeSourceError(w, err, log)
			return
		}
		writeJSON(w, res)
	})
}

func currentIndex(w http.ResponseWriter, r *http.Request, source SnapshotSource, log logger.Logger) (*coreroster.Index, bool) {
	snap, err := source.Current(r.Context())
	if err != nil {
		writeSourceError(w, err, log)
		return nil, false
	}
	idx, bad := coreroster.BuildIndex(snap.Assignments, log)
	if len(bad) > 0 {
		log.Warnf("current snapshot carries %d malformed records", len(bad))
	}
	return idx, true
}

func writeSourceError(w http.ResponseWriter, err error, log logger.Logger) {
	switch {
	case errors.Is(err, coreroster.ErrNoBaseline):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, coreroster.ErrUpstreamUnavailable):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
	log.Errorf("roster api: %v", err)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

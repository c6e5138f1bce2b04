package roster

import (
	"errors"
	"fmt"
)

// ErrNoBaseline is returned when a comparison is attempted before any
// baseline roster has been established.
var ErrNoBaseline = errors.New("no baseline roster established")

// ErrUpstreamUnavailable marks a failed fetch from an external collaborator
// (optimizer or weather feed). The caller owns the retry policy.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// MalformedRecordError reports a single structurally invalid input record.
// The record is skipped; processing of the remaining records continues.
type MalformedRecordError struct {
	CrewID   string
	FlightID string
	Reason   string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed assignment crew=%s flight=%s: %s", e.CrewID, e.FlightID, e.Reason)
}

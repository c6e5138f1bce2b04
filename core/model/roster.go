package model

// KPISet carries the optimizer-computed quality indicators of a snapshot.
type KPISet struct {
	CoveragePct        float64 `json:"coverage_pct"`
	AvgHours           float64 `json:"avg_hours"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`
}

// RosterSnapshot is a complete crew-to-flight assignment produced by the
// optimizer at one point in time. Snapshots are immutable; the analytics
// engine only derives fresh read-only structures from them.
type RosterSnapshot struct {
	Assignments []Assignment   `json:"assignments"`
	KPIs        KPISet         `json:"kpis"`
	Insights    map[string]any `json:"insights,omitempty"`
}

// ChangeType marks the direction of a roster change.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
)

// ChangeRecord is the atomic unit of a roster diff: one (crew, flight) pair
// that is present in exactly one of the two snapshots.
type ChangeRecord struct {
	Type          ChangeType `json:"type"`
	CrewID        string     `json:"crew_id"`
	FlightID      string     `json:"flight_id"`
	Role          Role       `json:"role"`
	FlightDetails string     `json:"flight_details"`
}

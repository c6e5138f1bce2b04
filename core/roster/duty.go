package roster

// DutyLevel classifies a crew member's workload over the analyzed period.
type DutyLevel int

const (
	DutyLow DutyLevel = iota
	DutyMedium
	DutyHigh
)

// String returns the display name of the level.
func (l DutyLevel) String() string {
	switch l {
	case DutyHigh:
		return "High"
	case DutyMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// MarshalText renders the level by name in JSON payloads.
func (l DutyLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText parses the level name back. Unknown values decode as DutyLow.
func (l *DutyLevel) UnmarshalText(b []byte) error {
	switch string(b) {
	case "High":
		*l = DutyHigh
	case "Medium":
		*l = DutyMedium
	default:
		*l = DutyLow
	}
	return nil
}

// DutySummary is the computed duty load of one crew member.
type DutySummary struct {
	CrewID       string    `json:"crew_id"`
	TotalMinutes int       `json:"total_minutes"`
	TotalHours   float64   `json:"total_hours"`
	FlightCount  int       `json:"flight_count"`
	Level        DutyLevel `json:"level"`
}

// ClassifyDuty sums the crew member's scheduled minutes and buckets the
// workload. The high test must run before the medium test: both use open
// comparisons, so an exactly-8h crew is Medium, not High.
func ClassifyDuty(crewID string, idx *Index) DutySummary {
	assignments := idx.ByCrew(crewID)
	total := 0
	for _, a := range assignments {
		total += a.DurationMin
	}
	hours := float64(total) / 60.0
	level := DutyLow
	if hours > 8 {
		level = DutyHigh
	} else if hours > 6 {
		level = DutyMedium
	}
	return DutySummary{
		CrewID:       crewID,
		TotalMinutes: total,
		TotalHours:   hours,
		FlightCount:  len(assignments),
		Level:        level,
	}
}

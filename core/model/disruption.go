package model

// FlightDisruption is one delayed or cancelled flight in a what-if request.
type FlightDisruption struct {
	FlightID     string `json:"flight_id"`
	Type         string `json:"type"` // "delay" or "cancellation"
	DelayMinutes int    `json:"delay_minutes,omitempty"`
	Note         string `json:"note,omitempty"`
}

// CrewSickness marks a crew member unavailable on a given date.
type CrewSickness struct {
	CrewID   string `json:"crew_id"`
	SickDate string `json:"sick_date"` // YYYY-MM-DD
	Note     string `json:"note,omitempty"`
}

// DisruptionRequest is passed through unchanged to the optimizer's
// reoptimize endpoint. The engine does not validate or transform it.
type DisruptionRequest struct {
	FlightDisruptions []FlightDisruption `json:"flight_disruptions"`
	CrewSickness      []CrewSickness     `json:"crew_sickness"`
}

// Empty reports whether the request carries no disruptions at all.
func (r DisruptionRequest) Empty() bool {
	return len(r.FlightDisruptions) == 0 && len(r.CrewSickness) == 0
}

package model

import "strings"

// CrewMember is a roster participant as loaded by the optimizer service.
type CrewMember struct {
	CrewID           string  `json:"crew_id"`
	Name             string  `json:"name"`
	Role             Role    `json:"role"`
	Base             string  `json:"base"`
	QualifiedTypes   string  `json:"qualified_types"`
	WeeklyMaxDutyHrs float64 `json:"weekly_max_duty_hrs"`
	LeaveStatus      string  `json:"leave_status"`
	SCCMCertified    bool    `json:"sccm_certified"`
	ExperienceMonths int     `json:"experience_months"`
}

// QualifiedFor reports whether the member holds a type rating for the
// aircraft. Qualified types come pipe-separated, e.g. "A320|A321".
func (c CrewMember) QualifiedFor(acType string) bool {
	if c.QualifiedTypes == "" {
		return false
	}
	for _, t := range strings.Split(c.QualifiedTypes, "|") {
		if t == acType {
			return true
		}
	}
	return false
}

// Available reports whether the member can be rostered at all.
func (c CrewMember) Available() bool {
	return c.LeaveStatus == "" || c.LeaveStatus == "Available"
}

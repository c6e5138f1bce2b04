package roster

import "github.com/skylane/rosterops/core/model"

// requiredComplement is the fixed crew complement for a fully staffed
// flight: 1 captain, 1 first officer, 1 senior crew, 4 cabin crew.
var requiredComplement = map[model.Role]int{
	model.RoleCaptain:      1,
	model.RoleFirstOfficer: 1,
	model.RoleSeniorCrew:   1,
	model.RoleCabinCrew:    4,
}

const requiredSeats = 7

// IsFullyStaffed reports whether the flight carries exactly the required
// complement. Any other total, or any other role distribution even at the
// right total, fails the check.
func IsFullyStaffed(flightID string, idx *Index) bool {
	assignments := idx.ByFlight(flightID)
	if len(assignments) != requiredSeats {
		return false
	}
	counts := make(map[model.Role]int, len(requiredComplement))
	for _, a := range assignments {
		counts[a.Role]++
	}
	for role, need := range requiredComplement {
		if counts[role] != need {
			return false
		}
	}
	return true
}

// FullyStaffedFlights filters the index down to flights ready for display.
func FullyStaffedFlights(idx *Index) []string {
	var out []string
	for _, id := range idx.FlightIDs() {
		if IsFullyStaffed(id, idx) {
			out = append(out, id)
		}
	}
	return out
}

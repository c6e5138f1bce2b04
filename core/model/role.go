package model

import "fmt"

// Role identifies a crew position on a flight.
type Role int

const (
	RoleCaptain Role = iota
	RoleFirstOfficer
	RoleSeniorCrew
	RoleCabinCrew
)

// String returns the short canonical tag for the role.
func (r Role) String() string {
	switch r {
	case RoleCaptain:
		return "Captain"
	case RoleFirstOfficer:
		return "FO"
	case RoleSeniorCrew:
		return "SC"
	case RoleCabinCrew:
		return "CC"
	default:
		return "unknown"
	}
}

// MarshalText writes the canonical tag, so roles appear as strings in JSON.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts the canonical tags and the synonym spellings that
// ParseRole does, and rejects anything else.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRole normalizes the two accepted spellings per role to the canonical
// tag. Unrecognized input is an error; upstream records carrying odd role
// strings must be rejected, not silently treated as captains.
func ParseRole(raw string) (Role, error) {
	switch raw {
	case "Captain":
		return RoleCaptain, nil
	case "FO", "First Officer":
		return RoleFirstOfficer, nil
	case "SC", "Senior Crew", "Senior Cabin Crew":
		return RoleSeniorCrew, nil
	case "CC", "Cabin Crew", "Junior Cabin Crew":
		return RoleCabinCrew, nil
	default:
		return RoleCaptain, fmt.Errorf("unrecognized role %q", raw)
	}
}

// ParseRoleLenient mirrors the optimizer's own normalization, which maps any
// unknown role string to Captain. Only the optimizer response decoder should
// use it; everything downstream goes through ParseRole.
func ParseRoleLenient(raw string) Role {
	r, err := ParseRole(raw)
	if err != nil {
		return RoleCaptain
	}
	return r
}

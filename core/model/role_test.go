package model

import (
	"encoding/json"
	"testing"
)

func TestParseRoleSynonyms(t *testing.T) {
	cases := map[string]Role{
		"Captain":           RoleCaptain,
		"First Officer":     RoleFirstOfficer,
		"FO":                RoleFirstOfficer,
		"Senior Crew":       RoleSeniorCrew,
		"Senior Cabin Crew": RoleSeniorCrew,
		"SC":                RoleSeniorCrew,
		"Cabin Crew":        RoleCabinCrew,
		"Junior Cabin Crew": RoleCabinCrew,
		"CC":                RoleCabinCrew,
	}
	for raw, want := range cases {
		got, err := ParseRole(raw)
		if err != nil {
			t.Errorf("ParseRole(%q) error: %v", raw, err)
			continue
		}
		if got != want {
			t.Errorf("ParseRole(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestParseRoleUnknown(t *testing.T) {
	if _, err := ParseRole("Purser"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	// The optimizer's own normalization falls back to Captain; the lenient
	// variant mirrors that for its decoder only.
	if got := ParseRoleLenient("Purser"); got != RoleCaptain {
		t.Fatalf("ParseRoleLenient = %s, want Captain", got)
	}
}

func TestRoleJSON(t *testing.T) {
	for _, r := range []Role{RoleCaptain, RoleFirstOfficer, RoleSeniorCrew, RoleCabinCrew} {
		raw, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal %s: %v", r, err)
		}
		if want := `"` + r.String() + `"`; string(raw) != want {
			t.Errorf("marshal %s = %s, want %s", r, raw, want)
		}
		var back Role
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if back != r {
			t.Errorf("round trip %s = %s", r, back)
		}
	}
	var r Role
	if err := json.Unmarshal([]byte(`"First Officer"`), &r); err != nil || r != RoleFirstOfficer {
		t.Errorf("synonym decode = %s, err %v", r, err)
	}
	if err := json.Unmarshal([]byte(`"Purser"`), &r); err == nil {
		t.Errorf("expected error decoding unknown role")
	}
}

func TestRoleString(t *testing.T) {
	if RoleFirstOfficer.String() != "FO" || RoleSeniorCrew.String() != "SC" {
		t.Fatalf("unexpected role tags: %s %s", RoleFirstOfficer, RoleSeniorCrew)
	}
}

// Package insights derives post-roster views that the optimizer does not
// ship in its KPI block: per-crew overtime against weekly caps, fleet-wide
// duty statistics and standby staffing suggestions.
package insights

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/skylane/rosterops/core/model"
	"github.com/skylane/rosterops/core/roster"
)

// DefaultWeeklyCapHours applies when a crew member carries no weekly cap.
const DefaultWeeklyCapHours = 65.0

// CrewOvertime is one row of the overtime breakdown, sorted by overtime
// descending.
type CrewOvertime struct {
	CrewID        string  `json:"crew_id"`
	Role          string  `json:"role"`
	AssignedHours float64 `json:"assigned_hours"`
	WeeklyCapHrs  float64 `json:"weekly_cap_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

// DutyStats summarizes the distribution of duty hours across rostered crew.
type DutyStats struct {
	MeanHours   float64 `json:"mean_hours"`
	StdDevHours float64 `json:"stddev_hours"`
	MaxHours    float64 `json:"max_hours"`
	Crews       int     `json:"crews"`
}

// OvertimeReport is the overtime view over one roster snapshot.
type OvertimeReport struct {
	ByCrew             []CrewOvertime `json:"by_crew"`
	TotalOvertimeHours float64        `json:"total_overtime_hours"`
	Stats              DutyStats      `json:"stats"`
}

// Overtime computes the per-crew overtime breakdown from an index and the
// crew directory. Crew missing from the directory get the default cap.
func Overtime(idx *roster.Index, crew map[string]model.CrewMember) OvertimeReport {
	return OvertimeWithCap(idx, crew, DefaultWeeklyCapHours)
}

// OvertimeWithCap is Overtime with a caller-chosen fallback cap for crew
// missing from the directory.
func OvertimeWithCap(idx *roster.Index, crew map[string]model.CrewMember, defaultCap float64) OvertimeReport {
	if defaultCap <= 0 {
		defaultCap = DefaultWeeklyCapHours
	}
	ids := idx.CrewIDs()
	sort.Strings(ids)

	var rows []CrewOvertime
	var hours []float64
	total := 0.0
	maxHours := 0.0
	for _, id := range ids {
		duty := roster.ClassifyDuty(id, idx)
		cap := defaultCap
		role := ""
		if c, ok := crew[id]; ok {
			role = c.Role.String()
			if c.WeeklyMaxDutyHrs > 0 {
				cap = c.WeeklyMaxDutyHrs
			}
		}
		ot := math.Max(0, duty.TotalHours-cap)
		total += ot
		hours = append(hours, duty.TotalHours)
		if duty.TotalHours > maxHours {
			maxHours = duty.TotalHours
		}
		rows = append(rows, CrewOvertime{
			CrewID:        id,
			Role:          role,
			AssignedHours: round2(duty.TotalHours),
			WeeklyCapHrs:  round2(cap),
			OvertimeHours: round2(ot),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].OvertimeHours > rows[j].OvertimeHours })

	stats := DutyStats{Crews: len(hours), MaxHours: round2(maxHours)}
	if len(hours) > 0 {
		stats.MeanHours = round2(stat.Mean(hours, nil))
	}
	if len(hours) > 1 {
		stats.StdDevHours = round2(stat.StdDev(hours, nil))
	}
	return OvertimeReport{ByCrew: rows, TotalOvertimeHours: round2(total), Stats: stats}
}

// RolePeaks is the peak concurrent seat requirement per role for a day.
type RolePeaks struct {
	Captain int `json:"Captain"`
	FO      int `json:"FO"`
	CC      int `json:"CC"`
}

// StandbyDay is a per-day standby staffing suggestion: 10% of the peak
// concurrent requirement per role, rounded up, minimum one when the role has
// any activity that day.
type StandbyDay struct {
	Day              string    `json:"day"`
	Peaks            RolePeaks `json:"peaks"`
	SuggestedStandby RolePeaks `json:"suggested_standby"`
}

// StandbySuggestions derives per-day standby recommendations from the
// assignment concurrency profile. Senior crew count toward cabin crew, as in
// the roster rules.
func StandbySuggestions(assignments []model.Assignment) []StandbyDay {
	type roleCounts struct{ captain, fo, cc int }
	byHour := make(map[time.Time]*roleCounts)
	for _, a := range assignments {
		cur := a.DepTime.Truncate(time.Hour)
		end := a.ArrTime.Truncate(time.Hour)
		for !cur.After(end) {
			rc := byHour[cur]
			if rc == nil {
				rc = &roleCounts{}
				byHour[cur] = rc
			}
			switch a.Role {
			case model.RoleCaptain:
				rc.captain++
			case model.RoleFirstOfficer:
				rc.fo++
			default:
				rc.cc++
			}
			cur = cur.Add(time.Hour)
		}
	}

	peaksByDay := make(map[string]*RolePeaks)
	for h, rc := range byHour {
		day := h.Format("2006-01-02")
		p := peaksByDay[day]
		if p == nil {
			p = &RolePeaks{}
			peaksByDay[day] = p
		}
		p.Captain = maxInt(p.Captain, rc.captain)
		p.FO = maxInt(p.FO, rc.fo)
		p.CC = maxInt(p.CC, rc.cc)
	}

	days := make([]string, 0, len(peaksByDay))
	for d := range peaksByDay {
		days = append(days, d)
	}
	sort.Strings(days)

	out := make([]StandbyDay, 0, len(days))
	for _, d := range days {
		p := peaksByDay[d]
		out = append(out, StandbyDay{
			Day:   d,
			Peaks: *p,
			SuggestedStandby: RolePeaks{
				Captain: suggestStandby(p.Captain),
				FO:      suggestStandby(p.FO),
				CC:      suggestStandby(p.CC),
			},
		})
	}
	return out
}

func suggestStandby(peak int) int {
	if peak <= 0 {
		return 0
	}
	return maxInt(1, int(math.Ceil(0.1*float64(peak))))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

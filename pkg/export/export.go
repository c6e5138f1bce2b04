// Package export serializes analysis results for downstream tooling.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/skylane/rosterops/core/insights"
	"github.com/skylane/rosterops/core/model"
)

// WriteChangesJSON writes the change records to w in JSON format.
func WriteChangesJSON(w io.Writer, changes []model.ChangeRecord) error {
	enc := json.NewEncoder(w)
	return enc.Encode(changes)
}

// WriteChangesCSV writes the change records to w in CSV format with headers.
func WriteChangesCSV(w io.Writer, changes []model.ChangeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"type", "crew_id", "flight_id", "role", "flight_details"}); err != nil {
		return err
	}
	for _, c := range changes {
		rec := []string{
			string(c.Type),
			c.CrewID,
			c.FlightID,
			c.Role.String(),
			c.FlightDetails,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteOvertimeJSON writes the overtime breakdown to w in JSON format.
func WriteOvertimeJSON(w io.Writer, rows []insights.CrewOvertime) error {
	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}

// WriteOvertimeCSV writes the overtime breakdown to w in CSV format with headers.
func WriteOvertimeCSV(w io.Writer, rows []insights.CrewOvertime) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"crew_id", "role", "assigned_hours", "weekly_cap_hours", "overtime_hours"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.CrewID,
			r.Role,
			strconv.FormatFloat(r.AssignedHours, 'f', -1, 64),
			strconv.FormatFloat(r.WeeklyCapHrs, 'f', -1, 64),
			strconv.FormatFloat(r.OvertimeHours, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

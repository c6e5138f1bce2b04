package config

import "fmt"

// InsightsConfig tunes the roster insight computations.
type InsightsConfig struct {
	// WeeklyCapHours is the contractual weekly duty-hour ceiling used for
	// overtime reporting.
	WeeklyCapHours float64 `json:"weekly_cap_hours"`
}

// SetDefaults applies sane defaults.
func (c *InsightsConfig) SetDefaults() {
	if c.WeeklyCapHours == 0 {
		c.WeeklyCapHours = 65
	}
}

// Validate checks mandatory fields.
func (c InsightsConfig) Validate() error {
	if c.WeeklyCapHours < 0 {
		return fmt.Errorf("weekly_cap_hours must be positive")
	}
	return nil
}

package config

// WeatherConfig holds settings for the Open-Meteo forecast provider.
type WeatherConfig struct {
	// BaseURL overrides the provider endpoint, mostly for tests.
	BaseURL string `json:"base_url"`
	// TimeoutSeconds bounds a single forecast request.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *WeatherConfig) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 10
	}
}

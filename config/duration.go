package config

import "time"

// IdleTimeout converts the configured minute count into a time.Duration.
// Zero means archival is disabled (spec §6).
func (c *Config) IdleTimeout() time.Duration {
	if c.Session.IdleTimeoutMins <= 0 {
		return 0
	}
	return time.Duration(c.Session.IdleTimeoutMins) * time.Minute
}

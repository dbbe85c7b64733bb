package config

import "fmt"

// Validate checks the required fields for the selected connection mode and
// rejects an unrecognized one. It does not apply defaults -- call
// applyDefaults after a successful Validate.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case ModeComponent:
		if c.Server.ComponentDomain == "" {
			return fmt.Errorf("config: server.component_domain is required in component mode")
		}
		if c.Server.ComponentSecret == "" {
			return fmt.Errorf("config: server.component_secret is required in component mode")
		}
	case ModeClient:
		if c.Server.JID == "" {
			return fmt.Errorf("config: server.jid is required in client mode")
		}
		if c.Server.Password == "" {
			return fmt.Errorf("config: server.password is required in client mode")
		}
	default:
		return fmt.Errorf("config: server.mode must be %q or %q, got %q", ModeComponent, ModeClient, c.Server.Mode)
	}

	if c.Server.Host == "" {
		return fmt.Errorf("config: server.host is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("config: server.port must be positive")
	}

	for _, room := range c.Rooms {
		if room.JID == "" {
			return fmt.Errorf("config: rooms[] entry missing jid")
		}
		if room.Nick == "" {
			return fmt.Errorf("config: rooms[] entry %s missing nick", room.JID)
		}
	}

	if c.LLM.Provider != "" && c.LLM.Provider != ProviderAnthropic && c.LLM.Provider != ProviderOllama {
		return fmt.Errorf("config: llm.provider must be %q or %q, got %q", ProviderAnthropic, ProviderOllama, c.LLM.Provider)
	}

	return nil
}

// Package config decodes the single TOML file an operator supplies into
// the Config struct mirroring the configuration surface the runtime
// recognizes: connection mode and credentials, the admission policy,
// session archival, rooms to join, and the skill/LLM provider selection.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the top-level decoded configuration.
type Config struct {
	WorkspaceDir string        `toml:"workspace_dir"`
	Server       ServerConfig  `toml:"server"`
	Agent        AgentConfig   `toml:"agent"`
	Session      SessionConfig `toml:"session"`
	LLM          LLMConfig     `toml:"llm"`
	Rooms        []RoomConfig  `toml:"rooms"`
	Skills       SkillsConfig  `toml:"skills"`
}

// ServerConfig selects the connection establisher and its transport and
// credential parameters.
type ServerConfig struct {
	Mode      string `toml:"mode"`
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	TLSVerify bool   `toml:"tls_verify"`

	ComponentDomain string `toml:"component_domain"`
	ComponentSecret string `toml:"component_secret"`

	JID      string `toml:"jid"`
	Password string `toml:"password"`
	Resource string `toml:"resource"`
}

// Connection mode values for ServerConfig.Mode.
const (
	ModeComponent = "component"
	ModeClient    = "client"
)

// AgentConfig is the cross-domain/allow-list admission policy and the
// operator's capability allow-list for skills.
type AgentConfig struct {
	AllowedJIDs         []string `toml:"allowed_jids"`
	AllowedDomains      []string `toml:"allowed_domains"`
	AllowedCapabilities []string `toml:"allowed_capabilities"`
}

// SessionConfig controls idle-session archival.
type SessionConfig struct {
	IdleTimeoutMins int `toml:"idle_timeout_mins"`
}

// RoomConfig describes one MUC room to join on connect.
type RoomConfig struct {
	JID             string   `toml:"jid"`
	Nick            string   `toml:"nick"`
	MentionPatterns []string `toml:"mention_patterns"`
}

// LLM provider identifiers for LLMConfig.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// LLMConfig selects and configures the LLM provider adapter. The wire
// format itself is the adapter's concern; this is just enough for the
// runtime to build one.
type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	MaxTokens int64  `toml:"max_tokens"`
}

// SkillsConfig lists the enabled skills and their per-skill subsections.
type SkillsConfig struct {
	Enabled   []string        `toml:"enabled"`
	WebSearch WebSearchConfig `toml:"web_search"`
	URLFetch  URLFetchConfig  `toml:"url_fetch"`
}

// WebSearchConfig configures the web_search skill's backend.
type WebSearchConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// URLFetchConfig configures the url_fetch skill.
type URLFetchConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Load decodes the TOML file at path, validates it, and fills in defaults
// for anything left unset.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

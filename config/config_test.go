package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fluux-agent.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadComponentModeMinimal(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
[server]
mode = "component"
host = "localhost"
port = 5347
component_domain = "agent.example.com"
component_secret = "s3cr3t"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Mode != ModeComponent {
		t.Errorf("Mode = %q, want component", cfg.Server.Mode)
	}
	if cfg.LLM.Provider != ProviderAnthropic {
		t.Errorf("LLM.Provider = %q, want default anthropic", cfg.LLM.Provider)
	}
	if cfg.LLM.MaxTokens != defaultLLMMaxTokens {
		t.Errorf("LLM.MaxTokens = %d, want default", cfg.LLM.MaxTokens)
	}
	if cfg.IdleTimeout() != 0 {
		t.Errorf("IdleTimeout() = %v, want 0 (disabled) when unset", cfg.IdleTimeout())
	}
	if cfg.WorkspaceDir != defaultWorkspaceDir {
		t.Errorf("WorkspaceDir = %q, want default", cfg.WorkspaceDir)
	}
}

func TestLoadClientModeAppliesResourceDefault(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
[server]
mode = "client"
host = "example.com"
port = 5222
jid = "bot@example.com"
password = "hunter2"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Resource != defaultResource {
		t.Errorf("Resource = %q, want default", cfg.Server.Resource)
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
[server]
mode = "carrier-pigeon"
host = "example.com"
port = 5222
`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error for an unrecognized server.mode")
	}
}

func TestLoadRejectsComponentModeMissingSecret(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
[server]
mode = "component"
host = "example.com"
port = 5347
component_domain = "agent.example.com"
`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error for missing component_secret")
	}
}

func TestLoadRejectsRoomMissingNick(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
[server]
mode = "component"
host = "example.com"
port = 5347
component_domain = "agent.example.com"
component_secret = "s3cr3t"

[[rooms]]
jid = "lobby@conference.example.com"
`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error for a room missing nick")
	}
}

func TestLoadParsesRoomsAndSkills(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
[server]
mode = "component"
host = "example.com"
port = 5347
component_domain = "agent.example.com"
component_secret = "s3cr3t"

[agent]
allowed_jids = ["alice@example.com"]
allowed_domains = ["example.com"]

[[rooms]]
jid = "lobby@conference.example.com"
nick = "FluuxBot"
mention_patterns = ["fluux"]

[skills]
enabled = ["web_search", "url_fetch"]

[skills.web_search]
timeout_seconds = 5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Rooms) != 1 || cfg.Rooms[0].Nick != "FluuxBot" {
		t.Fatalf("Rooms = %+v", cfg.Rooms)
	}
	if len(cfg.Agent.AllowedJIDs) != 1 || cfg.Agent.AllowedJIDs[0] != "alice@example.com" {
		t.Errorf("AllowedJIDs = %v", cfg.Agent.AllowedJIDs)
	}
	if cfg.Skills.WebSearch.TimeoutSeconds != 5 {
		t.Errorf("WebSearch.TimeoutSeconds = %d, want 5", cfg.Skills.WebSearch.TimeoutSeconds)
	}
	if cfg.Skills.URLFetch.TimeoutSeconds != defaultSkillTimeoutS {
		t.Errorf("URLFetch.TimeoutSeconds = %d, want default", cfg.Skills.URLFetch.TimeoutSeconds)
	}
}

func TestIdleTimeoutExplicitZeroStaysDisabled(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
[server]
mode = "component"
host = "example.com"
port = 5347
component_domain = "agent.example.com"
component_secret = "s3cr3t"

[session]
idle_timeout_mins = 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IdleTimeout() != 0 {
		t.Errorf("IdleTimeout() = %v, want 0", cfg.IdleTimeout())
	}
}

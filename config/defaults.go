package config

const (
	defaultResource      = "fluux-agent"
	defaultLLMProvider   = ProviderAnthropic
	defaultLLMMaxTokens  = 1024
	defaultSkillTimeoutS = 15
	defaultWorkspaceDir  = "./workspace"
)

// applyDefaults fills in the fields an operator is allowed to leave unset.
// session.idle_timeout_mins is deliberately left alone: per spec §6, 0
// means archival is disabled, and TOML cannot distinguish "unset" from
// an explicit 0, so the zero value's natural meaning is also its default.
func (c *Config) applyDefaults() {
	if c.WorkspaceDir == "" {
		c.WorkspaceDir = defaultWorkspaceDir
	}
	if c.Server.Mode == ModeClient && c.Server.Resource == "" {
		c.Server.Resource = defaultResource
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaultLLMProvider
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = defaultLLMMaxTokens
	}
	if c.Skills.WebSearch.TimeoutSeconds == 0 {
		c.Skills.WebSearch.TimeoutSeconds = defaultSkillTimeoutS
	}
	if c.Skills.URLFetch.TimeoutSeconds == 0 {
		c.Skills.URLFetch.TimeoutSeconds = defaultSkillTimeoutS
	}
}

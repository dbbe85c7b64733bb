// Package skill implements the tool layer an LLM can invoke: a
// capability-gated registry of named Skill instances, each exposing a JSON
// Schema and a string-returning Execute method whose internal errors are
// always caught and stringified rather than propagated.
package skill

import (
	"context"
	"encoding/json"

	"github.com/fluux-io/fluux-agent/workspace"
)

// ToolDefinition is the adapter-neutral form of a skill exposed to an LLM
// provider: name, description, and its parameters as a JSON Schema object.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// ExecContext carries the per-invocation state a skill may need beyond its
// own static configuration -- currently just the peer whose workspace the
// skill should read or write. The Registry itself stays read-only after
// initialization; this is what lets per-peer skills (memory_store,
// memory_recall) stay stateless at the Skill level.
type ExecContext struct {
	Peer *workspace.Peer
}

// Skill is one callable tool. Execute must never panic or return an error
// that unwinds past the agentic loop: internal failures are caught by the
// Registry and returned as a `"error: {message}"` string result instead.
type Skill interface {
	Name() string
	Description() string
	ParametersSchema() json.RawMessage
	RequiredCapabilities() []string
	Execute(ctx context.Context, ec ExecContext, params map[string]any) (string, error)
}

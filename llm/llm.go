// Package llm defines the adapter-neutral contract the agent runtime talks
// to: a single Complete call taking a system prompt, a transcript, and the
// tool catalog, returning a sequence of content blocks and a stop reason.
// Concrete adapters translate this shape to and from a specific provider's
// wire format; the runtime never imports a provider SDK directly.
package llm

import (
	"context"
	"encoding/json"

	"github.com/fluux-io/fluux-agent/skill"
	"github.com/fluux-io/fluux-agent/workspace"
)

// StopReason is why a Complete call stopped producing content blocks.
type StopReason string

const (
	StopEndTurn   StopReason = "end_turn"
	StopToolUse   StopReason = "tool_use"
	StopMaxTokens StopReason = "max_tokens"
	StopOther     StopReason = "other"
)

// ContentBlock is the sum type a Response carries: either Text or ToolUse.
type ContentBlock interface {
	contentBlock()
}

// Text is a plain-text content block.
type Text struct {
	Content string
}

func (Text) contentBlock() {}

// ToolUse is a request from the model to invoke one of the tools offered
// in the preceding Complete call. ID is provider-assigned for adapters that
// natively support tool calls, or synthesized (`tool_{index}`) for adapters
// that translate from a plain chat-completion shape.
type ToolUse struct {
	ID    string
	Name  string
	Input map[string]any
}

func (ToolUse) contentBlock() {}

// Response is what a Complete call returns: the content blocks the model
// produced, in order, and why it stopped.
type Response struct {
	Content    []ContentBlock
	StopReason StopReason
}

// Client is the adapter-neutral LLM collaborator. system is the fully
// assembled system prompt (see workspace.Peer.SystemPrompt); turns is the
// conversation so far, seeded from history and grown round by round as the
// agentic loop appends assistant tool-use and tool-result turns; tools is
// the catalog the model may call.
type Client interface {
	Complete(ctx context.Context, system string, turns []Turn, tools []skill.ToolDefinition) (Response, error)
}

// Turn is one entry in the conversation the runtime threads through
// successive Complete calls. A user turn carries plain text. An assistant
// turn carries the content blocks a prior Complete call produced (text
// and/or tool-use). A tool turn reports one tool's result back to the
// model, addressed by the ToolUse.ID it answers.
type Turn struct {
	Role      string
	Text      string
	Blocks    []ContentBlock
	ToolUseID string
}

// NewUserTurn seeds the conversation with a plain-text user message.
func NewUserTurn(text string) Turn {
	return Turn{Role: "user", Text: text}
}

// NewAssistantTurn records a model response so its tool-use blocks can be
// answered in a later round.
func NewAssistantTurn(blocks []ContentBlock) Turn {
	return Turn{Role: "assistant", Blocks: blocks}
}

// NewToolResultTurn reports a skill's execution result back to the model.
func NewToolResultTurn(toolUseID, content string) Turn {
	return Turn{Role: "tool", ToolUseID: toolUseID, Text: content}
}

// TurnsFromTranscript seeds the agentic loop's conversation from a peer's
// history tail; every record becomes a plain user or assistant turn since
// stored history never carries mid-round tool-use blocks.
func TurnsFromTranscript(transcript []workspace.TranscriptRecord) []Turn {
	turns := make([]Turn, 0, len(transcript))
	for _, rec := range transcript {
		turns = append(turns, Turn{Role: rec.Role, Text: rec.Content})
	}
	return turns
}

// marshalInput round-trips a tool-call's raw provider arguments through
// map[string]any, the shape skill.Skill.Execute expects.
func marshalInput(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

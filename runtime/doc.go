// Package runtime is the agent's conversational brain: it consumes
// stanzaengine.InboundEvent values, intercepts slash commands, and drives
// the agentic tool-use loop (llm.Client round-trips interleaved with
// skill.Registry executions) to produce outbound replies with proper
// XEP-0085 chat-state framing.
package runtime

// Package llm is the adapter-neutral boundary between the agentic runtime
// and a concrete model provider. AnthropicClient speaks the provider's
// native structured content blocks; OpenAIClient targets any
// OpenAI-compatible chat-completions endpoint (including a local Ollama
// server) and translates tool-use to and from {role:"tool", ...} records.
package llm

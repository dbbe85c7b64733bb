// Package workspace implements the per-peer persisted state described in
// spec §3: a directory tree keyed by bare JID holding identity/personality/
// instructions overrides, a long-term memory note, the active JSONL
// session log, downloaded attachments, and archived sessions. It also
// assembles the system prompt and the history-to-transcript conversion the
// agent runtime feeds to an LLM.
package workspace

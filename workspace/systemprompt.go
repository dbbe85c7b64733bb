package workspace

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// defaultIdentity, defaultPersonality, and defaultInstructions are the
// built-in fallbacks used when neither a per-peer nor a global override
// file is present (or present but blank).
const (
	defaultIdentity     = "You are a helpful assistant reachable over XMPP."
	defaultPersonality  = "You are concise, direct, and friendly."
	defaultInstructions = "Answer the user's questions as accurately as you can. Use tools when they would help."
)

// readOverride reads name from the peer directory first, falling back to
// the workspace's global directory, falling back to fallback. Empty or
// whitespace-only files are treated as absent per spec §4.4.
func (p *Peer) readOverride(name, fallback string) string {
	if content, ok := readNonBlankFile(p.path(name)); ok {
		return content
	}
	if content, ok := readNonBlankFile(p.ws.globalPath(name)); ok {
		return content
	}
	return fallback
}

func readNonBlankFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

// SystemPrompt assembles the system prompt for this peer in the order
// spec §4.4 defines: identity, personality, instructions, a "user.md"
// section, a "memory.md" section, and a final line naming today's date.
func (p *Peer) SystemPrompt(now time.Time) string {
	var b strings.Builder

	b.WriteString(p.readOverride("identity.md", defaultIdentity))
	b.WriteString("\n\n")
	b.WriteString(p.readOverride("personality.md", defaultPersonality))
	b.WriteString("\n\n")
	b.WriteString(p.readOverride("instructions.md", defaultInstructions))

	if content, ok := readNonBlankFile(p.path("user.md")); ok {
		b.WriteString("\n\nAbout this user:\n")
		b.WriteString(content)
	}
	if content, ok := readNonBlankFile(p.path("memory.md")); ok {
		b.WriteString("\n\nNotes and memory:\n")
		b.WriteString(content)
	}

	fmt.Fprintf(&b, "\n\nToday's date is %s.", now.UTC().Format("2006-01-02"))
	return b.String()
}

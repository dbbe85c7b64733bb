package runtime

import (
	"fmt"
	"strings"
	"time"

	"github.com/fluux-io/fluux-agent/workspace"
)

// helpText lists the slash commands the runtime intercepts before they ever
// reach the LLM.
const helpText = "Commands:\n" +
	"/ping - check that the bridge is responsive\n" +
	"/help - show this message\n" +
	"/status - show uptime, connection, and session info\n" +
	"/new or /reset - archive the current session and start fresh\n" +
	"/forget - erase stored profile and memory, keeping archives"

// runSlashCommand executes a deterministic command and returns its reply
// text. ok is false when body is not a recognized slash command, in which
// case the caller should fall through to the agentic loop.
func (a *Agent) runSlashCommand(p *workspace.Peer, body string) (reply string, ok bool) {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return "", false
	}

	switch fields[0] {
	case "/ping":
		return "pong", true
	case "/help":
		return helpText, true
	case "/status":
		return a.statusReply(p), true
	case "/new", "/reset":
		if err := p.Archive(time.Now()); err != nil {
			return fmt.Sprintf("error: %v", err), true
		}
		return "started a fresh session", true
	case "/forget":
		if err := p.Forget(); err != nil {
			return fmt.Sprintf("error: %v", err), true
		}
		return "forgot stored profile and memory", true
	default:
		return "", false
	}
}

func (a *Agent) statusReply(p *workspace.Peer) string {
	uptime := time.Since(a.startedAt).Round(time.Second)
	history, _ := p.ReadTail(0)
	archived, _ := p.ArchivedSessionCount()
	return fmt.Sprintf(
		"uptime: %s\nmode: %s\nidentity: %s\nmodel: %s\nhistory entries: %d\narchived sessions: %d",
		uptime, a.connMode, a.boundJID.String(), a.model, len(history), archived,
	)
}

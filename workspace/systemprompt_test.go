package workspace

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fluux-io/fluux-agent/jid"
)

func TestSystemPromptFallsBackToBuiltinDefaults(t *testing.T) {
	t.Parallel()
	p := testPeer(t)

	prompt := p.SystemPrompt(time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC))
	if !strings.Contains(prompt, defaultIdentity) {
		t.Error("expected built-in identity default")
	}
	if !strings.Contains(prompt, "2026-07-31") {
		t.Error("expected date line")
	}
}

func TestSystemPromptPeerOverrideBeatsGlobal(t *testing.T) {
	t.Parallel()
	ws := New(t.TempDir())
	if err := ws.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := os.WriteFile(ws.globalPath("identity.md"), []byte("global identity"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := ws.Peer(jid.MustParse("alice@example.com"))
	if err != nil {
		t.Fatalf("Peer: %v", err)
	}
	if err := os.WriteFile(p.path("identity.md"), []byte("peer identity"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	prompt := p.SystemPrompt(time.Now())
	if !strings.Contains(prompt, "peer identity") {
		t.Error("expected peer override to win")
	}
	if strings.Contains(prompt, "global identity") {
		t.Error("expected global override to be shadowed")
	}
}

func TestSystemPromptBlankOverrideIgnored(t *testing.T) {
	t.Parallel()
	p := testPeer(t)
	if err := os.WriteFile(p.path("identity.md"), []byte("   \n\t "), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	prompt := p.SystemPrompt(time.Now())
	if !strings.Contains(prompt, defaultIdentity) {
		t.Error("expected blank override file to fall through to built-in default")
	}
}

func TestSystemPromptIncludesUserAndMemory(t *testing.T) {
	t.Parallel()
	p := testPeer(t)
	if err := os.WriteFile(p.path("user.md"), []byte("likes tea"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(p.path("memory.md"), []byte("asked about Go generics last week"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	prompt := p.SystemPrompt(time.Now())
	if !strings.Contains(prompt, "About this user:") || !strings.Contains(prompt, "likes tea") {
		t.Error("expected user.md section")
	}
	if !strings.Contains(prompt, "Notes and memory:") || !strings.Contains(prompt, "Go generics") {
		t.Error("expected memory.md section")
	}
}

package skill

import (
	"context"
	"testing"

	"github.com/fluux-io/fluux-agent/jid"
	"github.com/fluux-io/fluux-agent/workspace"
)

func testPeer(t *testing.T) *workspace.Peer {
	t.Helper()
	ws := workspace.New(t.TempDir())
	if err := ws.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	p, err := ws.Peer(jid.MustParse("alice@example.com"))
	if err != nil {
		t.Fatalf("Peer: %v", err)
	}
	return p
}

func TestMemoryRecallNoContent(t *testing.T) {
	t.Parallel()
	p := testPeer(t)
	recall := NewMemoryRecall()

	got, err := recall.Execute(context.Background(), ExecContext{Peer: p}, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "no stored memory" {
		t.Errorf("got %q, want no stored memory", got)
	}
}

func TestMemoryStoreThenRecall(t *testing.T) {
	t.Parallel()
	p := testPeer(t)
	store := NewMemoryStore()
	recall := NewMemoryRecall()

	if _, err := store.Execute(context.Background(), ExecContext{Peer: p}, map[string]any{"note": "likes tea"}); err != nil {
		t.Fatalf("Execute store: %v", err)
	}
	got, err := recall.Execute(context.Background(), ExecContext{Peer: p}, nil)
	if err != nil {
		t.Fatalf("Execute recall: %v", err)
	}
	if got != "likes tea" {
		t.Errorf("got %q, want likes tea", got)
	}
}

func TestMemoryStoreRejectsEmptyNote(t *testing.T) {
	t.Parallel()
	p := testPeer(t)
	store := NewMemoryStore()

	_, err := store.Execute(context.Background(), ExecContext{Peer: p}, map[string]any{"note": "  "})
	if err == nil {
		t.Error("expected error for empty note")
	}
}

func TestMemoryStoreRequiresPeer(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore()
	_, err := store.Execute(context.Background(), ExecContext{}, map[string]any{"note": "x"})
	if err == nil {
		t.Error("expected error when no peer is set")
	}
}

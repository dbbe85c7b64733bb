package skill

import (
	"context"
	"errors"
	"testing"
)

type stubBackend struct {
	results []SearchResult
	err     error
}

func (s *stubBackend) Search(_ context.Context, _ string) ([]SearchResult, error) {
	return s.results, s.err
}

func TestWebSearchFormatsResults(t *testing.T) {
	t.Parallel()
	backend := &stubBackend{results: []SearchResult{
		{Title: "Go", URL: "https://go.dev", Snippet: "The Go programming language"},
	}}
	ws := NewWebSearch(backend)

	got, err := ws.Execute(context.Background(), ExecContext{}, map[string]any{"query": "golang"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got == "" {
		t.Fatal("expected non-empty formatted results")
	}
}

func TestWebSearchNoResults(t *testing.T) {
	t.Parallel()
	ws := NewWebSearch(&stubBackend{})
	got, err := ws.Execute(context.Background(), ExecContext{}, map[string]any{"query": "golang"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "no results found" {
		t.Errorf("got %q, want no results found", got)
	}
}

func TestWebSearchRejectsEmptyQuery(t *testing.T) {
	t.Parallel()
	ws := NewWebSearch(&stubBackend{})
	_, err := ws.Execute(context.Background(), ExecContext{}, map[string]any{"query": ""})
	if err == nil {
		t.Error("expected error for empty query")
	}
}

func TestWebSearchPropagatesBackendError(t *testing.T) {
	t.Parallel()
	ws := NewWebSearch(&stubBackend{err: errors.New("boom")})
	_, err := ws.Execute(context.Background(), ExecContext{}, map[string]any{"query": "golang"})
	if err == nil {
		t.Error("expected backend error to propagate")
	}
}

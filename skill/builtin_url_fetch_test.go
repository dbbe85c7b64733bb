package skill

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestURLFetchExtractsVisibleText(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><style>body{color:red}</style></head><body><script>alert(1)</script><h1>Hello</h1><p>World</p></body></html>`))
	}))
	defer srv.Close()

	f := NewURLFetch(5 * time.Second)
	got, err := f.Execute(context.Background(), ExecContext{}, map[string]any{"url": srv.URL})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(got, "Hello") || !strings.Contains(got, "World") {
		t.Errorf("got %q, want visible text", got)
	}
	if strings.Contains(got, "alert(1)") {
		t.Error("expected script content to be stripped")
	}
}

func TestURLFetchRejectsNonHTTPScheme(t *testing.T) {
	t.Parallel()
	f := NewURLFetch(time.Second)
	_, err := f.Execute(context.Background(), ExecContext{}, map[string]any{"url": "ftp://example.com"})
	if err == nil {
		t.Error("expected error for non-http(s) scheme")
	}
}

func TestURLFetchSurfacesServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewURLFetch(5 * time.Second)
	_, err := f.Execute(context.Background(), ExecContext{}, map[string]any{"url": srv.URL})
	if err == nil {
		t.Error("expected error for 404 response")
	}
}

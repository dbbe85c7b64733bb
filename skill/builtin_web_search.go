package skill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const webSearchSchema = `{"type":"object","properties":{"query":{"type":"string","description":"the search query"}},"required":["query"]}`

// maxWebSearchResults bounds how many results are folded into a tool
// result, keeping it within a reasonable share of the transcript budget.
const maxWebSearchResults = 5

// SearchResult is one item a SearchBackend returns.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// SearchBackend is the provider-configurable lookup web_search delegates
// to; operators can point it at whichever search API they have access to.
type SearchBackend interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// WebSearch performs a web search through a pluggable SearchBackend and
// formats the results as text for the LLM.
type WebSearch struct {
	backend SearchBackend
}

// NewWebSearch creates a WebSearch skill backed by the given provider.
func NewWebSearch(backend SearchBackend) *WebSearch {
	return &WebSearch{backend: backend}
}

func (WebSearch) Name() string        { return "web_search" }
func (WebSearch) Description() string { return "Search the web and return a short list of relevant results." }
func (WebSearch) ParametersSchema() json.RawMessage { return json.RawMessage(webSearchSchema) }
func (WebSearch) RequiredCapabilities() []string     { return []string{"network:http"} }

func (w *WebSearch) Execute(ctx context.Context, _ ExecContext, params map[string]any) (string, error) {
	query, _ := params["query"].(string)
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("query must not be empty")
	}

	results, err := w.backend.Search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}
	if len(results) == 0 {
		return "no results found", nil
	}
	if len(results) > maxWebSearchResults {
		results = results[:maxWebSearchResults]
	}

	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s (%s)\n%s\n", i+1, r.Title, r.URL, r.Snippet)
	}
	return strings.TrimSpace(b.String()), nil
}

// DuckDuckGoBackend implements SearchBackend against DuckDuckGo's
// key-free HTML results page, scraped with goquery -- no API key
// management needed for the shipped default.
type DuckDuckGoBackend struct {
	client *http.Client
}

// NewDuckDuckGoBackend creates a DuckDuckGoBackend with the given request
// timeout.
func NewDuckDuckGoBackend(timeout time.Duration) *DuckDuckGoBackend {
	return &DuckDuckGoBackend{client: &http.Client{Timeout: timeout}}
}

func (d *DuckDuckGoBackend) Search(ctx context.Context, query string) ([]SearchResult, error) {
	endpoint := "https://html.duckduckgo.com/html/?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "fluux-agent/1.0")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("duckduckgo returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	doc.Find(".result").Each(func(_ int, s *goquery.Selection) {
		link := s.Find(".result__a")
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		snippet := strings.TrimSpace(s.Find(".result__snippet").Text())
		if title == "" || href == "" {
			return
		}
		results = append(results, SearchResult{Title: title, URL: href, Snippet: snippet})
	})
	return results, nil
}

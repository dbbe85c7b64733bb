package skill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const urlFetchSchema = `{"type":"object","properties":{"url":{"type":"string","description":"the http(s) URL to fetch"}},"required":["url"]}`

// maxFetchBody bounds how much of a fetched page's body is read, so a
// pathological response can't exhaust memory or blow the token budget of
// the transcript it gets folded into.
const maxFetchBody = 1 << 20 // 1 MiB

// URLFetch retrieves a web page and returns its visible text content,
// stripped of markup, for the LLM to read.
type URLFetch struct {
	client *http.Client
}

// NewURLFetch creates a URLFetch skill with the given request timeout.
func NewURLFetch(timeout time.Duration) *URLFetch {
	return &URLFetch{client: &http.Client{Timeout: timeout}}
}

func (URLFetch) Name() string        { return "url_fetch" }
func (URLFetch) Description() string { return "Fetch a web page by URL and return its visible text content." }
func (URLFetch) ParametersSchema() json.RawMessage { return json.RawMessage(urlFetchSchema) }
func (URLFetch) RequiredCapabilities() []string     { return []string{"network:http"} }

func (u *URLFetch) Execute(ctx context.Context, _ ExecContext, params map[string]any) (string, error) {
	rawURL, _ := params["url"].(string)
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errors.New("url must not be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "", errors.New("url must be http or https")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch: server returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxFetchBody))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if text == "" {
		return "(no readable text content)", nil
	}
	return text, nil
}

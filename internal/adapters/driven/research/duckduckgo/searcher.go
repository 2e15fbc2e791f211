// Package duckduckgo researches inquiry senders on the open web. Search
// queries are generated and summarized by a generative model; the search
// itself scrapes the DuckDuckGo HTML endpoint behind a rate limiter.
package duckduckgo

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Searcher performs one web search and returns result text.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// Default configuration values.
const (
	DefaultEndpoint   = "https://html.duckduckgo.com/html/"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxResults = 5

	// One request per two seconds keeps scraping polite.
	requestsPerSecond = 0.5
)

var (
	resultTitleRe   = regexp.MustCompile(`(?s)<a[^>]*class="result__a"[^>]*>(.*?)</a>`)
	resultSnippetRe = regexp.MustCompile(`(?s)<a[^>]*class="result__snippet"[^>]*>(.*?)</a>`)
	tagRe           = regexp.MustCompile(`<[^>]*>`)
)

// HTMLSearcher queries the DuckDuckGo HTML endpoint.
type HTMLSearcher struct {
	client     *http.Client
	endpoint   string
	maxResults int
	limiter    *rate.Limiter
}

// NewHTMLSearcher creates a rate-limited DuckDuckGo searcher.
func NewHTMLSearcher() *HTMLSearcher {
	return &HTMLSearcher{
		client:     &http.Client{Timeout: DefaultTimeout},
		endpoint:   DefaultEndpoint,
		maxResults: DefaultMaxResults,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Search runs one query and returns title/snippet lines for the top
// results.
func (s *HTMLSearcher) Search(ctx context.Context, query string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		s.endpoint+"?q="+url.QueryEscape(query),
		http.NoBody,
	)
	if err != nil {
		return "", fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; fundreply)")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read search response: %w", err)
	}

	return parseResults(string(body), s.maxResults), nil
}

// parseResults extracts "title: snippet" lines from the result page.
func parseResults(page string, maxResults int) string {
	titles := resultTitleRe.FindAllStringSubmatch(page, maxResults)
	snippets := resultSnippetRe.FindAllStringSubmatch(page, maxResults)

	var lines []string
	for i, t := range titles {
		line := stripTags(t[1])
		if i < len(snippets) {
			line += ": " + stripTags(snippets[i][1])
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func stripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagRe.ReplaceAllString(s, "")))
}

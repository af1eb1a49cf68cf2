// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/briefing-engine/internal/httputil"
	"github.com/pdiddy/briefing-engine/pkg/types"
)

// SearXNGBackend queries a self-hosted SearXNG instance through its JSON
// output format. SearXNG needs no API key.
type SearXNGBackend struct {
	Client    *http.Client
	BaseURL   string
	UserAgent string
}

// Name returns the backend identifier.
func (b *SearXNGBackend) Name() string { return string(types.SearchSearXNG) }

// Search queries the news category and keeps the first MaxResults results.
// apiKey is ignored.
func (b *SearXNGBackend) Search(ctx context.Context, query, _ string) ([]types.SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	u, err := url.Parse(b.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid searxng base url: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/search"
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("categories", "news")
	u.RawQuery = q.Encode()

	header := http.Header{}
	if b.UserAgent != "" {
		header.Set("User-Agent", b.UserAgent)
	}

	var resp searxngResponse
	if err := httputil.GetJSON(ctx, b.Client, "SearXNG", u.String(), header, &resp); err != nil {
		return nil, &Error{Provider: b.Name(), Cause: err}
	}

	results := make([]types.SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, types.SearchResult{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
		})
	}
	return capResults(results), nil
}

type searxngResponse struct {
	Query   string          `json:"query"`
	Results []searxngResult `json:"results"`
}

type searxngResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	PublishedDate string  `json:"publishedDate"`
	Score         float64 `json:"score"`
}

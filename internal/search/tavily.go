// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/briefing-engine/internal/httputil"
	"github.com/pdiddy/briefing-engine/pkg/types"
)

// tavilyAPIURL is the Tavily search endpoint. Declared as a var so tests can
// substitute an httptest server.
var tavilyAPIURL = "https://api.tavily.com/search"

// TavilyBackend queries the Tavily search API.
type TavilyBackend struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the backend identifier.
func (b *TavilyBackend) Name() string { return string(types.SearchTavily) }

// Search sends one basic-depth query asking for up to MaxResults results,
// without answer synthesis or raw page content.
func (b *TavilyBackend) Search(ctx context.Context, query, apiKey string) ([]types.SearchResult, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("tavily api key is missing")
	}
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	req := tavilyRequest{
		APIKey:            apiKey,
		Query:             query,
		SearchDepth:       "basic",
		IncludeAnswer:     false,
		IncludeRawContent: false,
		MaxResults:        MaxResults,
	}

	header := http.Header{}
	if b.UserAgent != "" {
		header.Set("User-Agent", b.UserAgent)
	}

	var resp tavilyResponse
	if err := httputil.PostJSON(ctx, b.Client, "Tavily API", tavilyAPIURL, header, req, &resp); err != nil {
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

// Tavily API JSON structures. The boolean flags are always sent so the
// service never falls back to its own defaults.
type tavilyRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
	MaxResults        int    `json:"max_results"`
}

type tavilyResponse struct {
	Query   string         `json:"query"`
	Results []tavilyResult `json:"results"`
}

type tavilyResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
}

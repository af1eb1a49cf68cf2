// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web search service for recent news articles and
// returns a bounded, rank-ordered list of results.
package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/briefing-engine/pkg/types"
)

// MaxResults is the number of results requested from, and kept from, a provider.
const MaxResults = 7

// Backend searches a single web search service. Each provider (Tavily,
// SearXNG) implements this interface.
type Backend interface {
	Name() string
	Search(ctx context.Context, query, apiKey string) ([]types.SearchResult, error)
}

// Error reports a failed search: a transport error, a non-2xx status, or a
// malformed response body. An empty result list is not an Error.
type Error struct {
	Provider string
	Cause    error
}

func (e *Error) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("search failed: %v", e.Cause)
	}
	return fmt.Sprintf("%s search failed: %v", e.Provider, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// BuildQuery turns the user's topics and region into a natural-language
// query. Global contributes no region term.
func BuildQuery(topics string, region types.Region) string {
	parts := []string{"latest news", strings.TrimSpace(topics)}
	if region != "" && region != types.RegionGlobal {
		parts = append(parts, string(region))
	}
	parts = append(parts, "today")
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// NewBackend returns the backend selected by cfg.Provider. Tavily is used
// when no provider is configured.
func NewBackend(cfg types.SearchConfig, client *http.Client) (Backend, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	switch cfg.Provider {
	case "", types.SearchTavily:
		return &TavilyBackend{Client: client, UserAgent: cfg.UserAgent}, nil
	case types.SearchSearXNG:
		if cfg.SearXNGBaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return &SearXNGBackend{Client: client, BaseURL: cfg.SearXNGBaseURL, UserAgent: cfg.UserAgent}, nil
	default:
		return nil, fmt.Errorf("unknown search provider: %s", cfg.Provider)
	}
}

// capResults keeps at most MaxResults in their original order.
func capResults(results []types.SearchResult) []types.SearchResult {
	if len(results) > MaxResults {
		return results[:MaxResults]
	}
	return results
}

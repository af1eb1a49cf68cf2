// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/briefing-engine/internal/httputil"
)

// withTavilyServer points the Tavily endpoint at an httptest server for the
// duration of the test.
func withTavilyServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	old := tavilyAPIURL
	tavilyAPIURL = ts.URL
	t.Cleanup(func() {
		tavilyAPIURL = old
		ts.Close()
	})
	return ts
}

func TestTavilySearchRequestBody(t *testing.T) {
	var captured map[string]any
	var method, userAgent string
	ts := withTavilyServer(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		userAgent = r.Header.Get("User-Agent")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, `{"query":"q","results":[]}`)
	})

	b := &TavilyBackend{Client: ts.Client(), UserAgent: "briefing-engine/test"}
	_, err := b.Search(context.Background(), "latest news AI today", "tvly-key")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "briefing-engine/test", userAgent)
	assert.Equal(t, "tvly-key", captured["api_key"])
	assert.Equal(t, "latest news AI today", captured["query"])
	assert.Equal(t, "basic", captured["search_depth"])
	assert.Equal(t, false, captured["include_answer"])
	assert.Equal(t, false, captured["include_raw_content"])
	assert.Equal(t, float64(MaxResults), captured["max_results"])
}

func TestTavilySearchParsesResultsInOrder(t *testing.T) {
	ts := withTavilyServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results":[
			{"title":"A","url":"u1","content":"alpha","score":0.9},
			{"title":"B","url":"u2","content":"beta","published_date":"2026-10-14"},
			{"title":"C","url":"u3","content":"gamma"}
		]}`)
	})

	b := &TavilyBackend{Client: ts.Client()}
	results, err := b.Search(context.Background(), "q", "key")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "A", results[0].Title)
	assert.Equal(t, "u1", results[0].URL)
	assert.Equal(t, "alpha", results[0].Content)
	assert.InDelta(t, 0.9, results[0].Score, 1e-9)
	assert.Equal(t, "2026-10-14", results[1].PublishedDate)
	assert.Equal(t, "C", results[2].Title)
}

func TestTavilySearchCapsResults(t *testing.T) {
	ts := withTavilyServer(t, func(w http.ResponseWriter, _ *http.Request) {
		var items []string
		for i := 0; i < 10; i++ {
			items = append(items, fmt.Sprintf(`{"title":"T%d","url":"u%d","content":"c"}`, i, i))
		}
		fmt.Fprintf(w, `{"results":[%s]}`, strings.Join(items, ","))
	})

	b := &TavilyBackend{Client: ts.Client()}
	results, err := b.Search(context.Background(), "q", "key")
	require.NoError(t, err)
	assert.Len(t, results, MaxResults)
	assert.Equal(t, "T6", results[MaxResults-1].Title)
}

func TestTavilySearchEmptyResultsIsNotAnError(t *testing.T) {
	ts := withTavilyServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results":[]}`)
	})

	b := &TavilyBackend{Client: ts.Client()}
	results, err := b.Search(context.Background(), "q", "key")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTavilySearchErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantMsg    string
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"detail":"invalid api key"}`)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `<html>`)
			},
			wantMsg: "decoding Tavily API response",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := withTavilyServer(t, tt.handler)

			b := &TavilyBackend{Client: ts.Client()}
			_, err := b.Search(context.Background(), "q", "key")
			require.Error(t, err)

			var se *Error
			require.True(t, errors.As(err, &se), "want *search.Error, got %T", err)
			assert.Equal(t, "tavily", se.Provider)

			if tt.wantStatus != 0 {
				var status *httputil.StatusError
				require.True(t, errors.As(err, &status))
				assert.Equal(t, tt.wantStatus, status.Code)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestTavilySearchRejectsMissingInputsWithoutCalling(t *testing.T) {
	var calls int32
	ts := withTavilyServer(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	b := &TavilyBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "q", "")
	assert.Error(t, err)
	_, err = b.Search(context.Background(), "", "key")
	assert.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

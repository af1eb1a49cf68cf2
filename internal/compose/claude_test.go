// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/briefing-engine/internal/httputil"
)

func withClaudeServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	old := claudeAPIURL
	claudeAPIURL = ts.URL
	t.Cleanup(func() {
		claudeAPIURL = old
		ts.Close()
	})
	return ts
}

func TestClaudeGenerateRequest(t *testing.T) {
	var captured *http.Request
	var body claudeRequest
	ts := withClaudeServer(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"content":[{"type":"text","text":"ok"}]}`)
	})

	c := &ClaudeBackend{APIKey: "sk-ant", Model: "claude-sonnet-4-20250514", MaxTokens: 4000, Client: ts.Client()}
	_, err := c.Generate(context.Background(), "the prompt")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))
	assert.Equal(t, "2023-06-01", captured.Header.Get("anthropic-version"))
	assert.Equal(t, "sk-ant", captured.Header.Get("x-api-key"))

	assert.Equal(t, "claude-sonnet-4-20250514", body.Model)
	assert.Equal(t, 4000, body.MaxTokens)
	require.Len(t, body.Messages, 1)
	assert.Equal(t, "user", body.Messages[0].Role)
	assert.Equal(t, "the prompt", body.Messages[0].Content)
}

func TestClaudeGenerateDefaults(t *testing.T) {
	var body claudeRequest
	var apiKey string
	ts := withClaudeServer(t, func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("x-api-key")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"content":[]}`)
	})

	c := &ClaudeBackend{Client: ts.Client()}
	_, err := c.Generate(context.Background(), "p")
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-20250514", body.Model)
	assert.Equal(t, 4000, body.MaxTokens)
	assert.Empty(t, apiKey, "x-api-key should be absent without a key")
}

func TestClaudeGenerateResponseBlocks(t *testing.T) {
	tests := []struct {
		name string
		resp string
		want string
	}{
		{"single text block", `{"content":[{"type":"text","text":"## Briefing\n..."}]}`, "## Briefing\n..."},
		{"text blocks concatenated in order", `{"content":[{"type":"text","text":"one "},{"type":"text","text":"two"}]}`, "one two"},
		{"non-text blocks ignored", `{"content":[{"type":"thinking","thinking":"hmm"},{"type":"text","text":"kept"},{"type":"tool_use","id":"x"}]}`, "kept"},
		{"no text blocks", `{"content":[{"type":"tool_use","id":"x"}]}`, ""},
		{"empty content", `{"content":[]}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := withClaudeServer(t, func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, tt.resp)
			})

			c := &ClaudeBackend{Client: ts.Client()}
			got, err := c.Generate(context.Background(), "p")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClaudeGenerateErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "overloaded",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(529)
				fmt.Fprint(w, `{"type":"error","error":{"type":"overloaded_error"}}`)
			},
			wantStatus: 529,
		},
		{
			name: "bad request",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `not json`)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			ts := withClaudeServer(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				tt.handler(w, r)
			})

			c := &ClaudeBackend{Client: ts.Client()}
			_, err := c.Generate(context.Background(), "p")
			require.Error(t, err)

			var ce *Error
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, "anthropic", ce.Provider)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "exactly one round trip")

			if tt.wantStatus != 0 {
				var se *httputil.StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, tt.wantStatus, se.Code)
			}
		})
	}
}

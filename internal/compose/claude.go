// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"context"
	"net/http"
	"strings"

	"github.com/pdiddy/briefing-engine/internal/httputil"
	"github.com/pdiddy/briefing-engine/pkg/types"
)

// claudeAPIURL is the Claude Messages API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// anthropicVersion is the API contract version sent with every request.
const anthropicVersion = "2023-06-01"

// ClaudeBackend calls the Claude Messages API with a single user message.
type ClaudeBackend struct {
	APIKey    string
	Model     string
	MaxTokens int
	Client    *http.Client
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Name returns the backend identifier.
func (c *ClaudeBackend) Name() string { return string(types.GenerationAnthropic) }

// Generate sends prompt and concatenates every text block of the response
// in order. Other block types are skipped; a response with no text blocks
// yields "".
func (c *ClaudeBackend) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.Model
	if model == "" {
		model = types.DefaultModel
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = types.DefaultMaxTokens
	}

	reqBody := claudeRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	header := http.Header{}
	header.Set("anthropic-version", anthropicVersion)
	if c.APIKey != "" {
		header.Set("x-api-key", c.APIKey)
	}

	var resp claudeResponse
	if err := httputil.PostJSON(ctx, c.Client, "Claude API", claudeAPIURL, header, reqBody, &resp); err != nil {
		return "", &Error{Provider: c.Name(), Cause: err}
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type != "text" {
			continue
		}
		b.WriteString(block.Text)
	}
	return b.String(), nil
}

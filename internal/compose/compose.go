// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose turns search results into a markdown news digest by
// prompting a text-generation service.
package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/pdiddy/briefing-engine/pkg/types"
)

// nowLayout renders the prompt timestamp, e.g. "Thursday, October 15, 2026 at 09:30 AM".
const nowLayout = "Monday, January 02, 2006 at 03:04 PM"

var briefingPromptTmpl = template.Must(template.New("briefing").Parse(`You are a news curator creating a personalized daily news briefing.

SEARCH RESULTS:
{{.Context}}

USER PREFERENCES:
- Topics of interest: {{.Topics}}
- Reading time: {{.ReadingTime}} minutes
- Region: {{.Region}}
- Current date/time: {{.Now}}

Please create a well-formatted news briefing with:

1. **Today's Date and Time** at the top
2. **5-7 Top Headlines** from the search results above
3. For each headline:
   - The title (as a heading)
   - A brief 2-3 sentence summary
   - Category/topic tag in brackets [Category]
4. Organize by topic categories (e.g., Technology, Business, Sports, etc.)
5. Keep it concise for {{.ReadingTime}} minutes of reading

Format it as a clean, professional news digest. Use markdown formatting for better readability.`))

// Generator sends one prompt to a text-generation service and returns the
// generated prose. Each provider (Anthropic, OpenAI-compatible) implements
// this interface.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Error reports a failed generation call: a transport error, a non-2xx
// status, or a malformed response body.
type Error struct {
	Provider string
	Cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// PromptInput holds everything embedded in the briefing prompt.
type PromptInput struct {
	Results     []types.SearchResult
	Topics      string
	ReadingTime types.ReadingTime
	Region      types.Region
	Now         time.Time
}

// FormatResults renders each result as a numbered block. Block i+1 always
// describes results[i].
func FormatResults(results []types.SearchResult) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("[%d] %s\nURL: %s\nContent: %s\n", i+1, r.Title, r.URL, r.Content)
	}
	return strings.Join(blocks, "\n")
}

// RenderPrompt executes the briefing prompt template. The output depends
// only on in.
func RenderPrompt(in PromptInput) (string, error) {
	var buf bytes.Buffer
	err := briefingPromptTmpl.Execute(&buf, struct {
		Context     string
		Topics      string
		ReadingTime int
		Region      string
		Now         string
	}{
		Context:     FormatResults(in.Results),
		Topics:      in.Topics,
		ReadingTime: int(in.ReadingTime),
		Region:      string(in.Region),
		Now:         in.Now.Format(nowLayout),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Composer builds the briefing prompt and makes exactly one generation call.
type Composer struct {
	Generator Generator
}

// NewComposer returns a Composer that uses g.
func NewComposer(g Generator) *Composer {
	return &Composer{Generator: g}
}

// Compose renders the prompt for results and returns the generated digest.
// An empty digest is returned as-is; failures are reported as *Error.
func (c *Composer) Compose(ctx context.Context, in PromptInput) (string, error) {
	prompt, err := RenderPrompt(in)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	text, err := c.Generator.Generate(ctx, prompt)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			return "", err
		}
		return "", &Error{Provider: c.Generator.Name(), Cause: err}
	}
	return text, nil
}

// NewGenerator returns the generator selected by cfg.Provider. Anthropic is
// used when no provider is configured.
func NewGenerator(ctx context.Context, cfg types.GenerationConfig, client *http.Client) (Generator, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = types.DefaultMaxTokens
	}

	switch cfg.Provider {
	case "", types.GenerationAnthropic:
		model := cfg.Model
		if model == "" {
			model = types.DefaultModel
		}
		return &ClaudeBackend{
			APIKey:    cfg.APIKey,
			Model:     model,
			MaxTokens: maxTokens,
			Client:    client,
		}, nil
	case types.GenerationOpenAI:
		g, err := NewOpenAIBackend(ctx, cfg, client)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.Provider)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package briefing

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/briefing-engine/pkg/types"
)

// summaryLen is the number of characters of a source snippet shown to users.
const summaryLen = 300

// SourceSummary shortens a source snippet for display.
func SourceSummary(content string) string {
	if utf8.RuneCountInString(content) > summaryLen {
		content = string([]rune(content)[:summaryLen])
	}
	return content + "..."
}

// OutputFormat names a rendering of a Briefing.
type OutputFormat string

const (
	OutputMarkdown OutputFormat = "markdown"
	OutputText     OutputFormat = "text"
	OutputJSON     OutputFormat = "json"
	OutputYAML     OutputFormat = "yaml"
	OutputCSL      OutputFormat = "csl"
)

// Write renders b to w in format f.
func Write(w io.Writer, b *types.Briefing, f OutputFormat) error {
	switch f {
	case "", OutputMarkdown:
		return FormatMarkdown(b, w)
	case OutputText:
		return FormatText(b, w)
	case OutputJSON:
		return FormatJSON(b, w)
	case OutputYAML:
		return FormatYAML(b, w)
	case OutputCSL:
		return FormatCSL(b, w)
	default:
		return fmt.Errorf("unknown output format %q: use markdown, text, json, yaml or csl", f)
	}
}

// FormatMarkdown writes the digest followed by a source list.
func FormatMarkdown(b *types.Briefing, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString("## Your News Briefing\n\n")
	sb.WriteString(strings.TrimSpace(b.Text))
	sb.WriteString("\n\n---\n\n## Source Articles\n\n")
	for i, src := range b.Sources {
		fmt.Fprintf(&sb, "%d. **%s**\n   %s\n   [Read full article](%s)\n", i+1, src.Title, SourceSummary(src.Content), src.URL)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6366F1"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	linkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
)

// FormatText writes a terminal-friendly rendering of b.
func FormatText(b *types.Briefing, w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(headingStyle.Render("Your News Briefing"))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render("Generated " + b.GeneratedAt.Format("Mon Jan 2 15:04")))
	sb.WriteString("\n\n")
	sb.WriteString(strings.TrimSpace(b.Text))
	sb.WriteString("\n\n")
	sb.WriteString(headingStyle.Render("Source Articles"))
	sb.WriteString("\n")
	for i, src := range b.Sources {
		fmt.Fprintf(&sb, "%2d. %s\n    %s\n    %s\n",
			i+1, titleStyle.Render(src.Title), SourceSummary(src.Content), linkStyle.Render(src.URL))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatJSON writes b as indented JSON.
func FormatJSON(b *types.Briefing, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// FormatYAML writes b as YAML.
func FormatYAML(b *types.Briefing, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return err
	}
	return enc.Close()
}

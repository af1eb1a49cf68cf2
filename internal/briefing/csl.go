package briefing

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/briefing-engine/pkg/types"
)

// CSLItem is one source in CSL (Citation Style Language) form. Field names
// follow the CSL-YAML schema so the list can be fed to Pandoc or a
// reference manager.
type CSLItem struct {
	ID             string   `yaml:"id"`
	Type           string   `yaml:"type"`
	Title          string   `yaml:"title"`
	ContainerTitle string   `yaml:"container-title,omitempty"`
	URL            string   `yaml:"URL"`
	Abstract       string   `yaml:"abstract,omitempty"`
	Issued         *CSLDate `yaml:"issued,omitempty"`
	Accessed       *CSLDate `yaml:"accessed,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// publishedLayouts are the date formats seen in provider results.
var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

// FormatCSL writes the sources of b as a CSL-YAML list.
func FormatCSL(b *types.Briefing, w io.Writer) error {
	items := make([]CSLItem, len(b.Sources))
	for i, src := range b.Sources {
		items[i] = toCSLItem(i, src, b.GeneratedAt)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(i int, r types.SearchResult, accessed time.Time) CSLItem {
	item := CSLItem{
		ID:       fmt.Sprintf("source-%d", i+1),
		Type:     "article-newspaper",
		Title:    r.Title,
		URL:      r.URL,
		Abstract: r.Content,
	}
	if u, err := url.Parse(r.URL); err == nil {
		item.ContainerTitle = strings.TrimPrefix(u.Hostname(), "www.")
	}
	if t, ok := parsePublished(r.PublishedDate); ok {
		item.Issued = cslDate(t)
	}
	if !accessed.IsZero() {
		item.Accessed = cslDate(accessed)
	}
	return item
}

func cslDate(t time.Time) *CSLDate {
	return &CSLDate{DateParts: [][]int{{t.Year(), int(t.Month()), t.Day()}}}
}

func parsePublished(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

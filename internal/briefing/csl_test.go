// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package briefing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/briefing-engine/pkg/types"
)

func TestToCSLItem(t *testing.T) {
	r := types.SearchResult{
		Title:         "Chipmakers rally",
		URL:           "https://www.example.com/markets/chips",
		Content:       "Shares rose.",
		PublishedDate: "Tue, 13 Oct 2026 08:00:00 GMT",
	}

	item := toCSLItem(1, r, fixedNow)

	assert.Equal(t, "source-2", item.ID)
	assert.Equal(t, "article-newspaper", item.Type)
	assert.Equal(t, "example.com", item.ContainerTitle)
	assert.Equal(t, "Shares rose.", item.Abstract)
	require.NotNil(t, item.Issued)
	assert.Equal(t, [][]int{{2026, 10, 13}}, item.Issued.DateParts)
	require.NotNil(t, item.Accessed)
	assert.Equal(t, [][]int{{2026, 10, 15}}, item.Accessed.DateParts)
}

func TestParsePublished(t *testing.T) {
	for _, s := range []string{
		"2026-10-13T08:00:00Z",
		"2026-10-13T08:00:00",
		"2026-10-13 08:00:00",
		"2026-10-13",
	} {
		got, ok := parsePublished(s)
		assert.True(t, ok, s)
		assert.Equal(t, 13, got.Day(), s)
	}

	_, ok := parsePublished("last Tuesday")
	assert.False(t, ok)
	_, ok = parsePublished("")
	assert.False(t, ok)
}

func TestFormatCSL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatCSL(sampleBriefing(), &buf))

	var items []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 3)
	assert.Equal(t, "A", items[0]["title"])
	assert.Equal(t, "u3", items[2]["URL"])
	assert.NotContains(t, items[0], "issued")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the briefing-engine pipeline:
// search results, briefing requests, briefings, and configuration.
package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Region is the user's preferred news region.
type Region string

const (
	RegionGlobal       Region = "Global"
	RegionUnitedStates Region = "United States"
	RegionEurope       Region = "Europe"
	RegionAsia         Region = "Asia"
	RegionIndia        Region = "India"
)

// Regions lists the selectable regions in display order.
var Regions = []Region{RegionGlobal, RegionUnitedStates, RegionEurope, RegionAsia, RegionIndia}

var regionAliases = map[string]Region{
	"us":  RegionUnitedStates,
	"usa": RegionUnitedStates,
	"eu":  RegionEurope,
}

// ParseRegion returns the Region named by s. Display names match
// case-insensitively; an empty string selects Global.
func ParseRegion(s string) (Region, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RegionGlobal, nil
	}
	for _, r := range Regions {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	if r, ok := regionAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// ReadingTime is the reading budget of a briefing in minutes.
type ReadingTime int

// DefaultReadingTime is the budget used when the user does not choose one.
const DefaultReadingTime ReadingTime = 10

// ReadingTimes lists the selectable budgets.
var ReadingTimes = []ReadingTime{5, 10, 15}

// ParseReadingTime parses a minute count and checks it is one of ReadingTimes.
// An empty string selects DefaultReadingTime.
func ParseReadingTime(s string) (ReadingTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultReadingTime, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("reading time %q is not a number", s)
	}
	for _, rt := range ReadingTimes {
		if int(rt) == n {
			return rt, nil
		}
	}
	return 0, fmt.Errorf("reading time must be one of 5, 10 or 15 minutes, got %d", n)
}

// SearchResult is one article returned by the search service. The order of a
// result slice is the provider's relevance rank.
type SearchResult struct {
	// Title is the article headline.
	Title string `json:"title" yaml:"title"`

	// URL links to the full article.
	URL string `json:"url" yaml:"url"`

	// Content is the provider's free-text snippet.
	Content string `json:"content" yaml:"content"`

	// Score is the provider's relevance score, when it reports one.
	Score float64 `json:"score,omitempty" yaml:"score,omitempty"`

	// PublishedDate is the provider's publication date string, when known.
	PublishedDate string `json:"published_date,omitempty" yaml:"published_date,omitempty"`
}

// BriefingRequest carries the user's preferences for one pipeline run.
type BriefingRequest struct {
	Topics      string      `json:"topics" yaml:"topics"`
	ReadingTime ReadingTime `json:"reading_time" yaml:"reading_time"`
	Region      Region      `json:"region" yaml:"region"`

	// RequestedAt is captured when the request is built.
	RequestedAt time.Time `json:"requested_at" yaml:"requested_at"`
}

// NewBriefingRequest builds a request stamped with the current time.
func NewBriefingRequest(topics string, readingTime ReadingTime, region Region) BriefingRequest {
	return BriefingRequest{
		Topics:      strings.TrimSpace(topics),
		ReadingTime: readingTime,
		Region:      region,
		RequestedAt: time.Now(),
	}
}

// Briefing is a composed markdown digest plus the search results it was
// generated from. A Briefing always has at least one source.
type Briefing struct {
	// Text is the markdown digest returned by the generation service.
	Text string `json:"text" yaml:"text"`

	// Sources are the search results in provider rank order.
	Sources []SearchResult `json:"sources" yaml:"sources"`

	// GeneratedAt is the instant embedded in the generation prompt.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

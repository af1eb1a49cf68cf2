// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package briefing orchestrates one briefing run: validate the request,
// search for articles, compose a digest from them, and assemble the result.
package briefing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/briefing-engine/internal/compose"
	"github.com/pdiddy/briefing-engine/internal/search"
	"github.com/pdiddy/briefing-engine/pkg/types"
)

// Composer produces a digest for a set of search results.
type Composer interface {
	Compose(ctx context.Context, in compose.PromptInput) (string, error)
}

// Runner executes one briefing run. *Pipeline implements it.
type Runner interface {
	Run(ctx context.Context, req types.BriefingRequest, apiKey string) (*types.Briefing, error)
}

// Pipeline runs search and composition strictly in sequence. It holds no
// per-run state and may be shared by many sessions.
type Pipeline struct {
	Searcher search.Backend
	Composer Composer

	// Now supplies the instant embedded in the prompt. Defaults to time.Now.
	Now func() time.Time

	Log logrus.FieldLogger
}

// NewPipeline wires a searcher and a composer.
func NewPipeline(searcher search.Backend, composer Composer, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		Searcher: searcher,
		Composer: composer,
		Now:      time.Now,
		Log:      log,
	}
}

// Validate checks the inputs every run requires: non-blank topics and a
// non-blank search API key.
func Validate(req types.BriefingRequest, apiKey string) error {
	if strings.TrimSpace(req.Topics) == "" {
		return &ValidationError{Field: FieldTopics}
	}
	if strings.TrimSpace(apiKey) == "" {
		return &ValidationError{Field: FieldAPIKey}
	}
	return nil
}

// Run executes validate → search → check non-empty → compose → assemble.
// Any failure ends the run; no partial Briefing is returned. apiKey is the
// search service key and is never logged.
func (p *Pipeline) Run(ctx context.Context, req types.BriefingRequest, apiKey string) (*types.Briefing, error) {
	log := p.logger()

	if err := Validate(req, apiKey); err != nil {
		return nil, err
	}
	topics := strings.TrimSpace(req.Topics)

	region := req.Region
	if region == "" {
		region = types.RegionGlobal
	}
	readingTime := req.ReadingTime
	if readingTime == 0 {
		readingTime = types.DefaultReadingTime
	}

	log = log.WithFields(logrus.Fields{
		"topics":   topics,
		"region":   region,
		"provider": p.Searcher.Name(),
	})

	query := search.BuildQuery(topics, region)
	start := time.Now()
	results, err := p.Searcher.Search(ctx, query, apiKey)
	if err != nil {
		var se *search.Error
		if !errors.As(err, &se) {
			err = &search.Error{Provider: p.Searcher.Name(), Cause: err}
		}
		log.WithError(err).Warn("search failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"results":  len(results),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("search completed")

	if len(results) == 0 {
		log.Info("search returned no results")
		return nil, ErrNoResults
	}

	now := p.now()
	start = time.Now()
	text, err := p.Composer.Compose(ctx, compose.PromptInput{
		Results:     results,
		Topics:      topics,
		ReadingTime: readingTime,
		Region:      region,
		Now:         now,
	})
	if err != nil {
		var ce *compose.Error
		if !errors.As(err, &ce) {
			err = &compose.Error{Provider: "composer", Cause: err}
		}
		log.WithError(err).Warn("composition failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"results":  len(results),
		"chars":    len(text),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("briefing composed")

	return &types.Briefing{
		Text:        text,
		Sources:     results,
		GeneratedAt: now,
	}, nil
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func (p *Pipeline) logger() logrus.FieldLogger {
	if p.Log == nil {
		return logrus.StandardLogger()
	}
	return p.Log
}

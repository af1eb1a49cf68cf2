// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"net/http"

	"github.com/pdiddy/briefing-engine/internal/briefing"
	"github.com/pdiddy/briefing-engine/internal/compose"
	"github.com/pdiddy/briefing-engine/internal/search"
	"github.com/pdiddy/briefing-engine/internal/secrets"
	"github.com/pdiddy/briefing-engine/pkg/types"
)

// generationKeyName returns the secrets file holding the key for provider.
func generationKeyName(p types.GenerationProvider) string {
	if p == types.GenerationOpenAI {
		return secrets.OpenAIAPIKey
	}
	return secrets.AnthropicAPIKey
}

// newPipeline wires the configured search backend and generator.
func newPipeline(ctx context.Context) (*briefing.Pipeline, error) {
	searcher, err := search.NewBackend(cfg.Search, &http.Client{Timeout: cfg.Search.Timeout})
	if err != nil {
		return nil, err
	}

	gen := cfg.Generation
	gen.APIKey = loadedSecrets.Resolve(generationKeyName(gen.Provider), gen.APIKey)
	if gen.APIKey == "" {
		log.WithField("provider", gen.Provider).Warn("no generation API key configured")
	}

	generator, err := compose.NewGenerator(ctx, gen, &http.Client{Timeout: gen.Timeout})
	if err != nil {
		return nil, err
	}

	return briefing.NewPipeline(searcher, compose.NewComposer(generator), log), nil
}

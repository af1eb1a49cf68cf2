// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/briefing-engine/internal/briefing"
	"github.com/pdiddy/briefing-engine/internal/secrets"
	"github.com/pdiddy/briefing-engine/pkg/types"
)

func TestLoadConfig_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	c, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), c)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("BRIEFING_ENGINE_SEARCH_PROVIDER", "searxng")
	t.Setenv("BRIEFING_ENGINE_SEARCH_SEARXNG_BASE_URL", "http://localhost:8888")
	t.Setenv("BRIEFING_ENGINE_GENERATION_MAX_TOKENS", "2000")
	t.Setenv("BRIEFING_ENGINE_SERVER_TIMEOUT", "45s")
	t.Setenv("BRIEFING_ENGINE_SEARCH_API_KEY", "tvly-env")

	v := viper.New()
	setDefaults(v)

	c, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.SearchSearXNG, c.Search.Provider)
	assert.Equal(t, "http://localhost:8888", c.Search.SearXNGBaseURL)
	assert.Equal(t, 2000, c.Generation.MaxTokens)
	assert.Equal(t, 45*time.Second, c.Server.Timeout)
	assert.Equal(t, "tvly-env", v.GetString("search_api_key"))
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "briefing-engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
generation:
  provider: openai
  model: gpt-4o-mini
  base_url: http://localhost:11434/v1
  timeout: 10s
log:
  level: debug
`), 0o644))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	c, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.GenerationOpenAI, c.Generation.Provider)
	assert.Equal(t, "gpt-4o-mini", c.Generation.Model)
	assert.Equal(t, 10*time.Second, c.Generation.Timeout)
	assert.Equal(t, types.DefaultMaxTokens, c.Generation.MaxTokens)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, types.SearchTavily, c.Search.Provider)
}

func TestGenerationKeyName(t *testing.T) {
	assert.Equal(t, secrets.AnthropicAPIKey, generationKeyName(types.GenerationAnthropic))
	assert.Equal(t, secrets.AnthropicAPIKey, generationKeyName(""))
	assert.Equal(t, secrets.OpenAIAPIKey, generationKeyName(types.GenerationOpenAI))
}

func TestRunBrief_ValidatesBeforeWiring(t *testing.T) {
	prevCfg, prevLog, prevSecrets := cfg, log, loadedSecrets
	t.Cleanup(func() { cfg, log, loadedSecrets = prevCfg, prevLog, prevSecrets })

	// A searxng backend without a base url cannot be built, so reaching
	// pipeline construction would surface a different error.
	cfg = types.DefaultConfig()
	cfg.Search.Provider = types.SearchSearXNG
	log = logrus.New()
	log.SetOutput(io.Discard)
	loadedSecrets = secrets.Store{}

	err := runBrief(briefCmd, nil)
	require.Error(t, err)
	assert.Equal(t, briefing.KindValidation, briefing.Kind(err))
	assert.Equal(t, "Please enter at least one topic of interest!", briefing.Message(err))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the briefing-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/briefing-engine/internal/briefing"
	"github.com/pdiddy/briefing-engine/internal/logging"
	"github.com/pdiddy/briefing-engine/internal/secrets"
	"github.com/pdiddy/briefing-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir holds one file per API key.
const secretsDir = ".secrets/"

var (
	cfg           types.Config
	log           *logrus.Logger
	loadedSecrets secrets.Store
)

// rootCmd is the base command for the briefing-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "briefing-engine",
	Short: "Personalized daily news briefings from web search and an LLM",
	Long: `briefing-engine searches the web for recent news on your topics and asks a
language model to condense the results into a short markdown digest sized for
your reading time. Every briefing lists the source articles it was built from.

Use "brief" for a one-off briefing on the terminal and "serve" for the web UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		log, err = logging.New(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return err
		}
		if f := viper.ConfigFileUsed(); f != "" {
			log.WithField("file", f).Debug("using config file")
		}

		loadedSecrets, err = secrets.Load(secretsDir, log)
		if err != nil {
			return err
		}
		if len(loadedSecrets) > 0 {
			names := make([]string, 0, len(loadedSecrets))
			for k := range loadedSecrets {
				names = append(names, k)
			}
			sort.Strings(names)
			log.WithField("names", names).Debug("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./briefing-engine.yaml or ~/.config/briefing-engine/briefing-engine.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("briefing-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "briefing-engine"))
		}
	}

	setDefaults(viper.GetViper())
	viper.ReadInConfig()
}

// setDefaults registers every config key so that environment variables
// (BRIEFING_ENGINE_SEARCH_PROVIDER and so on) are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("search.provider", string(d.Search.Provider))
	v.SetDefault("search.searxng_base_url", d.Search.SearXNGBaseURL)
	v.SetDefault("search.timeout", d.Search.Timeout)
	v.SetDefault("search.user_agent", d.Search.UserAgent)
	v.SetDefault("search_api_key", "")
	v.SetDefault("generation.provider", string(d.Generation.Provider))
	v.SetDefault("generation.model", d.Generation.Model)
	v.SetDefault("generation.max_tokens", d.Generation.MaxTokens)
	v.SetDefault("generation.api_key", "")
	v.SetDefault("generation.base_url", d.Generation.BaseURL)
	v.SetDefault("generation.timeout", d.Generation.Timeout)
	v.SetDefault("generation.user_agent", d.Generation.UserAgent)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.timeout", d.Server.Timeout)

	v.SetEnvPrefix("BRIEFING_ENGINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func loadConfig(v *viper.Viper) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		msg := err.Error()
		if briefing.Kind(err) != briefing.KindUnknown {
			msg = briefing.Message(err)
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
		os.Exit(1)
	}
}

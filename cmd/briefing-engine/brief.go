// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/briefing-engine/internal/briefing"
	"github.com/pdiddy/briefing-engine/internal/secrets"
	"github.com/pdiddy/briefing-engine/pkg/types"
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Generate one news briefing and print it",
	Long: `Brief searches for the latest news on the given topics, composes a digest
sized for the reading time, and writes it to stdout followed by the source
articles.

The search API key is read from --api-key, BRIEFING_ENGINE_SEARCH_API_KEY, or
.secrets/tavily-api-key, in that order.`,
	RunE: runBrief,
}

func init() {
	briefCmd.Flags().String("topics", "", "topics of interest, comma-separated (e.g. \"AI, sports\")")
	briefCmd.Flags().String("reading-time", "10", "reading time in minutes: 5, 10 or 15")
	briefCmd.Flags().String("region", string(types.RegionGlobal), "region: Global, United States, Europe, Asia, India")
	briefCmd.Flags().String("format", string(briefing.OutputMarkdown), "output format: markdown, text, json, yaml or csl (sources only)")
	briefCmd.Flags().String("api-key", "", "search API key")

	rootCmd.AddCommand(briefCmd)
}

func runBrief(cmd *cobra.Command, args []string) error {
	topics, _ := cmd.Flags().GetString("topics")
	rtFlag, _ := cmd.Flags().GetString("reading-time")
	regionFlag, _ := cmd.Flags().GetString("region")
	format, _ := cmd.Flags().GetString("format")
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")

	readingTime, err := types.ParseReadingTime(rtFlag)
	if err != nil {
		return err
	}
	region, err := types.ParseRegion(regionFlag)
	if err != nil {
		return err
	}

	req := types.NewBriefingRequest(topics, readingTime, region)
	apiKey := loadedSecrets.Resolve(secrets.TavilyAPIKey, apiKeyFlag, viper.GetString("search_api_key"))
	if err := briefing.Validate(req, apiKey); err != nil {
		return err
	}

	p, err := newPipeline(cmd.Context())
	if err != nil {
		return err
	}

	b, err := p.Run(cmd.Context(), req, apiKey)
	if err != nil {
		return err
	}
	return briefing.Write(os.Stdout, b, briefing.OutputFormat(format))
}

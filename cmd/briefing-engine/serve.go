// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/briefing-engine/internal/briefing"
	"github.com/pdiddy/briefing-engine/internal/logging"
	"github.com/pdiddy/briefing-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the briefing web UI",
	Long: `Serve starts the single-page web UI. Each browser session keeps its own
latest briefing in memory; nothing is written to disk. The search API key is
entered in the page and used for that run only.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(cmd.Context())
	if err != nil {
		return err
	}

	h := server.NewHandler(p, briefing.NewSessionStore(), log)
	h.Timeout = cfg.Server.Timeout
	srv := server.NewHTTPServer(cfg.Server, h)

	app := kratos.New(
		kratos.Name("briefing-engine"),
		kratos.Version(version),
		kratos.Logger(logging.NewKratosLogger(log)),
		kratos.Server(srv),
	)
	log.WithField("addr", cfg.Server.Addr).Info("serving web UI")
	return app.Run()
}

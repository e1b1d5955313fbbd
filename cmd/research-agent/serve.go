// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/research-agent/internal/pipeline"
	"github.com/pdiddy/research-agent/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generation pipeline over HTTP",
	Long: `Serve exposes the pipeline as an HTTP API: POST /research runs one
generation per request, GET /papers looks up previously fetched reference
papers by topic, and GET /health reports liveness.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	p, err := pipeline.New(cfg, loadedSecrets, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	return server.New(p, p.Store, logger).Run(cfg.Server.Addr, cfg.Server.Mode)
}

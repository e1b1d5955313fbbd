// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-agent CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/research-agent/internal/agent"
	"github.com/pdiddy/research-agent/internal/secrets"
	"github.com/pdiddy/research-agent/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is the process-wide structured logger, built in the root
// pre-run so every subcommand shares it.
var logger *zap.Logger

// rootCmd is the base command for the research-agent CLI.
var rootCmd = &cobra.Command{
	Use:   "research-agent",
	Short: "Draft research papers from a topic and description",
	Long: `research-agent turns a research topic and description into a complete
draft paper: it fetches related papers from arXiv, drafts each section with a
language model, weaves inline citations, assembles an IEEE-style LaTeX
document, and records and publishes the result.

Run a single generation with "run", or expose the pipeline over HTTP with
"serve".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env values feed AutomaticEnv; missing file is fine.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s

		verbose, _ := cmd.Flags().GetBool("verbose")
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-agent.yaml or ~/.config/research-agent/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-agent")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-agent"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_AGENT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

// buildConfig assembles the pipeline configuration from config file,
// environment, and defaults.
func buildConfig() (types.PipelineConfig, error) {
	viper.SetDefault("fetch.max_results", 5)
	viper.SetDefault("fetch.timeout", "30s")
	viper.SetDefault("fetch.user_agent", "research-agent/0.1")
	viper.SetDefault("agents.base_url", agent.DefaultBaseURL)
	viper.SetDefault("agents.model", "gpt-4o-mini")
	viper.SetDefault("agents.temperature", 0.7)
	viper.SetDefault("agents.timeout", "120s")
	viper.SetDefault("citation.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("citation.model", "gpt-4o-mini")
	viper.SetDefault("citation.temperature", 0.3)
	viper.SetDefault("citation.timeout", "120s")
	viper.SetDefault("store.backend", string(types.StoreSQLite))
	viper.SetDefault("store.path", "data/research.db")
	viper.SetDefault("store.timeout", "30s")
	viper.SetDefault("publish.branch", "main")
	viper.SetDefault("publish.timeout", "30s")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.mode", "release")

	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

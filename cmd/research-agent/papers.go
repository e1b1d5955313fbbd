// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-agent/internal/secrets"
	"github.com/pdiddy/research-agent/internal/store"
	"github.com/pdiddy/research-agent/pkg/types"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "List stored reference papers for a topic",
	Long: `Papers queries the record store for reference papers fetched during
earlier runs of the given topic and prints them as YAML.`,
	RunE: runPapers,
}

func init() {
	papersCmd.Flags().String("topic", "", "research topic (required)")

	rootCmd.AddCommand(papersCmd)
}

func runPapers(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		return fmt.Errorf("provide a research topic with --topic")
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	var st store.Store
	switch cfg.Store.Backend {
	case types.StoreSQLite:
		st, err = store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return err
		}
	case types.StoreAirtable:
		cfg.Store.APIKey = secrets.Fallback(loadedSecrets, secrets.KeyAirtable, cfg.Store.APIKey)
		st = store.NewAirtableStore(cfg.Store)
	default:
		return fmt.Errorf("no record store configured")
	}
	defer st.Close()

	papers, err := st.ReferencePapersByTopic(cmd.Context(), topic)
	if err != nil {
		return err
	}
	if len(papers) == 0 {
		fmt.Fprintln(os.Stderr, "No papers recorded for topic:", topic)
		return nil
	}
	return yaml.NewEncoder(os.Stdout).Encode(papers)
}

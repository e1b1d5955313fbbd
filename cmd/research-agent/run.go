// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-agent/internal/arxiv"
	"github.com/pdiddy/research-agent/internal/diagram"
	"github.com/pdiddy/research-agent/internal/pipeline"
	"github.com/pdiddy/research-agent/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate one draft research paper",
	Long: `Run executes the full generation pipeline once: fetch related papers
from arXiv, draft each section, weave citations, assemble the LaTeX document,
and record and publish the result.

The pipeline result is printed as YAML; --output writes it to a file
instead. --bibliography additionally exports the fetched papers as CSL-YAML,
and --flowchart downloads the rendered methodology flowchart image.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("topic", "", "research topic (required)")
	runCmd.Flags().String("description", "", "short description of the research")
	runCmd.Flags().String("methodology", "", "human-supplied methodology input")
	runCmd.Flags().String("output", "", "write the pipeline result to this YAML file")
	runCmd.Flags().String("bibliography", "", "export fetched papers as CSL-YAML to this file")
	runCmd.Flags().String("flowchart", "", "download the flowchart image to this file")
	runCmd.Flags().String("latex", "", "write the rendered document to this file")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	if topic == "" {
		return fmt.Errorf("provide a research topic with --topic")
	}
	description, _ := cmd.Flags().GetString("description")
	methodology, _ := cmd.Flags().GetString("methodology")

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, loadedSecrets, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	res := p.Execute(cmd.Context(), types.GenerationRequest{
		Topic:            topic,
		Description:      description,
		MethodologyInput: methodology,
	})

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := writeResultYAML(output, res); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Wrote result:", output)
	} else if err := yaml.NewEncoder(os.Stdout).Encode(res); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	if bib, _ := cmd.Flags().GetString("bibliography"); bib != "" && len(res.Papers) > 0 {
		if err := writeBibliography(bib, res.Papers); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Wrote bibliography:", bib)
	}

	if texPath, _ := cmd.Flags().GetString("latex"); texPath != "" && res.LaTeX != "" {
		if err := os.WriteFile(texPath, []byte(res.LaTeX), 0o644); err != nil {
			return fmt.Errorf("writing document: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Wrote document:", texPath)
	}

	if imgPath, _ := cmd.Flags().GetString("flowchart"); imgPath != "" && res.FlowchartURL != "" {
		client := &http.Client{Timeout: cfg.Fetch.Timeout}
		img, err := diagram.Download(cmd.Context(), client, res.FlowchartURL)
		if err != nil {
			fmt.Fprintln(os.Stderr, "warning: flowchart download failed:", err)
		} else if err := os.WriteFile(imgPath, img, 0o644); err != nil {
			return fmt.Errorf("writing flowchart: %w", err)
		} else {
			fmt.Fprintln(os.Stderr, "Wrote flowchart:", imgPath)
		}
	}

	if !res.Success {
		return fmt.Errorf("pipeline failed: %s", res.Error)
	}
	return nil
}

func writeResultYAML(path string, res *types.PipelineResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

func writeBibliography(path string, papers []types.Paper) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := arxiv.FormatCSL(papers, f); err != nil {
		return fmt.Errorf("writing bibliography: %w", err)
	}
	return nil
}

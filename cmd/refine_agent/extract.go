package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-refiner/internal/config"
	"github.com/jonathan/resume-refiner/internal/extraction"
	"github.com/jonathan/resume-refiner/internal/observability"
)

var extractCommand = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured document from raw resume text",
	Long:  "Reads a raw resume (plain text or HTML), extracts it into a structured document via LLM, and writes the document JSON.",
	RunE:  runExtractCmd,
}

var (
	extractInput    string
	extractOutput   string
	extractAPIKey   string
	extractVerbose  bool
	extractJSONLogs bool
)

func init() {
	extractCommand.Flags().StringVarP(&extractInput, "input", "i", "", "Path to raw resume file (required)")
	extractCommand.Flags().StringVarP(&extractOutput, "output", "o", "", "Output path for document JSON (stdout if omitted)")
	extractCommand.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	extractCommand.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed debug information")
	extractCommand.Flags().BoolVar(&extractJSONLogs, "json-logs", false, "Emit JSON-encoded logs")

	_ = extractCommand.MarkFlagRequired("input")

	rootCmd.AddCommand(extractCommand)
}

func runExtractCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := &config.Config{
		Resume:   extractInput,
		Output:   extractOutput,
		APIKey:   extractAPIKey,
		Verbose:  extractVerbose,
		JSONLogs: extractJSONLogs,
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gen, closeGen, err := buildGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeGen()

	raw, err := os.ReadFile(extractInput)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	doc, err := extraction.ExtractResume(ctx, gen, string(raw), filepath.Base(extractInput))
	if err != nil {
		return err
	}

	if extractVerbose {
		observability.NewPrinter(os.Stderr).PrintDocument(doc)
	}

	return writeJSON(extractOutput, doc)
}

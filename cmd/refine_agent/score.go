package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-refiner/internal/config"
	"github.com/jonathan/resume-refiner/internal/observability"
	"github.com/jonathan/resume-refiner/internal/scoring"
)

var scoreCommand = &cobra.Command{
	Use:   "score",
	Short: "Score a document against a job description",
	Long:  "Evaluates how well a structured document matches a target job description and writes a 0-100 rating with rationale.",
	RunE:  runScoreCmd,
}

var (
	scoreDocument string
	scoreJob      string
	scoreOutput   string
	scoreAPIKey   string
	scoreVerbose  bool
	scoreJSONLogs bool
)

func init() {
	scoreCommand.Flags().StringVarP(&scoreDocument, "document", "d", "", "Path to structured document JSON (required)")
	scoreCommand.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job posting text (required)")
	scoreCommand.Flags().StringVarP(&scoreOutput, "output", "o", "", "Output path for evaluation JSON (stdout if omitted)")
	scoreCommand.Flags().StringVar(&scoreAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	scoreCommand.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print detailed debug information")
	scoreCommand.Flags().BoolVar(&scoreJSONLogs, "json-logs", false, "Emit JSON-encoded logs")

	_ = scoreCommand.MarkFlagRequired("document")
	_ = scoreCommand.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCommand)
}

func runScoreCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := &config.Config{
		Job:      scoreJob,
		Output:   scoreOutput,
		APIKey:   scoreAPIKey,
		Verbose:  scoreVerbose,
		JSONLogs: scoreJSONLogs,
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	doc, err := loadDocument(scoreDocument)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(scoreJob)
	if err != nil {
		return fmt.Errorf("failed to read job posting: %w", err)
	}

	gen, closeGen, err := buildGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeGen()

	eval, err := scoring.NewScorer(gen, log).Score(ctx, doc, string(raw))
	if err != nil {
		return err
	}

	if scoreVerbose {
		observability.NewPrinter(os.Stderr).PrintMatch(eval)
	}

	return writeJSON(scoreOutput, eval)
}

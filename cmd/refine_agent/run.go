package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-refiner/internal/config"
	"github.com/jonathan/resume-refiner/internal/extraction"
	"github.com/jonathan/resume-refiner/internal/observability"
	"github.com/jonathan/resume-refiner/internal/refinement"
	"github.com/jonathan/resume-refiner/internal/scoring"
	"github.com/jonathan/resume-refiner/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: extract, refine, score",
	Long: `Runs the end-to-end pipeline on a raw resume and job posting: extracts both
into structured form, refines the resume to fit its budgets using the posting
as relevance context, and scores the refined result against the posting.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runRunCmd,
}

var (
	runConfigPath    string
	runResume        string
	runJob           string
	runBudgets       string
	runOutput        string
	runMaxIterations int
	runMaxReduction  float64
	runAPIKey        string
	runVerbose       bool
	runJSONLogs      bool
)

// pipelineArtifact is the run command's output: every stage's product in one
// document so a caller can audit the whole pass.
type pipelineArtifact struct {
	Job      *types.JobPosting         `json:"job"`
	Document *types.StructuredDocument `json:"document"`
	Outcome  *refinement.Outcome       `json:"outcome"`
	Match    *types.MatchEvaluation    `json:"match,omitempty"`
}

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to raw resume file (required)")
	runCommand.Flags().StringVarP(&runJob, "job", "j", "", "Path to raw job posting file (required)")
	runCommand.Flags().StringVarP(&runBudgets, "budgets", "b", "", "Path to budget table JSON (built-in defaults if omitted)")
	runCommand.Flags().StringVarP(&runOutput, "output", "o", "", "Output path for pipeline artifact JSON (stdout if omitted)")
	runCommand.Flags().IntVar(&runMaxIterations, "max-iterations", 0, "Per-field iteration ceiling (default 2)")
	runCommand.Flags().Float64Var(&runMaxReduction, "max-step-reduction", 0, "Cap on a single section reduction, 0-1 (default 0.5)")
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().BoolVar(&runJSONLogs, "json-logs", false, "Emit JSON-encoded logs")

	_ = runCommand.MarkFlagRequired("resume")
	_ = runCommand.MarkFlagRequired("job")

	rootCmd.AddCommand(runCommand)
}

func runRunCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := mergeConfig(runConfigPath, config.Config{
		Resume:           runResume,
		Job:              runJob,
		Budgets:          runBudgets,
		Output:           runOutput,
		MaxIterations:    runMaxIterations,
		MaxStepReduction: runMaxReduction,
		APIKey:           runAPIKey,
		Verbose:          runVerbose,
		JSONLogs:         runJSONLogs,
	})
	if err != nil {
		return err
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	table, err := loadBudgets(cfg)
	if err != nil {
		return err
	}

	gen, closeGen, err := buildGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeGen()

	printer := observability.NewPrinter(os.Stderr)

	rawJob, err := os.ReadFile(cfg.Job)
	if err != nil {
		return fmt.Errorf("failed to read job posting: %w", err)
	}
	posting, err := extraction.ExtractJob(ctx, gen, string(rawJob), filepath.Base(cfg.Job))
	if err != nil {
		return err
	}

	rawResume, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	doc, err := extraction.ExtractResume(ctx, gen, string(rawResume), filepath.Base(cfg.Resume))
	if err != nil {
		return err
	}
	if cfg.Verbose {
		printer.PrintDocument(doc)
	}

	engine, err := refinement.NewEngine(gen, table, engineOptions(cfg), log)
	if err != nil {
		return err
	}

	outcome, err := engine.Refine(ctx, doc, posting.Description)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		printer.PrintOutcome(outcome)
	}

	artifact := pipelineArtifact{Job: posting, Document: doc, Outcome: outcome}

	// Score even a non-converged document; the rating tells the caller
	// whether the result is worth keeping despite remaining overflow.
	eval, err := scoring.NewScorer(gen, log).Score(ctx, doc, posting.Description)
	if err != nil {
		log.Warn("match scoring failed", zap.Error(err))
	} else {
		artifact.Match = eval
		if cfg.Verbose {
			printer.PrintMatch(eval)
		}
	}

	return writeJSON(cfg.Output, artifact)
}

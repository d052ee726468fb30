package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-refiner/internal/config"
	"github.com/jonathan/resume-refiner/internal/observability"
	"github.com/jonathan/resume-refiner/internal/refinement"
	"github.com/jonathan/resume-refiner/internal/types"
)

var refineCommand = &cobra.Command{
	Use:   "refine",
	Short: "Refine a structured document to fit its budgets",
	Long: `Drives the iterative refinement engine over an extracted document until every
per-category character budget is satisfied or the iteration ceiling is reached.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runRefineCmd,
}

var (
	refineConfigPath    string
	refineDocument      string
	refineJob           string
	refineBudgets       string
	refineOutput        string
	refineMaxIterations int
	refineMaxReduction  float64
	refineAPIKey        string
	refineVerbose       bool
	refineJSONLogs      bool
)

// refineArtifact is the refine command's output: the refined document plus
// the audit trail of the run.
type refineArtifact struct {
	Document *types.StructuredDocument `json:"document"`
	Outcome  *refinement.Outcome       `json:"outcome"`
}

func init() {
	refineCommand.Flags().StringVar(&refineConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	refineCommand.Flags().StringVarP(&refineDocument, "document", "d", "", "Path to extracted document JSON (required)")
	refineCommand.Flags().StringVarP(&refineJob, "job", "j", "", "Path to job posting text used as pruning context (optional)")
	refineCommand.Flags().StringVarP(&refineBudgets, "budgets", "b", "", "Path to budget table JSON (built-in defaults if omitted)")
	refineCommand.Flags().StringVarP(&refineOutput, "output", "o", "", "Output path for refined artifact JSON (stdout if omitted)")
	refineCommand.Flags().IntVar(&refineMaxIterations, "max-iterations", 0, "Per-field iteration ceiling (default 2)")
	refineCommand.Flags().Float64Var(&refineMaxReduction, "max-step-reduction", 0, "Cap on a single section reduction, 0-1 (default 0.5)")
	refineCommand.Flags().StringVar(&refineAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	refineCommand.Flags().BoolVarP(&refineVerbose, "verbose", "v", false, "Print detailed debug information")
	refineCommand.Flags().BoolVar(&refineJSONLogs, "json-logs", false, "Emit JSON-encoded logs")

	_ = refineCommand.MarkFlagRequired("document")

	rootCmd.AddCommand(refineCommand)
}

func runRefineCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := mergeConfig(refineConfigPath, config.Config{
		Job:              refineJob,
		Budgets:          refineBudgets,
		Output:           refineOutput,
		MaxIterations:    refineMaxIterations,
		MaxStepReduction: refineMaxReduction,
		APIKey:           refineAPIKey,
		Verbose:          refineVerbose,
		JSONLogs:         refineJSONLogs,
	})
	if err != nil {
		return err
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	doc, err := loadDocument(refineDocument)
	if err != nil {
		return err
	}

	table, err := loadBudgets(cfg)
	if err != nil {
		return err
	}

	jobContext := ""
	if cfg.Job != "" {
		raw, err := os.ReadFile(cfg.Job)
		if err != nil {
			return fmt.Errorf("failed to read job posting: %w", err)
		}
		jobContext = string(raw)
	}

	gen, closeGen, err := buildGenerator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeGen()

	engine, err := refinement.NewEngine(gen, table, engineOptions(cfg), log)
	if err != nil {
		return err
	}

	outcome, err := engine.Refine(ctx, doc, jobContext)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintOutcome(outcome)
		printer.PrintViolations(&outcome.Remaining)
	}

	return writeJSON(cfg.Output, refineArtifact{Document: doc, Outcome: outcome})
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-refiner/internal/batch"
	"github.com/jonathan/resume-refiner/internal/config"
	"github.com/jonathan/resume-refiner/internal/refinement"
	"github.com/jonathan/resume-refiner/internal/types"
)

var batchCommand = &cobra.Command{
	Use:   "batch",
	Short: "Refine a directory of documents concurrently",
	Long: `Refines every document JSON file in a directory against a shared job posting.
Documents are processed concurrently up to the configured limit; one document
failing does not stop the others.`,
	RunE: runBatchCmd,
}

var (
	batchDir           string
	batchJob           string
	batchBudgets       string
	batchOutput        string
	batchMaxIterations int
	batchMaxReduction  float64
	batchConcurrency   int
	batchAPIKey        string
	batchVerbose       bool
	batchJSONLogs      bool
)

// batchEntry is one document's slot in the batch report.
type batchEntry struct {
	File     string                    `json:"file"`
	Document *types.StructuredDocument `json:"document,omitempty"`
	Outcome  *refinement.Outcome       `json:"outcome,omitempty"`
	Error    string                    `json:"error,omitempty"`
}

func init() {
	batchCommand.Flags().StringVarP(&batchDir, "dir", "d", "", "Directory of document JSON files (required)")
	batchCommand.Flags().StringVarP(&batchJob, "job", "j", "", "Path to job posting text used as pruning context (optional)")
	batchCommand.Flags().StringVarP(&batchBudgets, "budgets", "b", "", "Path to budget table JSON (built-in defaults if omitted)")
	batchCommand.Flags().StringVarP(&batchOutput, "output", "o", "", "Output path for batch report JSON (stdout if omitted)")
	batchCommand.Flags().IntVar(&batchMaxIterations, "max-iterations", 0, "Per-field iteration ceiling (default 2)")
	batchCommand.Flags().Float64Var(&batchMaxReduction, "max-step-reduction", 0, "Cap on a single section reduction, 0-1 (default 0.5)")
	batchCommand.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Maximum parallel refinement runs (default 5)")
	batchCommand.Flags().StringVar(&batchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	batchCommand.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print detailed debug information")
	batchCommand.Flags().BoolVar(&batchJSONLogs, "json-logs", false, "Emit JSON-encoded logs")

	_ = batchCommand.MarkFlagRequired("dir")

	rootCmd.AddCommand(batchCommand)
}

func runBatchCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := &config.Config{
		Job:              batchJob,
		Budgets:          batchBudgets,
		Output:           batchOutput,
		MaxIterations:    batchMaxIterations,
		MaxStepReduction: batchMaxReduction,
		Concurrency:      batchConcurrency,
		APIKey:           batchAPIKey,
		Verbose:          batchVerbose,
		JSONLogs:         batchJSONLogs,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	files, err := listDocumentFiles(batchDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no document JSON files found in %s", batchDir)
	}

	docs := make([]*types.StructuredDocument, len(files))
	entries := make([]batchEntry, len(files))
	for i, f := range files {
		entries[i].File = filepath.Base(f)
		doc, err := loadDocument(f)
		if err != nil {
			entries[i].Error = err.Error()
			continue
		}
		docs[i] = doc
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

	// Only documents that loaded cleanly go to the runner; their results are
	// mapped back to the original file order afterwards.
	var loaded []*types.StructuredDocument
	var loadedIdx []int
	for i, doc := range docs {
		if doc != nil {
			loaded = append(loaded, doc)
			loadedIdx = append(loadedIdx, i)
		}
	}

	runner := batch.NewRunner(engine, cfg.Concurrency, log)
	results := runner.RefineAll(ctx, loaded, jobContext)

	converged := 0
	for _, res := range results {
		entry := &entries[loadedIdx[res.Index]]
		entry.Document = res.Document
		entry.Outcome = res.Outcome
		if res.Err != nil {
			entry.Error = res.Err.Error()
			continue
		}
		if res.Outcome.Converged() {
			converged++
		}
	}

	log.Info("batch finished",
		zap.Int("documents", len(files)),
		zap.Int("converged", converged))

	return writeJSON(cfg.Output, entries)
}

// listDocumentFiles returns the .json files in dir, sorted by name.
func listDocumentFiles(dir string) ([]string, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var files []string
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(item.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, item.Name()))
	}
	sort.Strings(files)
	return files, nil
}

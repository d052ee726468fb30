package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/resume-refiner/internal/budget"
	"github.com/jonathan/resume-refiner/internal/config"
	"github.com/jonathan/resume-refiner/internal/generation"
	"github.com/jonathan/resume-refiner/internal/llm"
	"github.com/jonathan/resume-refiner/internal/logger"
	"github.com/jonathan/resume-refiner/internal/refinement"
	"github.com/jonathan/resume-refiner/internal/schemas"
	"github.com/jonathan/resume-refiner/internal/types"
)

// buildLogger constructs the CLI logger from shared flags.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.JSONLogs, cfg.Verbose)
}

// buildGenerator wires the Gemini-backed generator. The returned close
// function releases the underlying client.
func buildGenerator(ctx context.Context, cfg *config.Config, log *zap.Logger) (generation.Generator, func(), error) {
	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		return nil, nil, fmt.Errorf("API key is required (set --api-key or GEMINI_API_KEY)")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	gen := generation.NewLLMGenerator(client, log)
	return gen, func() { _ = client.Close() }, nil
}

// loadBudgets loads the budget table from the configured path, or the
// built-in defaults when no path is given.
func loadBudgets(cfg *config.Config) (*types.BudgetTable, error) {
	if cfg.Budgets == "" {
		return budget.Default(), nil
	}
	return budget.Load(cfg.Budgets)
}

// engineOptions merges configured engine knobs over the defaults.
func engineOptions(cfg *config.Config) refinement.Options {
	opts := refinement.DefaultOptions()
	if cfg.MaxIterations > 0 {
		opts.MaxIterations = cfg.MaxIterations
	}
	if cfg.MaxStepReduction > 0 {
		opts.MaxStepReduction = cfg.MaxStepReduction
	}
	return opts
}

// loadDocument reads and schema-validates a StructuredDocument JSON file.
func loadDocument(path string) (*types.StructuredDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	if err := schemas.Validate(schemas.StructuredDocumentSchema, data); err != nil {
		return nil, fmt.Errorf("document %s is invalid: %w", path, err)
	}
	var doc types.StructuredDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	return &doc, nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// mergeConfig loads an optional config file and overlays flag values on top.
func mergeConfig(configPath string, flags config.Config) (*config.Config, error) {
	if configPath == "" {
		if err := flags.Validate(); err != nil {
			return nil, err
		}
		return &flags, nil
	}

	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	merged := flags.MergeWithDefaults(*loaded)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Resume  string `json:"resume,omitempty"`  // Path to raw resume text file
	Job     string `json:"job,omitempty"`     // Path to job posting text file
	Budgets string `json:"budgets,omitempty"` // Path to budget table JSON (built-in defaults if empty)
	Output  string `json:"output,omitempty"`  // Output path for refined document JSON

	// Engine
	MaxIterations    int     `json:"max_iterations,omitempty"`     // Per-field iteration ceiling
	MaxStepReduction float64 `json:"max_step_reduction,omitempty"` // Cap on a single section reduction (0.0-1.0)
	Concurrency      int     `json:"concurrency,omitempty"`        // Parallel documents in batch mode

	// Behavior
	APIKey   string `json:"api_key,omitempty"`   // Gemini API key
	Verbose  bool   `json:"verbose,omitempty"`   // Print detailed debug information
	JSONLogs bool   `json:"json_logs,omitempty"` // Emit JSON-encoded logs
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.MaxIterations < 0 {
		return fmt.Errorf("config error: 'max_iterations' must be non-negative")
	}
	if c.MaxStepReduction < 0 || c.MaxStepReduction > 1 {
		return fmt.Errorf("config error: 'max_step_reduction' must be in [0,1]")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	for name, path := range map[string]string{"resume": c.Resume, "job": c.Job, "budgets": c.Budgets} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// ResolveAPIKey returns the configured API key, falling back to the
// GEMINI_API_KEY environment variable.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.Budgets == "" {
		result.Budgets = defaults.Budgets
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.MaxIterations == 0 {
		result.MaxIterations = defaults.MaxIterations
	}
	if result.MaxStepReduction == 0 {
		result.MaxStepReduction = defaults.MaxStepReduction
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	if !result.JSONLogs {
		result.JSONLogs = defaults.JSONLogs
	}

	return result
}

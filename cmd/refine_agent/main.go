// Package main provides the entry point for the resume-refiner CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "refine_agent",
	Short: "Resume Refiner CLI",
	Long:  "Resume Refiner extracts structured content from raw resumes and job postings, iteratively refines it to fit per-field character budgets, and scores the result against the target job.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

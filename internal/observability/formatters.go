// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-refiner/internal/refinement"
	"github.com/jonathan/resume-refiner/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs a human-readable summary of an extracted document.
func (p *Printer) PrintDocument(doc *types.StructuredDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Objective:      %d chars\n", types.TextLength(doc.Objective)))
	sb.WriteString(fmt.Sprintf("Skills:         %d\n", len(doc.Skills)))
	sb.WriteString(fmt.Sprintf("Sections:       %d\n", len(doc.Sections)))
	for i, sec := range doc.Sections {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Sections)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  %s (%d bullets, %d chars)\n", sec.Title, len(sec.Bullets), sec.AggregateLength()))
	}
	sb.WriteString(fmt.Sprintf("Total length:   %d chars", doc.TotalLength()))

	p.printBox("EXTRACTED DOCUMENT", sb.String())
}

// PrintViolations outputs the current set of budget violations.
func (p *Printer) PrintViolations(violations *types.Violations) {
	var sb strings.Builder
	if violations.Empty() {
		sb.WriteString("All fields within budget")
	} else {
		for i, v := range violations.Violations {
			if i >= maxItemsToShow {
				sb.WriteString(fmt.Sprintf("... and %d more", len(violations.Violations)-maxItemsToShow))
				break
			}
			sb.WriteString(fmt.Sprintf("%s: %d chars (+%d over %d)\n", v.FieldID, v.Length, v.Overage, v.MaxChars))
		}
	}
	p.printBox("VIOLATIONS", strings.TrimRight(sb.String(), "\n"))
}

// PrintOutcome outputs a summary of a finished refinement run.
func (p *Printer) PrintOutcome(outcome *refinement.Outcome) {
	if outcome == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("State:        %s\n", outcome.State))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", outcome.Iterations))
	sb.WriteString(fmt.Sprintf("Attempts:     %d\n", len(outcome.Attempts)))
	sb.WriteString(fmt.Sprintf("Escalated:    %t\n", outcome.Escalated))
	sb.WriteString(fmt.Sprintf("Remaining:    %d violations", len(outcome.Remaining.Violations)))
	for i, a := range outcome.Attempts {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n... and %d more attempts", len(outcome.Attempts)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("\n[%d] %s %s: %d -> %d", a.Iteration, a.Strategy, a.FieldID, a.BeforeLen, a.AfterLen))
	}

	p.printBox("REFINEMENT OUTCOME", sb.String())
}

// PrintMatch outputs the match evaluation for a refined document.
func (p *Printer) PrintMatch(eval *types.MatchEvaluation) {
	if eval == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/100\n", eval.Score))
	sb.WriteString(eval.Explanation)
	p.printBox("MATCH EVALUATION", sb.String())
}

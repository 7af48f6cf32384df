// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Saanvi26/ATS-Scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output
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

// PrintAnalysisResult outputs a human-readable summary of a scoring run.
func (p *Printer) PrintAnalysisResult(name string, result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:    %.0f / 100\n", result.Score))
	sb.WriteString(fmt.Sprintf("Match:    %.0f%%\n", result.MatchPercentage))

	writeList(&sb, "Matching Keywords", result.KeywordMatches)
	writeList(&sb, "Missing Keywords", result.MissingKeywords)
	writeList(&sb, "Suggestions", result.Suggestions)

	title := "ANALYSIS RESULT"
	if name != "" {
		title = fmt.Sprintf("ANALYSIS RESULT: %s", name)
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDetailedAnalysis outputs the long-form analysis text, wrapped to the
// box width.
func (p *Printer) PrintDetailedAnalysis(result *types.AnalysisResult) {
	if result == nil || result.DetailedAnalysis == "" {
		return
	}
	p.printBox("DETAILED ANALYSIS", wrap(result.DetailedAnalysis, boxWidth-4))
}

// PrintProgress writes a single progress line.
//
//nolint:errcheck
func (p *Printer) PrintProgress(step, message string) {
	fmt.Fprintf(p.out, "  [%s] %s\n", step, message)
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// wrap breaks text into lines no longer than width.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				sb.WriteString("\n")
				lineLen = 0
			} else {
				sb.WriteString(" ")
				lineLen++
			}
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}

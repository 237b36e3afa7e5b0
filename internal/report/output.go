package report

import (
	"io"
	"os"
)

// OutputFormat represents the lint output format
type OutputFormat string

const (
	// OutputIssues shows only issues in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics and missing classes only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues and statistics
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data for tooling
	OutputJSON OutputFormat = "json"
	// OutputMarkdown generates a shareable Markdown report
	OutputMarkdown OutputFormat = "markdown"
)

// DetermineOutputFormat selects the output format from flags. Quiet wins
// and selects issues, whose output the caller suppresses. Unknown formats
// fall back to the default.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	if quiet {
		return OutputIssues
	}

	switch formatFlag {
	case "issues":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	case "markdown", "md":
		return OutputMarkdown
	}
	return DetermineDefaultOutputFormat()
}

// DetermineDefaultOutputFormat returns issues, like golangci-lint.
func DetermineDefaultOutputFormat() OutputFormat {
	return OutputIssues
}

// WriteOutput writes the lint result in the given format
func WriteOutput(w io.Writer, result *Result, format OutputFormat, opts Options) {
	switch format {
	case OutputIssues:
		reporter := NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

	case OutputSummary:
		verbose := NewVerboseReporter(w, ShouldUseColors(opts.UseColors))
		verbose.PrintStatistics(*result)
		verbose.PrintCoverage(*result)
		verbose.PrintTopMissing(*result)
		verbose.PrintWarnings(*result)

	case OutputFull:
		reporter := NewReporter(w, opts)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

		verbose := NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintStatistics(*result)
		verbose.PrintCoverage(*result)
		verbose.PrintTopMissing(*result)
		verbose.PrintWarnings(*result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			os.Stderr.WriteString("Error writing JSON: " + err.Error() + "\n")
		}

	case OutputMarkdown:
		if err := WriteMarkdown(w, result); err != nil {
			os.Stderr.WriteString("Error writing Markdown: " + err.Error() + "\n")
		}
	}
}

// LimitIssues applies the max-issues-per-linter and max-same-issues limits
// and returns the kept issues with the number removed.
func LimitIssues(issues []Issue, maxPerLinter, maxSame int) ([]Issue, int) {
	originalCount := len(issues)

	if maxPerLinter > 0 {
		perLinter := make(map[string]int)
		var kept []Issue
		for _, issue := range issues {
			if perLinter[issue.FromLinter] < maxPerLinter {
				kept = append(kept, issue)
				perLinter[issue.FromLinter]++
			}
		}
		issues = kept
	}

	if maxSame > 0 {
		issues = deduplicateSameIssues(issues, maxSame)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if messageCounts[issue.Text] < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}
	return filtered
}

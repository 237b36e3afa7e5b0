package animax

import (
	"io"

	"github.com/yacobolo/animax/internal/report"
)

// ReportOptions controls how lint issues are printed.
type ReportOptions = report.Options

// OutputFormat represents the lint output format
type OutputFormat = report.OutputFormat

// Lint output formats
const (
	OutputIssues   = report.OutputIssues
	OutputSummary  = report.OutputSummary
	OutputFull     = report.OutputFull
	OutputJSON     = report.OutputJSON
	OutputMarkdown = report.OutputMarkdown
)

// DetermineOutputFormat selects the output format from the format flag.
// Quiet selects issues, whose output the caller suppresses.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	return report.DetermineOutputFormat(formatFlag, quiet)
}

// WriteOutput writes the lint result in the given format
func WriteOutput(w io.Writer, result *LintResult, format OutputFormat, opts ReportOptions) {
	report.WriteOutput(w, result, format, opts)
}

// WriteJSON writes the lint result as JSON
func WriteJSON(w io.Writer, result *LintResult) error {
	return report.WriteJSON(w, result)
}

// WriteMarkdown writes the lint result as a Markdown report
func WriteMarkdown(w io.Writer, result *LintResult) error {
	return report.WriteMarkdown(w, result)
}

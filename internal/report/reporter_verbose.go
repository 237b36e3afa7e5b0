package report

import (
	"fmt"
	"io"
)

// VerboseReporter prints coverage statistics and the most referenced
// missing classes.
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs lint statistics
func (r *VerboseReporter) PrintStatistics(result Result) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Page Linter Statistics", r.useColors))
	fmt.Fprintln(r.w, "------------------------")

	fmt.Fprintf(r.w, "Pages Scanned:     %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Style Files:       %d\n", result.StyleFiles)
	fmt.Fprintf(r.w, "Classes Defined:   %d\n", result.ClassesDefined)
	fmt.Fprintf(r.w, "Class References:  %d\n", result.ClassRefs)
	fmt.Fprintf(r.w, "Resolved:          %d (%.1f%%)\n", result.ResolvedRefs, result.CoveragePercentage)
	fmt.Fprintf(r.w, "Unknown Classes:   %d\n", result.ErrorCount)
}

// PrintCoverage shows the share of resolved class references as a bar.
func (r *VerboseReporter) PrintCoverage(result Result) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Class Coverage", r.useColors))
	fmt.Fprintln(r.w, "----------------")
	printProgressBar(r.w, result.CoveragePercentage)
}

// PrintTopMissing lists the classes referenced most often without a rule.
func (r *VerboseReporter) PrintTopMissing(result Result) {
	if len(result.TopMissing) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleRed, "Most Referenced Missing Classes", r.useColors))
	fmt.Fprintln(r.w, "---------------------------------")

	for i, m := range result.TopMissing {
		if m.Suggestion != "" {
			fmt.Fprintf(r.w, "%d. %q - %d occurrences → did you mean %q?\n", i+1, m.ClassName, m.Occurrences, m.Suggestion)
			continue
		}
		fmt.Fprintf(r.w, "%d. %q - %d occurrences\n", i+1, m.ClassName, m.Occurrences)
	}
}

// PrintWarnings shows files that could not be processed
func (r *VerboseReporter) PrintWarnings(result Result) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}

package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteMarkdown writes a shareable Markdown lint report
func WriteMarkdown(w io.Writer, result *Result) error {
	var b strings.Builder
	errors, warnings := countSeverities(result.Issues)

	b.WriteString("# Page Linter Report\n\n")
	fmt.Fprintf(&b, "*%s*\n\n", time.Now().Format("2006-01-02 15:04"))

	b.WriteString("## Executive Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| **Status** | %s |\n", statusBadge(result))
	fmt.Fprintf(&b, "| **Total Issues** | %d (%d errors, %d warnings) |\n", len(result.Issues), errors, warnings)
	fmt.Fprintf(&b, "| **Pages Scanned** | %d |\n", result.FilesScanned)
	fmt.Fprintf(&b, "| **Class Coverage** | %.1f%% |\n", result.CoveragePercentage)
	fmt.Fprintf(&b, "| **References Resolved** | %d / %d |\n", result.ResolvedRefs, result.ClassRefs)
	b.WriteString("\n")

	if len(result.TopMissing) > 0 {
		b.WriteString("## 🎯 Most Referenced Missing Classes\n\n")
		b.WriteString("| Class | Occurrences | Did you mean |\n|---|---|---|\n")
		for _, m := range result.TopMissing {
			suggestion := ""
			if m.Suggestion != "" {
				suggestion = "`" + escapeMarkdown(m.Suggestion) + "`"
			}
			fmt.Fprintf(&b, "| `%s` | %d | %s |\n", escapeMarkdown(m.ClassName), m.Occurrences, suggestion)
		}
		b.WriteString("\n")
	}

	if errors > 0 {
		b.WriteString("## ❌ Errors\n\n")
		b.WriteString("| Location | Message |\n|---|---|\n")
		for _, issue := range result.Issues {
			if issue.Severity != SeverityError {
				continue
			}
			fmt.Fprintf(&b, "| `%s:%d:%d` | %s |\n",
				escapeMarkdown(issue.Pos.Filename), issue.Pos.Line, issue.Pos.Column, escapeMarkdown(issue.Text))
		}
		b.WriteString("\n")
	}

	b.WriteString("## 📊 Detailed Statistics\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Style Files | %d |\n", result.StyleFiles)
	fmt.Fprintf(&b, "| Classes Defined | %d |\n", result.ClassesDefined)
	fmt.Fprintf(&b, "| Class References | %d |\n", result.ClassRefs)
	fmt.Fprintf(&b, "| Unknown Classes | %d |\n", result.ErrorCount)
	fmt.Fprintf(&b, "| Truncated Issues | %d |\n", result.TruncatedCount)
	b.WriteString("\n")

	if len(result.Suggestions) > 0 {
		b.WriteString("## ✅ Recommendations\n\n")
		for _, s := range result.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n*Generated by animax lint v1.0*\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func statusBadge(result *Result) string {
	switch {
	case result.ErrorCount > 0:
		return "🔴 Needs Attention"
	case len(result.Issues) > 0:
		return "🟡 Warnings"
	default:
		return "🟢 Clean"
	}
}

// escapeMarkdown escapes characters that break table cells.
func escapeMarkdown(s string) string {
	return strings.NewReplacer("|", "\\|", "\n", " ").Replace(s)
}

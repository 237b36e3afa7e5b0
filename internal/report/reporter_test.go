package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCaretIndicator(t *testing.T) {
	reporter := &Reporter{}

	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "  <div class=\"btn\">",
			column:     15,
			want:       "              ^",
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\t<button class=\"icon\">",
			column:     17,
			want:       "\t\t              ^",
		},
		{
			name:       "start of line",
			sourceLine: "class=\"btn\"",
			column:     1,
			want:       "^",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			want:       "     ^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reporter.buildCaretIndicator(tt.sourceLine, tt.column)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPrintIssues_SortedWithSource(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, Options{PrintIssuedLines: true, PrintLinterName: true})
	r.useColors = false

	r.PrintIssues([]Issue{
		{FromLinter: LinterName, Text: `class "b" not found in stylesheet`, Severity: SeverityError,
			Pos: IssuePos{Filename: "b.max", Line: 3, Column: 5}},
		{FromLinter: LinterName, Text: IssueMissingTemplate, Severity: SeverityWarning,
			Pos: IssuePos{Filename: "a.max", Line: 1, Column: 1}},
		{FromLinter: LinterName, Text: `class "x" not found in stylesheet`, Severity: SeverityError,
			SourceLines: []string{`<p class="x">`}, Pos: IssuePos{Filename: "a.max", Line: 2, Column: 11}},
	})

	assert.Equal(t, `a.max:1:1: warning: page has no <template> section (maxlint)
a.max:2:11: class "x" not found in stylesheet (maxlint)
	<p class="x">
	          ^
b.max:3:5: class "b" not found in stylesheet (maxlint)
`, buf.String())
}

func TestPrintIssues_Replacement(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, Options{PrintIssuedLines: true})
	r.useColors = false

	r.PrintIssues([]Issue{{
		FromLinter:  LinterName,
		Text:        `class "cardd" not found in stylesheet`,
		Severity:    SeverityError,
		SourceLines: []string{`<div class="cardd">`},
		Replacement: &Replacement{NewText: "card", InlineLength: 5},
		Pos:         IssuePos{Filename: "index.max", Line: 4, Column: 13},
	}})

	assert.Equal(t, "index.max:4:13: class \"cardd\" not found in stylesheet\n"+
		"\t<div class=\"cardd\">\n"+
		"\t            ^~~~~\n"+
		"\tdid you mean \"card\"?\n", buf.String())
}

func TestPrintSummary(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{
			name:   "no issues",
			result: Result{},
			want:   "0 issues:",
		},
		{
			name: "mixed severities with truncation",
			result: Result{
				TruncatedCount: 2,
				Issues: []Issue{
					{FromLinter: LinterName, Severity: SeverityError},
					{FromLinter: LinterName, Severity: SeverityWarning},
				},
			},
			want: "2 issues (1 error, 1 warning, 2 issues truncated):",
		},
		{
			name:   "single error",
			result: Result{Issues: []Issue{{FromLinter: LinterName, Severity: SeverityError}}},
			want:   "1 issue:\n* maxlint: 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewReporter(&buf, Options{})
			r.useColors = false
			r.PrintSummary(tt.result)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

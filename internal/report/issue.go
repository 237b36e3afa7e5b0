// Package report formats lint results for terminals, CI logs and tooling.
// Issues follow the golangci-lint layout: file:line:col: message (linter).
package report

// Issue represents a single lint finding in golangci-lint format
type Issue struct {
	FromLinter  string       `json:"FromLinter"`  // "maxlint"
	Text        string       `json:"Text"`        // "class \"btn-ghost\" not found in stylesheet"
	Severity    string       `json:"Severity"`    // "", "warning", "error"
	SourceLines []string     `json:"SourceLines"` // Lines of the page with the issue
	Pos         IssuePos     `json:"Pos"`
	LineRange   *LineRange   `json:"LineRange"`
	Replacement *Replacement `json:"Replacement"`
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "src/pages/index.max"
	Line     int    `json:"Line"`
	Column   int    `json:"Column"` // 1-based, start of the offending text
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// Replacement suggests the text that fixes an issue.
type Replacement struct {
	NewText      string
	InlineLength int
}

// Severity levels
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// LinterName is the FromLinter value of every page issue.
const LinterName = "maxlint"

// Issue texts
const (
	IssueUnknownClass    = "class %q not found in stylesheet"
	IssueMissingTemplate = "page has no <template> section"
	IssueUnknownMarker   = "unknown marker %q"
	IssueUnreadablePage  = "page could not be read: %s"
)

// MissingClass counts the references to one class the stylesheet lacks.
type MissingClass struct {
	ClassName   string
	Occurrences int
	Suggestion  string // closest defined class, if any
}

// Result contains lint analysis results
type Result struct {
	Issues         []Issue
	ErrorCount     int
	TruncatedCount int // issues removed by limits

	FilesScanned       int // pages
	StyleFiles         int
	ClassesDefined     int // distinct classes in the compiled stylesheet
	ClassRefs          int // class references found in templates
	ResolvedRefs       int
	CoveragePercentage float64 // ResolvedRefs / ClassRefs

	TopMissing  []MissingClass
	Warnings    []string
	Suggestions []string
}

// Options controls how issues are printed.
type Options struct {
	PrintIssuedLines bool
	PrintLinterName  bool
	UseColors        bool // force colors; otherwise auto-detected
}

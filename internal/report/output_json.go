package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version    string        `json:"version"`
	Timestamp  string        `json:"timestamp"`
	Summary    JSONSummary   `json:"summary"`
	Stats      JSONStats     `json:"stats"`
	Issues     []JSONIssue   `json:"issues"`
	TopMissing []JSONMissing `json:"top_missing"`
	Warnings   []string      `json:"warnings"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Truncated    int `json:"truncated"`
	FilesScanned int `json:"files_scanned"`
}

// JSONStats contains class coverage statistics
type JSONStats struct {
	StyleFiles         int     `json:"style_files"`
	ClassesDefined     int     `json:"classes_defined"`
	ClassReferences    int     `json:"class_references"`
	ResolvedReferences int     `json:"resolved_references"`
	CoveragePercentage float64 `json:"coverage_percentage"`
}

// JSONIssue represents a single lint issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"`
}

// JSONMissing is one frequently referenced missing class
type JSONMissing struct {
	Class       string `json:"class"`
	Occurrences int    `json:"occurrences"`
	Suggestion  string `json:"suggestion,omitempty"`
}

// WriteJSON writes the lint result as indented JSON
func WriteJSON(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(result))
}

func buildJSONOutput(result *Result) JSONOutput {
	errors, warnings := countSeverities(result.Issues)

	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	missing := make([]JSONMissing, len(result.TopMissing))
	for i, m := range result.TopMissing {
		missing[i] = JSONMissing{
			Class:       m.ClassName,
			Occurrences: m.Occurrences,
			Suggestion:  m.Suggestion,
		}
	}

	warningList := result.Warnings
	if warningList == nil {
		warningList = []string{}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       errors,
			Warnings:     warnings,
			Truncated:    result.TruncatedCount,
			FilesScanned: result.FilesScanned,
		},
		Stats: JSONStats{
			StyleFiles:         result.StyleFiles,
			ClassesDefined:     result.ClassesDefined,
			ClassReferences:    result.ClassRefs,
			ResolvedReferences: result.ResolvedRefs,
			CoveragePercentage: result.CoveragePercentage,
		},
		Issues:     issues,
		TopMissing: missing,
		Warnings:   warningList,
	}
}

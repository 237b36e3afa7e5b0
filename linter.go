package animax

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/yacobolo/animax/internal/page"
	"github.com/yacobolo/animax/internal/report"
	"github.com/yacobolo/animax/internal/style"
)

// LintConfig holds linting configuration
type LintConfig struct {
	SourceDir string
	Pages     []string // page patterns below SourceDir, default **/*.max
	Styles    []string // style patterns below SourceDir, default **/*.maxt
	// IncludePresets counts catalog preset classes as defined, matching a
	// build with EmitPresets.
	IncludePresets   bool
	LegacyTruncation bool
	Strict           bool // fail on warnings too

	MaxIssuesPerLinter int  // 0 = unlimited
	MaxSameIssues      int  // 0 = unlimited
	PrintIssuedLines   bool // show source lines with issues
	PrintLinterName    bool // show (maxlint) suffix
	UseColors          bool // force colors
}

// LintResult contains lint analysis results
type LintResult = report.Result

// Issue represents a single lint finding
type Issue = report.Issue

// ReportOptions returns the printing options of the config.
func (c LintConfig) ReportOptions() ReportOptions {
	return ReportOptions{
		PrintIssuedLines: c.PrintIssuedLines,
		PrintLinterName:  c.PrintLinterName,
		UseColors:        c.UseColors,
	}
}

const maxTopMissing = 10

// Lint compiles the styles below SourceDir and checks the class references
// and markers of every page template against them. Page logic is not run.
func Lint(config LintConfig) (*LintResult, error) {
	if config.SourceDir == "" {
		config.SourceDir = "."
	}
	if len(config.Pages) == 0 {
		config.Pages = DefaultPagePatterns
	}
	if len(config.Styles) == 0 {
		config.Styles = DefaultStylePatterns
	}

	pages, _, err := discoverFiles(config.SourceDir, config.Pages)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pages: %w", err)
	}
	styleFiles, _, err := discoverFiles(config.SourceDir, config.Styles)
	if err != nil {
		return nil, fmt.Errorf("failed to scan styles: %w", err)
	}

	c := NewCompiler(Options{LegacyTruncation: config.LegacyTruncation})
	css, warnings := c.CompileStyleFiles(styleFiles)
	if config.IncludePresets {
		css = joinCSS(css, c.PresetStyles())
	}
	defined := style.ClassNames(css)

	result := &LintResult{
		StyleFiles:     len(styleFiles),
		ClassesDefined: len(defined),
		Warnings:       warnings,
	}

	missing := make(map[string]int)
	for _, path := range pages {
		src, err := os.ReadFile(path)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to read %s: %v", path, err))
			continue
		}
		result.FilesScanned++
		lintPage(c, path, string(src), defined, result, missing)
	}

	for _, issue := range result.Issues {
		if issue.Severity == report.SeverityError {
			result.ErrorCount++
		}
	}
	if result.ClassRefs > 0 {
		result.CoveragePercentage = float64(result.ResolvedRefs) / float64(result.ClassRefs) * 100
	} else {
		result.CoveragePercentage = 100
	}
	result.TopMissing = topMissing(missing, defined)
	result.Suggestions = generateSuggestions(result, config, c)

	report.SortIssues(result.Issues)
	if config.MaxIssuesPerLinter > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = report.LimitIssues(result.Issues, config.MaxIssuesPerLinter, config.MaxSameIssues)
	}

	return result, nil
}

// lintPage appends the issues of one page to result.
func lintPage(c *Compiler, path, src string, defined map[string]bool, result *LintResult, missing map[string]int) {
	p := c.CompilePage(src)
	if strings.TrimSpace(p.Document.Template) == "" {
		result.Issues = append(result.Issues, Issue{
			FromLinter: report.LinterName,
			Text:       report.IssueMissingTemplate,
			Severity:   report.SeverityWarning,
			Pos:        report.IssuePos{Filename: path, Line: 1, Column: 1},
		})
		return
	}

	lines := strings.Split(src, "\n")
	at := locate(src, p.Document.Template)
	markup := p.Template.Static()

	for _, ref := range page.ClassRefs(markup) {
		result.ClassRefs++
		if defined[ref.Class] {
			result.ResolvedRefs++
			continue
		}
		missing[ref.Class]++

		line, col := at.translate(ref.Line, ref.Column)
		source := sourceLine(lines, line)
		if found := findClassColumn(source, ref.Class); found > 0 {
			col = found
		}

		issue := Issue{
			FromLinter:  report.LinterName,
			Text:        fmt.Sprintf(report.IssueUnknownClass, ref.Class),
			Severity:    report.SeverityError,
			SourceLines: []string{source},
			Pos:         report.IssuePos{Filename: path, Line: line, Column: col},
		}
		if s := closestClass(ref.Class, defined); s != "" {
			issue.Replacement = &report.Replacement{NewText: s, InlineLength: len(ref.Class)}
		}
		result.Issues = append(result.Issues, issue)
	}

	for _, m := range page.UnknownMarkers(markup) {
		line, col := at.translate(m.Line, m.Column)
		source := sourceLine(lines, line)
		if found := strings.Index(source, m.Marker); found >= 0 {
			col = found + 1
		}
		result.Issues = append(result.Issues, Issue{
			FromLinter:  report.LinterName,
			Text:        fmt.Sprintf(report.IssueUnknownMarker, m.Marker),
			Severity:    report.SeverityWarning,
			SourceLines: []string{source},
			Pos:         report.IssuePos{Filename: path, Line: line, Column: col},
		})
	}
}

// origin is where a region starts in its page source.
type origin struct {
	line   int // 0-based line of the region start
	column int // 0-based column of the region start
}

func locate(src, region string) origin {
	idx := strings.Index(src, region)
	if idx < 0 {
		return origin{}
	}
	before := src[:idx]
	return origin{
		line:   strings.Count(before, "\n"),
		column: idx - (strings.LastIndex(before, "\n") + 1),
	}
}

// translate maps a 1-based position inside the region to the page.
func (o origin) translate(line, col int) (int, int) {
	if line == 1 {
		col += o.column
	}
	return line + o.line, col
}

func sourceLine(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}

// topMissing returns the most referenced missing classes, most frequent
// first, ties by name.
func topMissing(missing map[string]int, defined map[string]bool) []report.MissingClass {
	out := make([]report.MissingClass, 0, len(missing))
	for name, count := range missing {
		out = append(out, report.MissingClass{
			ClassName:   name,
			Occurrences: count,
			Suggestion:  closestClass(name, defined),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].ClassName < out[j].ClassName
	})
	if len(out) > maxTopMissing {
		out = out[:maxTopMissing]
	}
	return out
}

// closestClass returns the defined class nearest to name by edit distance,
// if one is within a third of the name's length. Ties go to the smaller
// name.
func closestClass(name string, defined map[string]bool) string {
	limit := len(name) / 3
	if limit < 1 {
		limit = 1
	}

	best, bestDist := "", limit+1
	for candidate := range defined {
		d := editDistance(name, candidate)
		if d < bestDist || (d == bestDist && candidate < best) {
			best, bestDist = candidate, d
		}
	}
	if bestDist > limit {
		return ""
	}
	return best
}

// editDistance is the Levenshtein distance of a and b over bytes.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// generateSuggestions creates actionable recommendations
func generateSuggestions(result *LintResult, config LintConfig, c *Compiler) []string {
	var suggestions []string
	if result.ErrorCount > 0 {
		suggestions = append(suggestions, "Define the missing classes in a .maxt file or fix the misspelled names")
	}
	if !config.IncludePresets {
		for _, m := range result.TopMissing {
			if _, ok := c.presets.Style(m.ClassName); ok {
				suggestions = append(suggestions, "Preset classes are only emitted with build.emit-presets; lint with --presets if the build uses it")
				break
			}
		}
	}
	if result.StyleFiles == 0 {
		suggestions = append(suggestions, "No style files found; add .maxt files below the source directory")
	}
	return suggestions
}

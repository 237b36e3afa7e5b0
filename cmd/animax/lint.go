package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/animax"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint class references in page templates",
	Long: `Check that every class used in a page template is defined by the compiled
style files. Unknown markers and pages without a template are reported as
warnings. Page logic is not run.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return runLint()
	},
}

func init() {
	f := lintCmd.Flags()
	f.StringSlice("pages", animax.DefaultPagePatterns, "Glob patterns for page files")
	f.StringSlice("styles", animax.DefaultStylePatterns, "Glob patterns for style files")
	f.Bool("presets", false, "Treat catalog preset classes as defined")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.Float64("threshold", 0.0, "Minimum class coverage percentage for strict mode")
	f.String("output-format", "", "Output format: issues|summary|full|json|markdown")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (maxlint) suffix on issues")
}

// runLint is shared between `animax lint` and `animax build --lint`.
func runLint() error {
	lintConfig := buildLintConfig()

	lintResult, err := animax.Lint(lintConfig)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	format := animax.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		animax.WriteOutput(os.Stdout, lintResult, format, lintConfig.ReportOptions())
	}

	threshold := getFloat64WithFallback("threshold", "lint.threshold", 0.0)
	if code := lintExitCode(lintResult, lintConfig.Strict, threshold, quiet); code != 0 {
		os.Exit(code)
	}
	return nil
}

// lintExitCode applies the "soft gate": only errors fail by default, strict
// mode fails on any issue or on coverage below threshold.
func lintExitCode(result *animax.LintResult, strict bool, threshold float64, quiet bool) int {
	if !strict {
		if result.ErrorCount > 0 {
			return 1
		}
		return 0
	}
	if len(result.Issues) > 0 || result.TruncatedCount > 0 {
		return 1
	}
	if threshold > 0 && result.CoveragePercentage < threshold {
		if !quiet {
			fmt.Fprintf(os.Stderr, "\nStrict mode: class coverage %.1f%% is below threshold %.1f%%\n",
				result.CoveragePercentage, threshold)
		}
		return 1
	}
	return 0
}

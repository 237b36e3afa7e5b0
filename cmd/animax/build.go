package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/animax"
	"github.com/yacobolo/animax/internal/style"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build HTML documents and the stylesheet",
	Long: `Render every page below the source directory into a full HTML document
and compile every style file into one stylesheet in the output directory.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.String("out-dir", "dist", "Output directory")
	f.StringSlice("pages", animax.DefaultPagePatterns, "Glob patterns for page files")
	f.StringSlice("styles", animax.DefaultStylePatterns, "Glob patterns for style files")
	f.String("stylesheet", animax.DefaultStylesheet, "Stylesheet file name in the output directory")
	f.Bool("emit-presets", false, "Append catalog preset classes to the stylesheet")
	f.Int("concurrency", 0, "Pages rendered in parallel (0=GOMAXPROCS)")
	f.Duration("timeout", 0, "Time budget of one page logic run (0=2s)")
	f.Bool("sanitize", false, "Sanitize rendered markup")
	f.Bool("lint", false, "Run linter after the build")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	config := buildBuildConfig()

	// The root command delegates here without executing buildCmd, which
	// leaves its context unset.
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := animax.Build(ctx, config)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)

	if !quiet {
		fmt.Printf("Built site in %s\n", config.OutDir)
		fmt.Printf("  Pages rendered: %d\n", len(result.Pages))
		fmt.Printf("  Style files: %d\n", result.StyleFiles)
		fmt.Printf("  Stylesheet: %s (%d rules, %d keyframes, %d declarations)\n",
			result.Stylesheet, result.Styles.Rules, result.Styles.Keyframes, result.Styles.Declarations)
		for _, cat := range style.Categories {
			if n := result.Styles.ByCategory[cat]; n > 0 {
				fmt.Printf("    %-11s %d\n", cat+":", n)
			}
		}
		if result.Styles.TokenUses > 0 {
			fmt.Printf("  Token references: %d\n", result.Styles.TokenUses)
		}

		for _, w := range result.Warnings {
			fmt.Printf("  Warning: %s\n", w)
		}
	}

	// Run lint after build if --lint flag set
	lint, _ := cmd.Flags().GetBool("lint")
	if lint {
		return runLint()
	}

	return nil
}
